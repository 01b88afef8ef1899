package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// scriptChannel hands the run outcome to an operator-provided script, for
// destinations the built-in channels do not cover (pager hooks, CI
// annotations, internal dashboards).
type scriptChannel struct {
	path string
}

// newScriptChannel creates a script channel for the given executable path.
func newScriptChannel(path string) *scriptChannel {
	return &scriptChannel{path: path}
}

// send pipes the JSON-encoded run result (status, run id, target, check
// counts) to the script's stdin. A non-zero exit fails the notification,
// with the script's stderr folded into the error for the run log.
func (c *scriptChannel) send(ctx context.Context, r Result) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run result: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.path) //nolint:gosec // path comes from operator config, not test input
	cmd.Stdin = bytes.NewReader(payload)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("notify script %s: %w, stderr: %s", c.path, err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("notify script %s: %w", c.path, err)
	}
	return nil
}
