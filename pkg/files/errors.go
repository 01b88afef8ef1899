package files

import (
	"fmt"
	"time"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

// UploadTimeoutError reports an upload whose completion signal never
// appeared within the bounded wait.
type UploadTimeoutError struct {
	Elapsed time.Duration
}

// Error returns the elapsed time of the failed upload wait.
func (e *UploadTimeoutError) Error() string {
	return fmt.Sprintf("upload did not complete within %s", e.Elapsed.Round(time.Millisecond))
}

// Unwrap exposes the underlying timeout so callers can match on
// *wait.TimeoutError with errors.As.
func (e *UploadTimeoutError) Unwrap() error {
	return &wait.TimeoutError{Op: "upload complete", Elapsed: e.Elapsed}
}
