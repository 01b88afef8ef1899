package realtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmaxmax/go-sse"
)

// WatchSSE subscribes to an event-source endpoint and feeds every received
// event into the monitor, keyed by the SSE event type. The monitor counts as
// connected once the server answers with a valid event stream, an idle stream
// that has not emitted anything yet still satisfies WaitForConnection.
// Blocks until the context is canceled or the stream ends, so callers
// typically run it in a goroutine alongside the journey being observed.
func (m *Monitor) WatchSSE(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build sse request: %w", err)
	}

	// the validator runs on the response headers, before any event arrives,
	// which is the stream-open moment
	client := &sse.Client{
		ResponseValidator: func(r *http.Response) error {
			if err := sse.DefaultValidator(r); err != nil {
				return err
			}
			m.mu.Lock()
			m.connected = true
			m.mu.Unlock()
			return nil
		},
	}

	conn := client.NewConnection(req)
	conn.SubscribeToAll(func(e sse.Event) {
		name := e.Type
		if name == "" {
			// unnamed events carry the name inside the payload, same as frames
			m.record([]byte(e.Data))
			return
		}
		m.recordNamed(name, []byte(e.Data))
	})

	if err := conn.Connect(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("sse connect: %w", err)
	}
	return nil
}
