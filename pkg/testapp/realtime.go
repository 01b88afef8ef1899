package testapp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// render stages in feed order. The feed advances monotonically, the final
// stage doubles as the progress-100 event.
var renderStages = []struct {
	progress int
	stage    string
}{
	{25, "compositing"},
	{50, "encoding"},
	{75, "finalizing"},
	{100, "complete"},
}

// runRender drives one render job: staged progress events on the feed,
// then a terminal complete event carrying the output URL.
func (s *Server) runRender(id string) {
	for _, st := range renderStages {
		time.Sleep(s.cfg.RenderTick)
		s.hub.Broadcast(Event{
			Event:    "render_progress",
			Progress: st.progress,
			Stage:    st.stage,
			RenderID: id,
		})
	}

	s.hub.Broadcast(Event{
		Event:    "render_complete",
		Progress: 100,
		RenderID: id,
		URL:      "/renders/" + id + ".mp4",
	})
}

// upgrader accepts any origin: the stand-in only ever serves tests.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleRenderSocket streams feed events to a WebSocket client.
func (s *Server) handleRenderSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // upgrader already wrote the error response
	}
	defer conn.Close()

	eventCh := s.hub.Subscribe()
	defer s.hub.Unsubscribe(eventCh)

	// drain reads so client close frames are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// handleRenderSSE streams feed events as named server-sent events.
func (s *Server) handleRenderSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	flusher.Flush()

	eventCh := s.hub.Subscribe()
	defer s.hub.Unsubscribe(eventCh)

	for {
		select {
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			data, err := event.JSON()
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
