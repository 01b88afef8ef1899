// Package realtime observes the application's live update channel during a
// test: WebSocket frames captured in-page and server-sent events consumed
// out-of-band. Listeners are installed before navigation so no event is
// missed, and every wait is bounded.
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

// event names emitted by the render progress feed.
const (
	EventRenderProgress = "render_progress"
	EventRenderComplete = "render_complete"
	EventRenderError    = "render_error"
)

// ProgressEvent is one named progress update from the realtime channel.
// Stage labels are expected to advance monotonically (25→50→75→100) but the
// monitor only observes ordering, it does not enforce it.
type ProgressEvent struct {
	Event    string  `json:"event"`
	Progress float64 `json:"progress"`
	Stage    string  `json:"stage"`
}

// Message is one raw frame observed on the channel, with the event name
// extracted when the payload carried one.
type Message struct {
	Event string
	Data  []byte
}

// Options configures a Monitor. Zero timeouts fall back to the wait
// package defaults.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Monitor records realtime traffic for bounded assertions. Safe for
// concurrent use: browser callbacks record from the driver goroutine while
// the test polls.
type Monitor struct {
	opts Options

	mu        sync.Mutex
	connected bool
	messages  []Message
}

// New creates an empty monitor.
func New(opts Options) *Monitor {
	return &Monitor{opts: opts}
}

// Attach installs WebSocket hooks on the page. Must be called before the
// navigation that opens the socket, otherwise early frames are lost.
func (m *Monitor) Attach(page playwright.Page) {
	page.OnWebSocket(func(ws playwright.WebSocket) {
		m.mu.Lock()
		m.connected = true
		m.mu.Unlock()

		ws.OnFrameReceived(func(payload []byte) {
			m.record(payload)
		})
	})
}

// record parses the event name out of a frame payload and stores it.
// payloads are treated as untyped JSON, a frame without an event field is
// kept with an empty name.
func (m *Monitor) record(data []byte) {
	var envelope struct {
		Event string `json:"event"`
	}
	_ = json.Unmarshal(data, &envelope) // non-JSON frames recorded with empty event name

	m.recordNamed(envelope.Event, data)
}

// recordNamed stores a frame under an explicit event name. Used by the SSE
// subscriber where the event name travels outside the payload.
func (m *Monitor) recordNamed(event string, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{Event: event, Data: cp})
}

// Messages returns a snapshot of everything observed so far.
func (m *Monitor) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]Message, len(m.messages))
	copy(res, m.messages)
	return res
}

// Connected reports whether a socket has reached the open state.
func (m *Monitor) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// WaitForConnection blocks until a socket opens or the bounded wait expires.
func (m *Monitor) WaitForConnection() error {
	if err := wait.Until("websocket connection", m.opts.Timeout, m.opts.Interval, m.Connected); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}
	return nil
}

// WaitForMessage blocks until a message with the given event name is
// observed and returns its payload for assertion.
func (m *Monitor) WaitForMessage(eventName string) ([]byte, error) {
	var payload []byte
	err := wait.Until("message "+eventName, m.opts.Timeout, m.opts.Interval, func() bool {
		for _, msg := range m.Messages() {
			if msg.Event == eventName {
				payload = msg.Data
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("realtime: %w", err)
	}
	return payload, nil
}

// WaitForRenderProgress blocks until an observed progress value reaches the
// given threshold. Never returns early: only an actual event with
// progress ≥ threshold satisfies the wait.
func (m *Monitor) WaitForRenderProgress(threshold float64) error {
	op := fmt.Sprintf("render progress >= %v", threshold)
	if err := wait.Until(op, m.opts.Timeout, m.opts.Interval, func() bool {
		return m.maxProgress() >= threshold
	}); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}
	return nil
}

// WaitForRenderComplete blocks until a terminal complete event is observed
// or a progress value reaches 100.
func (m *Monitor) WaitForRenderComplete() error {
	if err := wait.Until("render complete", m.opts.Timeout, m.opts.Interval, func() bool {
		for _, msg := range m.Messages() {
			if msg.Event == EventRenderComplete {
				return true
			}
		}
		return m.maxProgress() >= 100
	}); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}
	return nil
}

// Progress returns all progress events observed so far, in arrival order.
func (m *Monitor) Progress() []ProgressEvent {
	var res []ProgressEvent
	for _, msg := range m.Messages() {
		if pe, ok := parseProgress(msg.Data); ok {
			res = append(res, pe)
		}
	}
	return res
}

// maxProgress returns the highest progress value observed so far.
func (m *Monitor) maxProgress() float64 {
	max := -1.0
	for _, pe := range m.Progress() {
		if pe.Progress > max {
			max = pe.Progress
		}
	}
	return max
}

// parseProgress defensively extracts a progress event from an untyped JSON
// payload. Only payloads with a numeric progress field qualify.
func parseProgress(data []byte) (ProgressEvent, bool) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ProgressEvent{}, false
	}

	progress, ok := raw["progress"].(float64)
	if !ok {
		return ProgressEvent{}, false
	}

	pe := ProgressEvent{Progress: progress}
	if s, ok := raw["event"].(string); ok {
		pe.Event = s
	}
	if s, ok := raw["stage"].(string); ok {
		pe.Stage = s
	}
	return pe, true
}
