//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/harness"
	"github.com/airwave-qa/wavetest/pkg/realtime"
)

func TestRenderJourneyWebSocket(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	// the matrix page opens the render socket on load, the monitor was
	// attached before navigation so the open event is not missed
	require.NoError(t, f.Matrix.Open())
	require.NoError(t, f.Realtime.WaitForConnection())

	require.NoError(t, f.Matrix.StartRender())
	require.NoError(t, f.Realtime.WaitForRenderProgress(50))
	require.NoError(t, f.Realtime.WaitForRenderComplete())

	// stages advance monotonically through the fixed pipeline
	progress := f.Realtime.Progress()
	require.NotEmpty(t, progress)
	last := -1.0
	for _, pe := range progress {
		assert.GreaterOrEqual(t, pe.Progress, last, "progress should not go backwards")
		last = pe.Progress
	}
	assert.Equal(t, 100.0, last)

	// the page reflects the feed in its progress bar and status label
	require.Eventually(t, func() bool {
		value, err := f.Matrix.RenderProgressBar().GetAttribute("value")
		if err != nil {
			return false
		}
		v, convErr := strconv.Atoi(value)
		return convErr == nil && v == 100
	}, 10*time.Second, 100*time.Millisecond, "progress bar should reach 100")

	status, err := f.Matrix.RenderStatus().TextContent()
	require.NoError(t, err)
	assert.Contains(t, status, "Render complete")
}

func TestRenderCompletePayload(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Matrix.Open())
	require.NoError(t, f.Realtime.WaitForConnection())
	require.NoError(t, f.Matrix.StartRender())

	payload, err := f.Realtime.WaitForMessage(realtime.EventRenderComplete)
	require.NoError(t, err)
	assert.Contains(t, string(payload), ".mp4", "complete event should carry the output url")
}

func TestRenderFeedSSE(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// out-of-band monitor: no browser involved, the SSE feed is consumed
	// directly and the render is triggered over plain HTTP
	monitor := realtime.New(realtime.Options{Timeout: 20 * time.Second, Interval: 100 * time.Millisecond})
	go func() {
		// returns on context cancel at test end, errors surface through
		// the bounded waits below staying unsatisfied
		_ = monitor.WatchSSE(ctx, baseURL+"/events/render")
	}()

	require.NoError(t, monitor.WaitForConnection())

	resp, err := http.Post(baseURL+"/api/renders", "application/json", http.NoBody)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.NoError(t, monitor.WaitForRenderProgress(75))
	require.NoError(t, monitor.WaitForRenderComplete())

	_, err = monitor.WaitForMessage(realtime.EventRenderComplete)
	require.NoError(t, err)
}

func TestGenerationJourney(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Strategy.Open())
	require.NoError(t, f.Strategy.GenerateFromBrief("Launch the new AIrWAVE summer campaign for streetwear"))

	require.Eventually(t, func() bool {
		count, err := f.Strategy.MotivationCards().Count()
		return err == nil && count == 3
	}, 15*time.Second, 100*time.Millisecond, "generation should produce three motivations")

	require.NoError(t, f.Strategy.SelectMotivation(0))
}
