package wait

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntil_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := Until("already true", time.Second, 10*time.Millisecond, func() bool {
		calls++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "condition should be checked exactly once when it holds immediately")
}

func TestUntil_EventualSuccess(t *testing.T) {
	calls := 0
	err := Until("third time lucky", time.Second, 5*time.Millisecond, func() bool {
		calls++
		return calls >= 3
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntil_Timeout(t *testing.T) {
	start := time.Now()
	err := Until("never happens", 50*time.Millisecond, 10*time.Millisecond, func() bool {
		return false
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "never happens", te.Op)
	assert.Greater(t, te.Elapsed, time.Duration(0))
	assert.Contains(t, err.Error(), "never happens")
	assert.Contains(t, err.Error(), "timed out after")

	// the wait must not run materially past its deadline
	assert.Less(t, elapsed, time.Second)
}

func TestUntil_ZeroValuesUseDefaults(t *testing.T) {
	// zero timeout/interval fall back to defaults rather than busy-spinning
	err := Until("defaults", 0, 0, func() bool { return true })
	require.NoError(t, err)
}

func TestTimeoutError_Unwrap(t *testing.T) {
	var err error = &TimeoutError{Op: "op", Elapsed: time.Second}
	var te *TimeoutError
	assert.True(t, errors.As(err, &te))
}
