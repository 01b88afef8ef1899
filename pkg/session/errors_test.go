package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

func TestLoginTimeoutError(t *testing.T) {
	err := &LoginTimeoutError{Elapsed: 15*time.Second + 300*time.Microsecond}
	assert.Equal(t, "login did not complete within 15s", err.Error())

	// matches the base timeout error for callers that only care about "timed out"
	var te *wait.TimeoutError
	require.ErrorAs(t, error(err), &te)
	assert.Equal(t, "login redirect", te.Op)
	assert.Equal(t, err.Elapsed, te.Elapsed)
}

func TestClientNotFoundError(t *testing.T) {
	err := &ClientNotFoundError{Name: "Acme Corp"}
	assert.Equal(t, `client "Acme Corp" not found in switcher`, err.Error())

	var cnf *ClientNotFoundError
	require.ErrorAs(t, error(err), &cnf)
	assert.Equal(t, "Acme Corp", cnf.Name)
	assert.False(t, errors.As(error(err), new(*wait.TimeoutError)), "not a timeout")
}
