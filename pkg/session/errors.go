package session

import (
	"fmt"
	"time"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

// LoginTimeoutError reports a login whose redirect to the authenticated
// landing route did not happen within the bounded wait.
type LoginTimeoutError struct {
	Elapsed time.Duration
}

// Error returns the elapsed time of the failed login wait.
func (e *LoginTimeoutError) Error() string {
	return fmt.Sprintf("login did not complete within %s", e.Elapsed.Round(time.Millisecond))
}

// Unwrap exposes the underlying timeout so callers can match on
// *wait.TimeoutError with errors.As.
func (e *LoginTimeoutError) Unwrap() error {
	return &wait.TimeoutError{Op: "login redirect", Elapsed: e.Elapsed}
}

// ClientNotFoundError reports a client switcher option that never appeared
// within the bounded retry window.
type ClientNotFoundError struct {
	Name string
}

// Error returns the missing client name.
func (e *ClientNotFoundError) Error() string {
	return fmt.Sprintf("client %q not found in switcher", e.Name)
}
