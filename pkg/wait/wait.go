// Package wait provides bounded condition polling for browser-driven tests.
// every blocking wait in the harness goes through Until, so no helper can
// hang indefinitely: on expiry the caller gets a TimeoutError carrying the
// operation name and elapsed time for diagnosable failures.
package wait

import (
	"fmt"
	"time"
)

// default polling parameters, matching the cadence used across the suites.
const (
	DefaultTimeout  = 15 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// TimeoutError reports a bounded wait that expired before its condition held.
type TimeoutError struct {
	Op      string        // operation that was waited on, e.g. "upload complete"
	Elapsed time.Duration // how long the wait ran before giving up
}

// Error returns the operation name and elapsed time.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Op, e.Elapsed.Round(time.Millisecond))
}

// Until polls cond every interval until it returns true or timeout expires.
// returns nil on success, a *TimeoutError on expiry. cond runs at least once
// immediately, so a condition that already holds never waits a full interval.
func Until(op string, timeout, interval time.Duration, cond func() bool) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	start := time.Now()
	deadline := start.Add(timeout)

	for {
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return &TimeoutError{Op: op, Elapsed: time.Since(start)}
		}
		time.Sleep(interval)
	}
}
