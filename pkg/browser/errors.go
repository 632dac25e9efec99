package browser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrWaitTimeout is returned when a bounded wait exhausts its budget.
	ErrWaitTimeout = errors.New("wait timed out")

	// ErrSessionClosed is returned when an operation hits a page, context,
	// or browser handle that has been invalidated by Reset or a crash.
	ErrSessionClosed = errors.New("browser session closed")

	// ErrNotFound is returned when an expected element is absent for a
	// reason other than a timeout.
	ErrNotFound = errors.New("element not found")
)

// classify converts a raw driver error into one of the package sentinels,
// keeping the original message for context. playwright-go exposes no typed
// errors for these cases, so classification is by message.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Timeout"), strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %s", ErrWaitTimeout, msg)
	case strings.Contains(msg, "Target closed"),
		strings.Contains(msg, "Context closed"),
		strings.Contains(msg, "has been closed"),
		strings.Contains(msg, "browser closed"):
		return fmt.Errorf("%w: %s", ErrSessionClosed, msg)
	default:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
}
