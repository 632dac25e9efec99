package fragment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fragbot/pkg/browser"
)

// SessionSource hands out the shared page and tears it down. Satisfied by
// *browser.Manager; tests substitute a fake.
type SessionSource interface {
	Acquire() (browser.Page, error)
	Reset()
}

// Orchestrator runs the connect and login-code workflows against the single
// shared page, serializing all page-touching operations behind one mutex.
type Orchestrator struct {
	sessions SessionSource
	budgets  Budgets
	logger   logrus.FieldLogger

	// pageMu serializes navigation and in-place UI state, which are
	// page-global. Logout deliberately does not take it.
	pageMu sync.Mutex
}

// NewOrchestrator wires the workflows to a session source.
func NewOrchestrator(sessions SessionSource, budgets Budgets, logger logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		budgets:  budgets,
		logger:   logger,
	}
}

// Logout invalidates the current session, wiping its cookies and storage.
// It runs regardless of in-flight workflows: those observe the invalidated
// handle as a call-scoped failure on their next page operation.
func (o *Orchestrator) Logout() {
	o.logger.WithField("op", "logout").Info("resetting browser session")
	o.sessions.Reset()
}

// withPage acquires the shared page and runs fn under the page mutex.
func (o *Orchestrator) withPage(ctx context.Context, fn func(browser.Page) error) error {
	o.pageMu.Lock()
	defer o.pageMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	page, err := o.sessions.Acquire()
	if err != nil {
		return fmt.Errorf("acquire session: %w", err)
	}
	return fn(page)
}

// opLogger tags all entries of one workflow invocation.
func (o *Orchestrator) opLogger(op string) logrus.FieldLogger {
	return o.logger.WithFields(logrus.Fields{
		"op":    op,
		"op_id": uuid.NewString(),
	})
}
