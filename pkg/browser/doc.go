// Package browser owns the single Playwright-driven browser session the
// process operates on.
//
// The package is built around two ideas:
//
//  1. Manager: lazily launches the engine, one browsing context, and one
//     page, and hands the page out behind a narrow capability interface.
//     Acquire is idempotent; Reset tears everything down so the next
//     Acquire starts from a clean slate.
//  2. Page/Element: the only surface the workflows see. Every
//     synchronization with the external site goes through WaitFor with an
//     explicit bounded timeout; there are no fixed sleeps.
//
// Driver errors are classified into sentinel errors (ErrWaitTimeout,
// ErrSessionClosed, ErrNotFound) so callers can pattern-match on outcomes
// instead of parsing engine messages.
package browser
