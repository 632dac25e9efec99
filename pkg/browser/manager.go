package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Manager owns the lifecycle of exactly one browser session: the Playwright
// driver, one browsing context, and one page. All workflows borrow the page
// through Acquire and must treat it as invalidated after Reset.
type Manager struct {
	mu     sync.Mutex
	opts   Options
	logger logrus.FieldLogger

	pw        *playwright.Playwright
	browser   playwright.Browser // nil when using a persistent context
	context   playwright.BrowserContext
	page      playwright.Page
	handle    *pwPage
	createdAt time.Time
}

// NewManager creates a manager. Nothing is launched until the first Acquire.
func NewManager(opts Options, logger logrus.FieldLogger) *Manager {
	return &Manager{
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Acquire returns the live page handle, launching the engine, context, and
// page on first use and navigating to the entry URL. Repeated calls before
// Reset return the identical handle. A launch failure is surfaced to the
// caller and never retried automatically; the manager stays uninitialized so
// the next Acquire starts from scratch.
func (m *Manager) Acquire() (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil && !m.page.IsClosed() {
		return m.handle, nil
	}

	if err := m.ensureDriver(); err != nil {
		return nil, err
	}

	if err := m.launch(); err != nil {
		m.closeSessionLocked()
		return nil, err
	}

	handle := &pwPage{page: m.page, navTimeout: m.opts.NavigationTimeout}
	if err := handle.Goto(m.opts.EntryURL); err != nil {
		m.closeSessionLocked()
		return nil, fmt.Errorf("open entry page: %w", err)
	}

	m.handle = handle
	m.createdAt = time.Now()
	m.logger.WithField("entry_url", m.opts.EntryURL).Info("browser session ready")
	return m.handle, nil
}

// Reset closes page, context, and browser in that order and clears any
// session state tied to the context. Close failures are logged, never
// propagated: Reset always leaves the manager ready for a fresh Acquire.
// The driver itself keeps running.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == nil {
		return
	}
	age := time.Since(m.createdAt)
	m.closeSessionLocked()
	m.logger.WithField("session_age", age.Round(time.Second)).Info("browser session closed, state cleared")
}

// Shutdown resets the session and stops the driver.
func (m *Manager) Shutdown() {
	m.Reset()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			m.logger.WithError(err).Warn("stopping playwright driver")
		}
		m.pw = nil
	}
}

// ensureDriver installs and starts the Playwright driver once.
func (m *Manager) ensureDriver() error {
	if m.pw != nil {
		return nil
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	m.pw = pw
	return nil
}

// launch creates the browsing context and page. With a UserDataDir the
// context is persistent so a connected session survives restarts; otherwise
// every session starts from empty storage.
func (m *Manager) launch() error {
	if m.opts.UserDataDir != "" {
		context, err := m.pw.Chromium.LaunchPersistentContext(
			m.opts.UserDataDir,
			playwright.BrowserTypeLaunchPersistentContextOptions{
				Headless: playwright.Bool(m.opts.Headless),
				Args:     m.opts.LaunchArgs,
			},
		)
		if err != nil {
			return fmt.Errorf("launch persistent context: %w", err)
		}
		m.context = context
	} else {
		browser, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(m.opts.Headless),
			Args:     m.opts.LaunchArgs,
		})
		if err != nil {
			return fmt.Errorf("launch browser: %w", err)
		}
		m.browser = browser

		context, err := browser.NewContext(playwright.BrowserNewContextOptions{})
		if err != nil {
			return fmt.Errorf("create context: %w", err)
		}
		m.context = context
	}

	page, err := m.context.NewPage()
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	page.SetDefaultTimeout(float64(m.opts.NavigationTimeout.Milliseconds()))
	m.page = page
	return nil
}

// closeSessionLocked releases session resources best-effort. Callers hold mu.
func (m *Manager) closeSessionLocked() {
	if m.page != nil {
		if err := m.page.Close(); err != nil {
			m.logger.WithError(err).Debug("closing page")
		}
		m.page = nil
	}
	if m.context != nil {
		if err := m.context.Close(); err != nil {
			m.logger.WithError(err).Debug("closing context")
		}
		m.context = nil
	}
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.logger.WithError(err).Debug("closing browser")
		}
		m.browser = nil
	}
	m.handle = nil
}
