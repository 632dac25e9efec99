package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Page is the narrow capability interface the workflows drive the external
// site through. Implementations must bound every operation with an explicit
// timeout; a timeout surfaces as ErrWaitTimeout, never as a hang.
type Page interface {
	// Goto navigates to url and returns once the document has loaded
	// (domcontentloaded, not full network idle, which is unreliable on
	// content-heavy third-party pages).
	Goto(url string) error

	// Click clicks the first element matching selector once it is
	// actionable, within timeout.
	Click(selector string, timeout time.Duration) error

	// WaitFor blocks until the element described by selector reaches state
	// or timeout elapses. For StateDetached the returned Element is nil on
	// success.
	WaitFor(selector string, state WaitState, timeout time.Duration) (Element, error)
}

// Element is a handle to a single located element.
type Element interface {
	// Text returns the element's text content.
	Text() (string, error)

	// Attribute returns the named attribute's value, empty when absent.
	Attribute(name string) (string, error)

	// ClickChild clicks the first descendant matching selector.
	ClickChild(selector string) error
}

// pwPage adapts a playwright.Page to the Page interface.
type pwPage struct {
	page       playwright.Page
	navTimeout time.Duration
}

var _ Page = (*pwPage)(nil)

func (p *pwPage) Goto(url string) error {
	waitUntil := playwright.WaitUntilState("domcontentloaded")
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: &waitUntil,
		Timeout:   playwright.Float(float64(p.navTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", url, classify(err))
	}
	return nil
}

func (p *pwPage) Click(selector string, timeout time.Duration) error {
	err := p.page.Click(selector, playwright.PageClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("click %s: %w", selector, classify(err))
	}
	return nil
}

func (p *pwPage) WaitFor(selector string, state WaitState, timeout time.Duration) (Element, error) {
	selectorState := playwright.WaitForSelectorState(string(state))
	handle, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   &selectorState,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("wait for %s (%s): %w", selector, state, classify(err))
	}
	if handle == nil {
		// Detached (and hidden) waits resolve without an element.
		return nil, nil
	}
	return &pwElement{handle: handle}, nil
}

// pwElement adapts a playwright.ElementHandle to the Element interface.
type pwElement struct {
	handle playwright.ElementHandle
}

var _ Element = (*pwElement)(nil)

func (e *pwElement) Text() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", classify(err)
	}
	return text, nil
}

func (e *pwElement) Attribute(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", classify(err)
	}
	return value, nil
}

func (e *pwElement) ClickChild(selector string) error {
	child, err := e.handle.QuerySelector(selector)
	if err != nil {
		return fmt.Errorf("query %s: %w", selector, classify(err))
	}
	if child == nil {
		return fmt.Errorf("click child %s: %w", selector, ErrNotFound)
	}
	if err := child.Click(); err != nil {
		return fmt.Errorf("click child %s: %w", selector, classify(err))
	}
	return nil
}
