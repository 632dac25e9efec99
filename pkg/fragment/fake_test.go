package fragment

import (
	"sync"
	"sync/atomic"
	"time"

	"fragbot/pkg/browser"
)

// call records one page interaction for assertions.
type call struct {
	method   string
	selector string
}

// fakePage implements browser.Page in-memory. Behavior is injected through
// the on* hooks; defaults are success. It also tracks how many operations
// ever ran concurrently, so tests can prove the orchestrator serializes
// page access.
type fakePage struct {
	mu        sync.Mutex
	calls     []call
	active    int32
	maxActive int32

	onGoto    func(url string) error
	onClick   func(selector string, timeout time.Duration) error
	onWaitFor func(selector string, state browser.WaitState, timeout time.Duration) (browser.Element, error)
}

var _ browser.Page = (*fakePage)(nil)

func (p *fakePage) enter(method, selector string) func() {
	n := atomic.AddInt32(&p.active, 1)
	p.mu.Lock()
	if n > p.maxActive {
		p.maxActive = n
	}
	p.calls = append(p.calls, call{method: method, selector: selector})
	p.mu.Unlock()
	return func() { atomic.AddInt32(&p.active, -1) }
}

func (p *fakePage) Goto(url string) error {
	defer p.enter("goto", url)()
	if p.onGoto != nil {
		return p.onGoto(url)
	}
	return nil
}

func (p *fakePage) Click(selector string, timeout time.Duration) error {
	defer p.enter("click", selector)()
	if p.onClick != nil {
		return p.onClick(selector, timeout)
	}
	return nil
}

func (p *fakePage) WaitFor(selector string, state browser.WaitState, timeout time.Duration) (browser.Element, error) {
	defer p.enter("waitFor", selector)()
	if p.onWaitFor != nil {
		return p.onWaitFor(selector, state, timeout)
	}
	if state == browser.StateDetached {
		return nil, nil
	}
	return &fakeElement{page: p}, nil
}

func (p *fakePage) recorded() []call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]call, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *fakePage) peakConcurrency() int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxActive
}

// fakeElement implements browser.Element.
type fakeElement struct {
	page *fakePage

	text    string
	attrs   map[string]string
	textErr error
}

var _ browser.Element = (*fakeElement)(nil)

func (e *fakeElement) Text() (string, error) {
	if e.textErr != nil {
		return "", e.textErr
	}
	return e.text, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) ClickChild(selector string) error {
	if e.page != nil {
		defer e.page.enter("clickChild", selector)()
	}
	return nil
}

// fakeSource implements SessionSource over a fake page.
type fakeSource struct {
	mu         sync.Mutex
	page       browser.Page
	acquireErr error
	acquires   int
	resets     int
}

var _ SessionSource = (*fakeSource)(nil)

func (s *fakeSource) Acquire() (browser.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acquires++
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	return s.page, nil
}

func (s *fakeSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
}

func (s *fakeSource) stats() (acquires, resets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquires, s.resets
}
