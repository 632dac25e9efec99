package browser

import "time"

// WaitState describes the element condition WaitFor synchronizes on.
type WaitState string

const (
	// StateVisible waits until the element is attached and visible.
	StateVisible WaitState = "visible"

	// StateAttached waits until the element is present in the DOM.
	StateAttached WaitState = "attached"

	// StateDetached waits until no element matches the selector.
	StateDetached WaitState = "detached"
)

// Options configures the managed browser session.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// UserDataDir, when set, launches a persistent context rooted at this
	// directory so cookies and storage survive process restarts. Empty
	// means a fresh, isolated context per session.
	UserDataDir string

	// EntryURL is where the page is navigated right after launch.
	EntryURL string

	// NavigationTimeout bounds every page navigation.
	NavigationTimeout time.Duration

	// LaunchArgs are extra Chromium arguments.
	LaunchArgs []string
}

// Defaults for session options.
const (
	DefaultNavigationTimeout = 15 * time.Second
)

// DefaultLaunchArgs returns the Chromium arguments used when none are
// configured. The sandbox flags allow running inside containers without a
// privileged user namespace.
func DefaultLaunchArgs() []string {
	return []string{"--no-sandbox", "--disable-setuid-sandbox"}
}

// withDefaults fills in zero-valued options.
func (o Options) withDefaults() Options {
	if o.NavigationTimeout == 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	if o.LaunchArgs == nil {
		o.LaunchArgs = DefaultLaunchArgs()
	}
	return o
}
