package fragment

import (
	"fmt"
	"time"
)

// External page surface. Fragment ships no versioned API; these labels and
// attributes are what the live markup exposes today.
const (
	// EntryURL is the site entry point the session opens on.
	EntryURL = "https://fragment.com"

	// NumbersURL is the listing view holding the caller's +888 numbers.
	NumbersURL = "https://fragment.com/my/numbers"

	// NumberPrefix is prepended to an identifier fragment to form the full
	// anonymous number echoed back to callers.
	NumberPrefix = "+888"

	// connectTrigger begins the wallet pairing handshake. Its disappearance
	// is also the only observable signal that pairing succeeded.
	connectTrigger = `button:has-text("Connect TON")`

	// pairingSurface is the TON Connect modal shown after the trigger.
	pairingSurface = `[data-tc-modal]`

	// altMethodToggle switches the modal from the scannable QR presentation
	// to one that exposes a copyable link.
	altMethodToggle = `button[aria-label="TON Connect QR"]`

	// deepLinkAnchor carries the pairing deep-link in its href.
	deepLinkAnchor = `a:has-text("Open Link")`

	// issueCodeButton sits inside a number row and requests a login code.
	issueCodeButton = `button:has-text("Get Login Code")`

	// loginCodeBox renders the issued one-time code.
	loginCodeBox = `div.login-code`
)

// numberRow matches the listing row whose text contains the identifier
// fragment. Substring match: with a short fragment several rows may match,
// and the first one in document order wins, so callers needing
// disambiguation must supply a longer fragment.
func numberRow(identifierFragment string) string {
	return fmt.Sprintf(`xpath=//div[contains(text(), '%s')]/ancestor::div[@role='row']`, identifierFragment)
}

// Budgets bounds every external-page wait. There is no unbounded wait
// anywhere in the workflows.
type Budgets struct {
	Trigger        time.Duration // trigger clickable
	PairingSurface time.Duration // modal visible
	LinkExtract    time.Duration // alternate-method toggle and link anchor
	Handshake      time.Duration // trigger detached after pairing
	Row            time.Duration // listing row visible
	Code           time.Duration // code element visible
}

// DefaultBudgets returns the production timeout table.
func DefaultBudgets() Budgets {
	return Budgets{
		Trigger:        10 * time.Second,
		PairingSurface: 10 * time.Second,
		LinkExtract:    10 * time.Second,
		Handshake:      60 * time.Second,
		Row:            7 * time.Second,
		Code:           10 * time.Second,
	}
}
