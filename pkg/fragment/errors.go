package fragment

import "errors"

var (
	// ErrTriggerNotFound means the pairing trigger was not clickable within
	// budget; the page layout likely changed or never finished loading.
	ErrTriggerNotFound = errors.New("connect trigger not found")

	// ErrPairingSurfaceNotFound means the pairing modal never appeared
	// after the trigger was clicked.
	ErrPairingSurfaceNotFound = errors.New("pairing surface did not appear")

	// ErrLinkExtractionFailed means the modal appeared but no deep-link
	// could be read from it. Distinct from a timeout: it indicates a markup
	// mismatch rather than slowness.
	ErrLinkExtractionFailed = errors.New("connection link could not be extracted")

	// ErrHandshakeUnconfirmed means the trigger did not disappear within
	// the confirmation budget. A warning, not a failure: the user may
	// already be connected, or may still complete pairing manually.
	ErrHandshakeUnconfirmed = errors.New("handshake not confirmed within budget")

	// ErrNoCodeProduced means the code element rendered but held no text.
	ErrNoCodeProduced = errors.New("no login code produced")
)
