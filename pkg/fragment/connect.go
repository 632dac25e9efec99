package fragment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fragbot/pkg/browser"
)

// Connect drives the wallet-pairing handshake up to link extraction:
// click the trigger, wait for the pairing surface, switch it to the
// copyable-link presentation, and read the deep-link. It returns as soon as
// the link is available so the caller is never blocked on handshake
// completion; AwaitHandshake covers the confirmation stage separately.
func (o *Orchestrator) Connect(ctx context.Context) (string, error) {
	log := o.opLogger("connect")

	var link string
	err := o.withPage(ctx, func(page browser.Page) error {
		log.Debug("clicking pairing trigger")
		if err := page.Click(connectTrigger, o.budgets.Trigger); err != nil {
			if errors.Is(err, browser.ErrSessionClosed) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrTriggerNotFound, err)
		}

		log.Debug("waiting for pairing surface")
		if _, err := page.WaitFor(pairingSurface, browser.StateVisible, o.budgets.PairingSurface); err != nil {
			if errors.Is(err, browser.ErrSessionClosed) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrPairingSurfaceNotFound, err)
		}

		// The default presentation is a scannable QR code; the alternate
		// method exposes the link as a copyable string.
		log.Debug("switching to link presentation")
		if err := page.Click(altMethodToggle, o.budgets.LinkExtract); err != nil {
			if errors.Is(err, browser.ErrSessionClosed) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrLinkExtractionFailed, err)
		}

		anchor, err := page.WaitFor(deepLinkAnchor, browser.StateVisible, o.budgets.LinkExtract)
		if err != nil {
			if errors.Is(err, browser.ErrSessionClosed) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrLinkExtractionFailed, err)
		}
		if anchor == nil {
			return ErrLinkExtractionFailed
		}

		href, err := anchor.Attribute("href")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLinkExtractionFailed, err)
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return ErrLinkExtractionFailed
		}

		link = href
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("connect workflow failed")
		return "", err
	}

	log.Info("connection link extracted")
	return link, nil
}

// AwaitHandshake waits for the external site's only observable pairing
// signal: the trigger control detaching from the page. nil means confirmed.
// ErrHandshakeUnconfirmed is a soft outcome, not an error: the budget
// elapsed (or the session was reset mid-wait) without contradicting a
// successful pairing.
func (o *Orchestrator) AwaitHandshake(ctx context.Context) error {
	log := o.opLogger("await-handshake")

	err := o.withPage(ctx, func(page browser.Page) error {
		_, err := page.WaitFor(connectTrigger, browser.StateDetached, o.budgets.Handshake)
		if err != nil {
			if errors.Is(err, browser.ErrWaitTimeout) || errors.Is(err, browser.ErrSessionClosed) {
				return ErrHandshakeUnconfirmed
			}
			return err
		}
		return nil
	})
	switch {
	case err == nil:
		log.Info("handshake confirmed")
	case errors.Is(err, ErrHandshakeUnconfirmed):
		log.Warn("handshake not confirmed within budget")
	default:
		log.WithError(err).Warn("handshake wait failed")
	}
	return err
}
