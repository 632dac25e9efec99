package fragment

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"fragbot/pkg/browser"
)

// identifierFragmentRe is the only shape of input the lookup accepts:
// 3 to 7 digits. Anything else is "no result", not an error, so the lookup
// can back a live inline filter without spamming failures.
var identifierFragmentRe = regexp.MustCompile(`^[0-9]{3,7}$`)

// LookupResult is the outcome of one login-code query.
type LookupResult struct {
	// FullNumber is the +888 number echoed back to the caller.
	FullNumber string

	// Code is the trimmed one-time login code.
	Code string
}

// ValidIdentifierFragment reports whether s can address a number row.
func ValidIdentifierFragment(s string) bool {
	return identifierFragmentRe.MatchString(s)
}

// LookupCode locates the number containing identifierFragment in the
// listing view, triggers code issuance, and reads the code.
//
// A nil result means the fragment was invalid and the page was never
// touched. A non-nil result with a non-nil error means the query itself
// failed; the error is scoped to this single call and the shared session
// stays usable for other concurrent queries.
func (o *Orchestrator) LookupCode(ctx context.Context, identifierFragment string) (*LookupResult, error) {
	identifierFragment = strings.TrimSpace(identifierFragment)
	if !ValidIdentifierFragment(identifierFragment) {
		return nil, nil
	}

	log := o.opLogger("lookup-code").WithField("fragment", identifierFragment)
	result := &LookupResult{FullNumber: NumberPrefix + identifierFragment}

	err := o.withPage(ctx, func(page browser.Page) error {
		if err := page.Goto(NumbersURL); err != nil {
			return fmt.Errorf("open listing view: %w", err)
		}

		row, err := page.WaitFor(numberRow(identifierFragment), browser.StateVisible, o.budgets.Row)
		if err != nil {
			return fmt.Errorf("locate number row: %w", err)
		}
		if row == nil {
			return fmt.Errorf("locate number row: %w", browser.ErrNotFound)
		}

		if err := row.ClickChild(issueCodeButton); err != nil {
			return fmt.Errorf("request login code: %w", err)
		}

		codeBox, err := page.WaitFor(loginCodeBox, browser.StateVisible, o.budgets.Code)
		if err != nil {
			return fmt.Errorf("wait for login code: %w", err)
		}
		if codeBox == nil {
			return fmt.Errorf("wait for login code: %w", browser.ErrNotFound)
		}

		text, err := codeBox.Text()
		if err != nil {
			return fmt.Errorf("read login code: %w", err)
		}
		code := strings.TrimSpace(text)
		if code == "" {
			return ErrNoCodeProduced
		}

		result.Code = code
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("login code lookup failed")
		return result, err
	}

	log.Info("login code retrieved")
	return result, nil
}
