package checks

import (
	"fmt"
	"net/url"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// RoundURLChecker validates the announced round URL. The URL lands
// verbatim in the post; a relative or broken link embarrasses the club
// more than a missing one.
type RoundURLChecker struct{}

// NewRoundURLChecker creates a RoundURLChecker.
func NewRoundURLChecker() *RoundURLChecker {
	return &RoundURLChecker{}
}

// Name returns the checker name.
func (c *RoundURLChecker) Name() string {
	return "round_url"
}

// Check verifies the round URL is an absolute http(s) URL.
func (c *RoundURLChecker) Check(run *model.Run) []Problem {
	if !run.HasRound() {
		return nil
	}

	raw := run.Round.URL
	if raw == "" {
		return []Problem{{
			Checker: c.Name(),
			Message: "round has no URL",
		}}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return []Problem{{
			Checker: c.Name(),
			Message: fmt.Sprintf("round URL %q does not parse: %v", raw, err),
		}}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return []Problem{{
			Checker: c.Name(),
			Message: fmt.Sprintf("round URL %q is not an absolute http(s) URL", raw),
		}}
	}
	if u.Host == "" {
		return []Problem{{
			Checker: c.Name(),
			Message: fmt.Sprintf("round URL %q has no host", raw),
		}}
	}

	return nil
}
