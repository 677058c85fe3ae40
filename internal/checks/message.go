package checks

import (
	"fmt"
	"unicode/utf8"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// MaxFeedMessageLength is the Graph API limit for a page feed post,
// in characters. Requests above it fail with error code 100; catching
// it here gives a readable failure instead of a Graph error.
const MaxFeedMessageLength = 63206

// MessageChecker validates the composed announcement text.
type MessageChecker struct {
	// maxLength is the character limit, counted in runes.
	maxLength int
}

// NewMessageChecker creates a MessageChecker with the Graph API limit.
func NewMessageChecker() *MessageChecker {
	return &MessageChecker{
		maxLength: MaxFeedMessageLength,
	}
}

// Name returns the checker name.
func (c *MessageChecker) Name() string {
	return "message"
}

// Check verifies a message exists and fits the feed limit.
func (c *MessageChecker) Check(run *model.Run) []Problem {
	if !run.HasRound() {
		return nil
	}

	if run.Message == "" {
		return []Problem{{
			Checker: c.Name(),
			Message: "announcement message is empty",
		}}
	}

	if n := utf8.RuneCountInString(run.Message); n > c.maxLength {
		return []Problem{{
			Checker: c.Name(),
			Message: fmt.Sprintf("announcement message is %d characters, the feed limit is %d", n, c.maxLength),
		}}
	}

	return nil
}
