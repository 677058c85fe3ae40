package compose

import (
	"strings"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultHeadline opens every announcement.
const DefaultHeadline = "📣 Neste runde i TFK Seriespill nærmer seg!"

// DefaultMaxDescription bounds the quoted event description, in runes.
const DefaultMaxDescription = 200

// Composer builds announcement messages from round details.
type Composer struct {
	// location is the timezone dates are rendered in.
	location *time.Location

	// maxDescription is the rune count the description is cut at.
	maxDescription int

	// headline is the first line of every message.
	headline string

	// caser capitalizes weekday names with Norwegian rules.
	caser cases.Caser
}

// Option configures a Composer.
type Option func(*Composer)

// WithLocation sets the timezone announcement dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Composer) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithMaxDescription sets the description cutoff in runes.
func WithMaxDescription(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.maxDescription = n
		}
	}
}

// WithHeadline sets the first line of every message.
func WithHeadline(headline string) Option {
	return func(c *Composer) {
		if headline != "" {
			c.headline = headline
		}
	}
}

// NewComposer creates a Composer with Norwegian defaults.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		location:       time.Local,
		maxDescription: DefaultMaxDescription,
		headline:       DefaultHeadline,
		caser:          cases.Title(language.Norwegian),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Message renders the full announcement for a round.
//
// The layout is a fixed block of emoji-prefixed lines. The description
// line is always present, even when the event page had no description;
// an empty line reads better than a shifting layout. The course line
// carries the bare course name, the layout gets its own line.
func (c *Composer) Message(detail *model.RoundDetail) string {
	var b strings.Builder

	b.WriteString(c.headline)
	b.WriteString("\n\n")

	b.WriteString("🏆 ")
	b.WriteString(detail.Title)
	b.WriteString("\n")

	b.WriteString("📅 ")
	b.WriteString(c.FormatDate(detail.StartsAt))
	b.WriteString("\n")

	b.WriteString("⛳ ")
	b.WriteString(detail.Course)
	b.WriteString("\n")

	b.WriteString("🗺️ Layout: ")
	b.WriteString(detail.Layout)
	b.WriteString("\n\n")

	b.WriteString("ℹ️ ")
	b.WriteString(c.truncate(detail.Description))
	b.WriteString("\n\n")

	b.WriteString("🔗 Mer info og påmelding: ")
	b.WriteString(detail.URL)

	return b.String()
}

// truncate cuts s at the configured rune count and appends an ellipsis.
// Counting runes, not bytes, keeps multi-byte Norwegian letters intact.
func (c *Composer) truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= c.maxDescription {
		return s
	}
	return string(runes[:c.maxDescription]) + "..."
}
