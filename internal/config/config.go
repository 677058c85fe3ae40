package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Defaults applied by NewConfig.
// These match the behavior of the club's original posting setup where
// applicable, so a bare invocation announces the same series the same way.
const (
	// DefaultSeriesID is the DiscGolfMetrix competition ID of the series
	// to announce. 3272824 is the 2025 TFK Seriespill.
	DefaultSeriesID = 3272824

	// DefaultBaseURL is the DiscGolfMetrix origin. Round URLs from the
	// series page are resolved against this.
	DefaultBaseURL = "https://discgolfmetrix.com"

	// DefaultTimezone is the IANA zone used to decide what "tomorrow"
	// means and to render post dates. The series plays in Norway, so
	// the bot pins Europe/Oslo instead of trusting the host clock;
	// schedulers and CI runners are usually UTC.
	DefaultTimezone = "Europe/Oslo"

	// DefaultScheduleAt is the daily fire time for watch mode, as a
	// UTC wall clock. 05:00 UTC is early morning in Norway, so the
	// announcement lands before people plan their evening.
	DefaultScheduleAt = "05:00"

	// DefaultGraphVersion is the Facebook Graph API version used for
	// publishing. Pinned rather than "latest" because Meta changes
	// permission semantics between versions.
	DefaultGraphVersion = "v23.0"

	// DefaultHTTPTimeout is the per-request timeout for both Metrix
	// and Graph API calls. 30 seconds is generous for two public
	// HTTPS endpoints while still failing a wedged run quickly.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRunTimeout is the deadline for one end-to-end run.
	// A run makes at most three HTTP calls plus local work, so five
	// minutes means something is genuinely stuck.
	DefaultRunTimeout = 5 * time.Minute

	// DefaultUserAgent mimics a desktop Chrome browser. Metrix serves
	// the full competition selector markup to desktop browsers; the
	// parsers depend on that variant of the page.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxBodySize caps how many response bytes are read.
	// 5MB is far beyond any Metrix page while preventing memory
	// exhaustion from unexpected responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxDescription is the rune budget for the event description
	// inside the announcement before it is truncated with "...".
	DefaultMaxDescription = 200

	// DefaultHeadline is the first line of every announcement post.
	DefaultHeadline = "📣 Neste runde i TFK Seriespill nærmer seg!"

	// AppName names the per-application XDG subdirectory.
	AppName = "metrixbot"

	// EnvPageID is the environment variable carrying the Facebook page ID.
	EnvPageID = "FB_PAGE_ID"

	// EnvPageToken is the environment variable carrying the page access token.
	EnvPageToken = "FB_PAGE_TOKEN" //nolint:gosec // variable name, not a credential
)

// Credentials holds the two Facebook page secrets.
// Both values are opaque to the bot: they are read from the environment,
// passed through to the Graph API, and never logged or persisted.
type Credentials struct {
	// PageID is the Facebook page identifier.
	PageID string

	// PageToken is a page access token with the pages_manage_posts
	// permission.
	PageToken string
}

// Complete reports whether both credentials are present.
func (c Credentials) Complete() bool {
	return c.PageID != "" && c.PageToken != ""
}

// Config carries every runtime setting of the bot. It is populated
// from the config file, environment and CLI flags, then handed to the
// commands explicitly; nothing reads it through global state. The YAML
// file nests its keys for readability, but in code the struct is flat.
type Config struct {
	// SeriesID is the DiscGolfMetrix competition ID of the series.
	SeriesID int

	// BaseURL is the DiscGolfMetrix origin used to build the series URL
	// and to resolve relative round links.
	BaseURL string

	// Timezone is the IANA zone name used for "tomorrow" computation
	// and post date rendering.
	Timezone string

	// ScheduleAt is the daily fire time for watch mode ("HH:MM", UTC).
	ScheduleAt string

	// GraphVersion is the Facebook Graph API version, e.g. "v23.0".
	GraphVersion string

	// HTTPTimeout is the timeout for each HTTP request.
	HTTPTimeout time.Duration

	// RunTimeout is the deadline for one end-to-end run. Every triggered
	// run gets a context with this timeout; a run that exceeds it is
	// marked timed out and fails.
	RunTimeout time.Duration

	// UserAgent is the User-Agent header sent to DiscGolfMetrix.
	UserAgent string

	// MaxBodySize caps how many response bytes are read per request.
	// The parsers never see bytes beyond the cap.
	MaxBodySize int64

	// MaxDescription is the rune budget for the description in a post.
	MaxDescription int

	// Headline is the first line of the announcement post.
	Headline string

	// Verbose lowers the log level to slog.LevelDebug; otherwise only
	// warnings and errors reach the output.
	Verbose bool

	// ConfigFilePath points at the configuration file to load.
	// If empty, the tool searches for .metrixbot.yaml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// LedgerDir is the directory holding the SQLite run ledger.
	// Empty means the XDG data directory.
	LedgerDir string

	// Credentials holds the Facebook page secrets, filled from the
	// environment by LoadEnv. Never from the config file.
	Credentials Credentials
}

// NewConfig returns a Config with every default filled in. Most
// defaults are non-zero (timeouts, series ID, timezone), so callers
// start from this and overlay file, environment, and flag values.
func NewConfig() *Config {
	return &Config{
		SeriesID:       DefaultSeriesID,
		BaseURL:        DefaultBaseURL,
		Timezone:       DefaultTimezone,
		ScheduleAt:     DefaultScheduleAt,
		GraphVersion:   DefaultGraphVersion,
		HTTPTimeout:    DefaultHTTPTimeout,
		RunTimeout:     DefaultRunTimeout,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
		MaxDescription: DefaultMaxDescription,
		Headline:       DefaultHeadline,
	}
}

// SeriesURL returns the info view of the configured series.
// Note: DiscGolfMetrix URLs use "&view=info" directly after the ID,
// without a "?" query separator. That is what the site serves and links.
func (c *Config) SeriesURL() string {
	return fmt.Sprintf("%s/%d&view=info", strings.TrimRight(c.BaseURL, "/"), c.SeriesID)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

// XDGDataDir returns the bot's XDG data directory, for example
// ~/.local/share/metrixbot on Linux or %LOCALAPPDATA%\metrixbot
// on Windows.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DataDir returns the directory for the run ledger, falling back to the
// XDG data directory when none is configured.
func (c *Config) DataDir() string {
	if c.LedgerDir != "" {
		return c.LedgerDir
	}
	return XDGDataDir()
}

// Validate reports the first invalid setting. It runs once after CLI
// parsing, before any run begins.
//
// Credentials are not checked here: only publishing runs need them,
// and preview/history must work without any secrets set.
func (c *Config) Validate() error {
	if c.SeriesID <= 0 {
		return ErrInvalidSeriesID
	}

	if c.BaseURL == "" || !strings.HasPrefix(c.BaseURL, "http") {
		return ErrInvalidBaseURL
	}

	if c.HTTPTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RunTimeout <= 0 {
		return ErrInvalidRunTimeout
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}

	if _, err := time.Parse("15:04", c.ScheduleAt); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidScheduleTime, c.ScheduleAt)
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.MaxDescription < 0 {
		return ErrInvalidMaxDescription
	}

	return nil
}

// ValidateCredentials checks that both Facebook secrets are present.
// Called only by operations that publish; read-only commands skip it.
func (c *Config) ValidateCredentials() error {
	if c.Credentials.PageID == "" {
		return ErrMissingPageID
	}
	if c.Credentials.PageToken == "" {
		return ErrMissingPageToken
	}
	return nil
}
