package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name searched for when no explicit
// config path is given.
const DefaultConfigFile = ".metrixbot.yaml"

// envFile is the optional dotenv file loaded before reading the environment.
const envFile = ".env"

// ErrConfigNotFound signals that no configuration file exists at the
// requested or discovered path.
var ErrConfigNotFound = errors.New("configuration file not found")

// Duration wraps time.Duration so config files can use "30s"/"5m" notation.
// yaml.v3 has no native duration support; it would try to decode the string
// into an int64 and fail.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// File represents the structure of the .metrixbot.yaml configuration file.
// The file nests settings for readability; Apply flattens them onto a Config.
// Secrets never appear here: they come from the environment only.
type File struct {
	// Series identifies which DiscGolfMetrix series to announce.
	Series struct {
		// ID is the numeric competition ID from the series URL.
		ID int `yaml:"id,omitempty"`

		// BaseURL overrides the DiscGolfMetrix origin. Mainly for tests.
		BaseURL string `yaml:"base_url,omitempty"`
	} `yaml:"series,omitempty"`

	// Timezone is the IANA zone for "tomorrow" computation and dates.
	Timezone string `yaml:"timezone,omitempty"`

	// Schedule configures watch mode.
	Schedule struct {
		// At is the daily fire time, "HH:MM" on the UTC clock.
		At string `yaml:"at,omitempty"`
	} `yaml:"schedule,omitempty"`

	// Facebook configures the Graph API client.
	Facebook struct {
		// GraphVersion pins the Graph API version, e.g. "v23.0".
		GraphVersion string `yaml:"graph_version,omitempty"`
	} `yaml:"facebook,omitempty"`

	// HTTP configures outbound requests.
	HTTP struct {
		// Timeout is the per-request timeout, e.g. "30s".
		Timeout Duration `yaml:"timeout,omitempty"`

		// UserAgent overrides the built-in desktop browser User-Agent.
		UserAgent string `yaml:"user_agent,omitempty"`

		// MaxBodySize is the response size cap in bytes.
		MaxBodySize int64 `yaml:"max_body_size,omitempty"`
	} `yaml:"http,omitempty"`

	// Run configures run execution.
	Run struct {
		// Timeout is the per-run deadline, e.g. "5m".
		Timeout Duration `yaml:"timeout,omitempty"`
	} `yaml:"run,omitempty"`

	// Ledger configures run history persistence.
	Ledger struct {
		// Dir is the directory holding metrixbot.db.
		Dir string `yaml:"dir,omitempty"`
	} `yaml:"ledger,omitempty"`

	// Post configures announcement composition.
	Post struct {
		// Headline overrides the first line of the announcement.
		Headline string `yaml:"headline,omitempty"`

		// MaxDescription is the description rune budget before truncation.
		MaxDescription int `yaml:"max_description,omitempty"`
	} `yaml:"post,omitempty"`
}

// Apply merges the file's settings onto the config.
// Only values actually present in the file override; zero values are
// ignored so defaults and flags survive a sparse file.
func (f *File) Apply(c *Config) {
	if f.Series.ID != 0 {
		c.SeriesID = f.Series.ID
	}
	if f.Series.BaseURL != "" {
		c.BaseURL = f.Series.BaseURL
	}
	if f.Timezone != "" {
		c.Timezone = f.Timezone
	}
	if f.Schedule.At != "" {
		c.ScheduleAt = f.Schedule.At
	}
	if f.Facebook.GraphVersion != "" {
		c.GraphVersion = f.Facebook.GraphVersion
	}
	if f.HTTP.Timeout != 0 {
		c.HTTPTimeout = time.Duration(f.HTTP.Timeout)
	}
	if f.HTTP.UserAgent != "" {
		c.UserAgent = f.HTTP.UserAgent
	}
	if f.HTTP.MaxBodySize != 0 {
		c.MaxBodySize = f.HTTP.MaxBodySize
	}
	if f.Run.Timeout != 0 {
		c.RunTimeout = time.Duration(f.Run.Timeout)
	}
	if f.Ledger.Dir != "" {
		c.LedgerDir = f.Ledger.Dir
	}
	if f.Post.Headline != "" {
		c.Headline = f.Post.Headline
	}
	if f.Post.MaxDescription != 0 {
		c.MaxDescription = f.Post.MaxDescription
	}
}

// LoadConfigFile reads and parses one YAML settings file. A missing
// file yields ErrConfigNotFound; whether that is fatal depends on
// whether the user named the path explicitly, so the caller decides.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &f, nil
}

// FindConfigFile resolves which settings file to load. An explicit
// configPath wins; otherwise .metrixbot.yaml is looked up in the
// current directory, then in the user's home directory. The result is
// empty when nothing exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// LoadEnv fills the credentials from the process environment.
// A .env file in the current directory is loaded first when present
// (development convenience; production injects real environment
// variables). Values already set on the config are kept: explicit
// wiring wins over ambient environment.
func LoadEnv(c *Config) error {
	if _, err := os.Stat(envFile); err == nil {
		// godotenv never overrides variables that are already exported.
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if c.Credentials.PageID == "" {
		c.Credentials.PageID = os.Getenv(EnvPageID)
	}
	if c.Credentials.PageToken == "" {
		c.Credentials.PageToken = os.Getenv(EnvPageToken)
	}

	return nil
}

// Load resolves the full configuration: defaults, then the config file
// (explicit path or discovery), then environment credentials.
// A missing config file is fine unless the user named one explicitly.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if path == "" && configPath != "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if path != "" {
		f, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		f.Apply(cfg)
		cfg.ConfigFilePath = path
	}

	if err := LoadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
