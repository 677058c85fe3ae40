package pipeline

import (
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/checks"
	"github.com/tfk-discgolf/metrixbot/internal/compose"
	"github.com/tfk-discgolf/metrixbot/internal/config"
	"github.com/tfk-discgolf/metrixbot/internal/facebook"
	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/metrix"
)

// PostingConfig holds configuration for the default posting pipeline.
type PostingConfig struct {
	// SeriesURL is the Metrix series info page.
	SeriesURL string

	// Location is the timezone for round selection and date rendering.
	Location *time.Location

	// Headline is the first line of the announcement.
	Headline string

	// MaxDescription is the description cutoff in runes.
	MaxDescription int

	// TargetDate announces the round on this date instead of tomorrow.
	TargetDate time.Time

	// DryRun composes and validates but never posts.
	DryRun bool

	// Force bypasses the duplicate guard.
	Force bool
}

// PostingOption configures a PostingConfig.
type PostingOption func(*PostingConfig)

// WithPostingSeriesURL sets the series info page URL.
func WithPostingSeriesURL(seriesURL string) PostingOption {
	return func(c *PostingConfig) {
		if seriesURL != "" {
			c.SeriesURL = seriesURL
		}
	}
}

// WithPostingLocation sets the timezone for selection and rendering.
func WithPostingLocation(loc *time.Location) PostingOption {
	return func(c *PostingConfig) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// WithPostingHeadline sets the announcement's first line.
func WithPostingHeadline(headline string) PostingOption {
	return func(c *PostingConfig) {
		if headline != "" {
			c.Headline = headline
		}
	}
}

// WithPostingMaxDescription sets the description cutoff in runes.
func WithPostingMaxDescription(n int) PostingOption {
	return func(c *PostingConfig) {
		if n > 0 {
			c.MaxDescription = n
		}
	}
}

// WithPostingTargetDate announces the round on an explicit date.
func WithPostingTargetDate(target time.Time) PostingOption {
	return func(c *PostingConfig) {
		c.TargetDate = target
	}
}

// WithPostingDryRun composes and validates but never posts.
func WithPostingDryRun(dryRun bool) PostingOption {
	return func(c *PostingConfig) {
		c.DryRun = dryRun
	}
}

// WithPostingForce bypasses the duplicate guard.
func WithPostingForce(force bool) PostingOption {
	return func(c *PostingConfig) {
		c.Force = force
	}
}

// PostingPipeline creates a pipeline with the full announcement step
// sequence: fetch the series, select the round, fetch its event page,
// compose, validate, publish, record.
//
// Design decision: We provide an assembled pipeline because:
//  1. The post command and the watch daemon need the same sequence
//  2. Step order is an invariant, not a per-caller choice
//  3. Reduces boilerplate in the CLI
//
// The first variadic parameter accepts pipeline options (WithLogger,
// etc). The second accepts posting config options (WithPostingDryRun,
// etc).
func PostingPipeline(client *metrix.Client, publisher *facebook.Publisher, led *ledger.Ledger, pipelineOpts []Option, postingOpts ...PostingOption) *Pipeline {
	cfg := &PostingConfig{
		SeriesURL:      config.NewConfig().SeriesURL(),
		Headline:       compose.DefaultHeadline,
		MaxDescription: compose.DefaultMaxDescription,
	}
	for _, opt := range postingOpts {
		opt(cfg)
	}

	composer := compose.NewComposer(
		compose.WithLocation(cfg.Location),
		compose.WithHeadline(cfg.Headline),
		compose.WithMaxDescription(cfg.MaxDescription),
	)

	selectOpts := make([]SelectRoundStepOption, 0, 1)
	if !cfg.TargetDate.IsZero() {
		selectOpts = append(selectOpts, WithSelectTargetDate(cfg.TargetDate))
	}

	p := New(pipelineOpts...)
	p.AddSteps(
		NewFetchSeriesStep(client, cfg.SeriesURL),
		NewSelectRoundStep(cfg.Location, selectOpts...),
		NewFetchDetailsStep(client),
		NewComposeStep(composer),
		NewChecksStep(checks.NewRegistry()),
		NewPublishStep(publisher, led,
			WithPublishDryRun(cfg.DryRun),
			WithPublishForce(cfg.Force),
		),
		NewRecordStep(led),
	)

	return p
}
