package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/checks"
	"github.com/tfk-discgolf/metrixbot/internal/compose"
	"github.com/tfk-discgolf/metrixbot/internal/facebook"
	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/metrix"
	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// FetchSeriesStep loads the series info page and parses its round list.
//
// Design decision: Fetching and parsing share a step because neither is
// useful alone and the parser never performs I/O on its own; the step
// boundary is the unit a failure report points at.
type FetchSeriesStep struct {
	// client fetches and parses Metrix pages.
	client *metrix.Client

	// seriesURL is the series info page.
	seriesURL string

	// logger reports step progress.
	logger *slog.Logger
}

// FetchSeriesStepOption configures a FetchSeriesStep.
type FetchSeriesStepOption func(*FetchSeriesStep)

// WithFetchSeriesLogger sets a custom logger for the step.
func WithFetchSeriesLogger(logger *slog.Logger) FetchSeriesStepOption {
	return func(s *FetchSeriesStep) {
		s.logger = logger
	}
}

// NewFetchSeriesStep creates the series fetch step.
func NewFetchSeriesStep(client *metrix.Client, seriesURL string, opts ...FetchSeriesStepOption) *FetchSeriesStep {
	s := &FetchSeriesStep{
		client:    client,
		seriesURL: seriesURL,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *FetchSeriesStep) Name() string {
	return "fetch_series"
}

// Run executes the series fetch step.
func (s *FetchSeriesStep) Run(ctx context.Context, run *model.Run) error {
	rounds, err := s.client.GetSeries(ctx, s.seriesURL)
	if err != nil {
		return fmt.Errorf("fetch series page: %w", err)
	}
	if len(rounds) == 0 {
		return fmt.Errorf("%w: %s", ErrNoRounds, s.seriesURL)
	}

	run.Rounds = rounds

	s.logger.Info("series page fetched",
		"rounds", len(rounds),
	)
	return nil
}

// SelectRoundStep picks the round to announce from the fetched list.
// When no round matches the target date the run ends with
// OutcomeNoRound and every later step becomes a no-op; a quiet day is
// a successful run, not a failure.
type SelectRoundStep struct {
	// location is the timezone "tomorrow" is computed in.
	location *time.Location

	// target is an explicit announcement date. Zero means tomorrow.
	target time.Time

	// now returns the current time. Replaceable in tests.
	now func() time.Time

	// logger reports step progress.
	logger *slog.Logger
}

// SelectRoundStepOption configures a SelectRoundStep.
type SelectRoundStepOption func(*SelectRoundStep)

// WithSelectTargetDate announces the round on an explicit date instead
// of tomorrow. Used by the --date flag to make up missed announcements.
func WithSelectTargetDate(target time.Time) SelectRoundStepOption {
	return func(s *SelectRoundStep) {
		s.target = target
	}
}

// WithSelectClock replaces the clock, for tests.
func WithSelectClock(now func() time.Time) SelectRoundStepOption {
	return func(s *SelectRoundStep) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSelectLogger sets a custom logger for the step.
func WithSelectLogger(logger *slog.Logger) SelectRoundStepOption {
	return func(s *SelectRoundStep) {
		s.logger = logger
	}
}

// NewSelectRoundStep creates the round selection step.
func NewSelectRoundStep(location *time.Location, opts ...SelectRoundStepOption) *SelectRoundStep {
	s := &SelectRoundStep{
		location: location,
		now:      time.Now,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *SelectRoundStep) Name() string {
	return "select_round"
}

// Run executes the round selection step.
func (s *SelectRoundStep) Run(_ context.Context, run *model.Run) error {
	var selected *model.Round
	if s.target.IsZero() {
		selected = metrix.SelectTomorrow(run.Rounds, s.now(), s.location)
	} else {
		selected = metrix.SelectOn(run.Rounds, s.target, s.location)
	}

	if selected == nil {
		run.Outcome = model.OutcomeNoRound
		s.logger.Info("no round on the target date, nothing to announce")
		return nil
	}

	// Carry the listing fields over; fetch_details replaces this with
	// the full event page detail.
	run.Round = &model.RoundDetail{
		Title:    selected.Title,
		StartsAt: selected.StartsAt,
		URL:      selected.URL,
	}

	s.logger.Info("round selected",
		"title", selected.Title,
		"starts_at", selected.StartsAt,
		"round_url", selected.URL,
	)
	return nil
}

// FetchDetailsStep loads the selected round's event page and replaces
// the carried-over listing fields with the parsed detail.
type FetchDetailsStep struct {
	// client fetches and parses Metrix pages.
	client *metrix.Client

	// logger reports step progress.
	logger *slog.Logger
}

// FetchDetailsStepOption configures a FetchDetailsStep.
type FetchDetailsStepOption func(*FetchDetailsStep)

// WithFetchDetailsLogger sets a custom logger for the step.
func WithFetchDetailsLogger(logger *slog.Logger) FetchDetailsStepOption {
	return func(s *FetchDetailsStep) {
		s.logger = logger
	}
}

// NewFetchDetailsStep creates the event page fetch step.
func NewFetchDetailsStep(client *metrix.Client, opts ...FetchDetailsStepOption) *FetchDetailsStep {
	s := &FetchDetailsStep{
		client: client,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *FetchDetailsStep) Name() string {
	return "fetch_details"
}

// Run executes the event page fetch step.
func (s *FetchDetailsStep) Run(ctx context.Context, run *model.Run) error {
	if !run.HasRound() {
		s.logger.Debug("skipping detail fetch, no round selected")
		return nil
	}

	round := model.Round{
		Title:    run.Round.Title,
		StartsAt: run.Round.StartsAt,
		URL:      run.Round.URL,
	}

	detail, err := s.client.GetDetail(ctx, round)
	if err != nil {
		return fmt.Errorf("fetch event page: %w", err)
	}

	run.Round = detail

	s.logger.Info("event page fetched",
		"title", detail.Title,
		"course", detail.CourseFull,
	)
	return nil
}

// ComposeStep renders the announcement message for the selected round.
type ComposeStep struct {
	// composer renders the Norwegian announcement text.
	composer *compose.Composer

	// logger reports step progress.
	logger *slog.Logger
}

// ComposeStepOption configures a ComposeStep.
type ComposeStepOption func(*ComposeStep)

// WithComposeLogger sets a custom logger for the step.
func WithComposeLogger(logger *slog.Logger) ComposeStepOption {
	return func(s *ComposeStep) {
		s.logger = logger
	}
}

// NewComposeStep creates the message composition step.
func NewComposeStep(composer *compose.Composer, opts ...ComposeStepOption) *ComposeStep {
	s := &ComposeStep{
		composer: composer,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *ComposeStep) Name() string {
	return "compose"
}

// Run executes the composition step.
func (s *ComposeStep) Run(_ context.Context, run *model.Run) error {
	if !run.HasRound() {
		s.logger.Debug("skipping compose, no round selected")
		return nil
	}

	run.Message = s.composer.Message(run.Round)

	s.logger.Debug("announcement composed",
		"length", len(run.Message),
	)
	return nil
}

// ChecksStep validates the composed announcement before publishing.
// Any problem fails the run.
type ChecksStep struct {
	// registry holds the pre-publish checkers.
	registry *checks.Registry

	// logger reports step progress.
	logger *slog.Logger
}

// ChecksStepOption configures a ChecksStep.
type ChecksStepOption func(*ChecksStep)

// WithChecksLogger sets a custom logger for the step.
func WithChecksLogger(logger *slog.Logger) ChecksStepOption {
	return func(s *ChecksStep) {
		s.logger = logger
	}
}

// NewChecksStep creates the pre-publish validation step.
func NewChecksStep(registry *checks.Registry, opts ...ChecksStepOption) *ChecksStep {
	s := &ChecksStep{
		registry: registry,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *ChecksStep) Name() string {
	return "checks"
}

// Run executes the validation step.
func (s *ChecksStep) Run(_ context.Context, run *model.Run) error {
	if !run.HasRound() {
		s.logger.Debug("skipping checks, no round selected")
		return nil
	}

	problems := s.registry.RunAll(run)
	if len(problems) == 0 {
		return nil
	}

	descriptions := make([]string, 0, len(problems))
	for _, p := range problems {
		s.logger.Error("pre-publish check failed",
			"checker", p.Checker,
			"problem", p.Message,
		)
		descriptions = append(descriptions, p.Checker+": "+p.Message)
	}

	return fmt.Errorf("%w: %s", ErrChecksFailed, strings.Join(descriptions, "; "))
}

// PublishStep posts the announcement to the Facebook page, guarded
// against announcing the same round twice.
type PublishStep struct {
	// publisher posts to the page feed.
	publisher *facebook.Publisher

	// ledger answers the duplicate guard. May be nil in dry runs
	// without state; the guard is then skipped.
	ledger *ledger.Ledger

	// dryRun suppresses the actual publish.
	dryRun bool

	// force bypasses the duplicate guard.
	force bool

	// logger reports step progress.
	logger *slog.Logger
}

// PublishStepOption configures a PublishStep.
type PublishStepOption func(*PublishStep)

// WithPublishDryRun composes and validates but never posts.
func WithPublishDryRun(dryRun bool) PublishStepOption {
	return func(s *PublishStep) {
		s.dryRun = dryRun
	}
}

// WithPublishForce bypasses the duplicate guard. Used to re-announce a
// round, for example after a post was deleted by hand.
func WithPublishForce(force bool) PublishStepOption {
	return func(s *PublishStep) {
		s.force = force
	}
}

// WithPublishLogger sets a custom logger for the step.
func WithPublishLogger(logger *slog.Logger) PublishStepOption {
	return func(s *PublishStep) {
		s.logger = logger
	}
}

// NewPublishStep creates the publish step.
func NewPublishStep(publisher *facebook.Publisher, led *ledger.Ledger, opts ...PublishStepOption) *PublishStep {
	s := &PublishStep{
		publisher: publisher,
		ledger:    led,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *PublishStep) Name() string {
	return "publish"
}

// Run executes the publish step.
func (s *PublishStep) Run(ctx context.Context, run *model.Run) error {
	if !run.HasRound() {
		s.logger.Debug("skipping publish, no round selected")
		return nil
	}

	if !s.force && s.ledger != nil {
		has, err := s.ledger.HasPost(ctx, run.Round.URL)
		if err != nil {
			return fmt.Errorf("duplicate guard: %w", err)
		}
		if has {
			run.Outcome = model.OutcomeDuplicate
			s.logger.Info("round already announced, skipping publish",
				"round_url", run.Round.URL,
			)
			return nil
		}
	}

	if s.dryRun {
		run.Outcome = model.OutcomeDryRun
		s.logger.Info("dry run, announcement not published",
			"round_url", run.Round.URL,
		)
		return nil
	}

	postID, err := s.publisher.PublishText(ctx, run.Message)
	if err != nil {
		return fmt.Errorf("publish announcement: %w", err)
	}

	run.PostID = postID
	run.Outcome = model.OutcomePosted

	s.logger.Info("announcement published",
		"post_id", postID,
		"round_url", run.Round.URL,
	)
	return nil
}

// RecordStep persists the finished run, and its post when one was
// published, to the ledger. It runs for every outcome so the history
// command sees quiet days too.
type RecordStep struct {
	// ledger stores run history and posts.
	ledger *ledger.Ledger

	// logger reports step progress.
	logger *slog.Logger
}

// RecordStepOption configures a RecordStep.
type RecordStepOption func(*RecordStep)

// WithRecordLogger sets a custom logger for the step.
func WithRecordLogger(logger *slog.Logger) RecordStepOption {
	return func(s *RecordStep) {
		s.logger = logger
	}
}

// NewRecordStep creates the ledger record step.
func NewRecordStep(led *ledger.Ledger, opts ...RecordStepOption) *RecordStep {
	s := &RecordStep{
		ledger: led,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the step in logs and run reports.
func (s *RecordStep) Name() string {
	return "record"
}

// Run executes the record step.
func (s *RecordStep) Run(ctx context.Context, run *model.Run) error {
	if s.ledger == nil {
		s.logger.Debug("skipping record, no ledger configured")
		return nil
	}

	if run.FinishedAt.IsZero() {
		run.Finish()
	}

	if err := s.ledger.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	// Without the post row the duplicate guard cannot protect the next
	// run, so a failed write here must surface as a run failure even
	// though the announcement itself went out.
	if run.Outcome == model.OutcomePosted && run.PostID != "" {
		if err := s.ledger.RecordPost(ctx, run); err != nil {
			return fmt.Errorf("record post: %w", err)
		}
	}

	s.logger.Debug("run recorded",
		"run_id", run.ID,
		"outcome", run.Outcome.String(),
	)
	return nil
}
