package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tfk-discgolf/metrixbot/internal/config"
	"github.com/tfk-discgolf/metrixbot/internal/facebook"
	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/log"
	"github.com/tfk-discgolf/metrixbot/internal/metrix"
	"github.com/tfk-discgolf/metrixbot/internal/model"
	"github.com/tfk-discgolf/metrixbot/internal/pipeline"
	"github.com/tfk-discgolf/metrixbot/internal/report"
)

// NewPostCmd creates the post command.
func NewPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Announce tomorrow's round on the Facebook page",
		Long: `Post fetches the series page, picks the round scheduled for tomorrow,
composes the announcement, and publishes it to the Facebook page.

When no round plays tomorrow the run ends quietly without posting.
A round that was already announced is skipped by the duplicate guard
unless --force is given.

Publishing requires the FB_PAGE_ID and FB_PAGE_TOKEN environment
variables. --dry-run works without them.

Examples:
  # Announce tomorrow's round
  metrixbot post

  # Show what would be posted without publishing
  metrixbot post --dry-run

  # Announce the round on a specific date (catch up a missed day)
  metrixbot post --date 2025-08-22

  # Re-announce even if the ledger says it was already posted
  metrixbot post --force`,
		Args: cobra.NoArgs,
		RunE: runPostCmd,
	}

	cmd.Flags().BoolP("dry-run", "n", false,
		"Compose and print the announcement without publishing")
	cmd.Flags().BoolP("force", "f", false,
		"Bypass the duplicate guard and post again")
	cmd.Flags().StringP("date", "d", "",
		"Announce the round on this date instead of tomorrow (YYYY-MM-DD)")

	return cmd
}

// runPostCmd executes the post command.
func runPostCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	dateStr, err := cmd.Flags().GetString("date")
	if err != nil {
		return err
	}

	// Set up structured logging with credential masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Only publishing runs need the page secrets
	if !dryRun {
		if err := cfg.ValidateCredentials(); err != nil {
			return err
		}
	}

	targetDate, err := parseTargetDate(cfg, dateStr)
	if err != nil {
		return err
	}

	// Interrupt or SIGTERM cancels the run context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, cancelling run")
		cancel()
	}()

	led, err := ledger.Open(cfg.DataDir())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer led.Close()

	run := model.NewRun(model.TriggerManual)
	if err := executeRun(ctx, cfg, led, logger, run, runOptions{
		dryRun:     dryRun,
		force:      force,
		targetDate: targetDate,
	}); err != nil {
		return err
	}

	return reportOutcome(run)
}

// parseTargetDate converts the --date flag into a time in the
// configured timezone. Empty means "tomorrow" and returns zero.
func parseTargetDate(cfg *config.Config, dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	location, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}

	target, err := time.ParseInLocation("2006-01-02", dateStr, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", dateStr, err)
	}

	return target, nil
}

// runOptions carries per-invocation pipeline switches.
type runOptions struct {
	// dryRun suppresses publishing; the message is composed and shown.
	dryRun bool

	// force bypasses the duplicate guard.
	force bool

	// targetDate overrides "tomorrow" when non-zero.
	targetDate time.Time
}

// executeRun drives one end-to-end announcement run. Shared between the
// post command and the watch daemon's daily job.
//
// A failed run is still persisted to the ledger: the record step never
// ran, so the failure path records best-effort on a fresh context.
func executeRun(ctx context.Context, cfg *config.Config, led *ledger.Ledger, logger *slog.Logger, run *model.Run, opts runOptions) error {
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	client := metrix.NewClient(httpClient,
		metrix.WithUserAgent(cfg.UserAgent),
		metrix.WithMaxBodySize(cfg.MaxBodySize),
		metrix.WithLocation(location),
		metrix.WithLogger(logger),
	)

	publisher := facebook.NewPublisher(httpClient, cfg.Credentials,
		facebook.WithGraphVersion(cfg.GraphVersion),
		facebook.WithPublisherLogger(logger),
	)

	postingOpts := []pipeline.PostingOption{
		pipeline.WithPostingSeriesURL(cfg.SeriesURL()),
		pipeline.WithPostingLocation(location),
		pipeline.WithPostingHeadline(cfg.Headline),
		pipeline.WithPostingMaxDescription(cfg.MaxDescription),
		pipeline.WithPostingDryRun(opts.dryRun),
		pipeline.WithPostingForce(opts.force),
	}
	if !opts.targetDate.IsZero() {
		postingOpts = append(postingOpts, pipeline.WithPostingTargetDate(opts.targetDate))
	}

	p := pipeline.PostingPipeline(client, publisher, led,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		postingOpts...,
	)

	// Each run gets its own deadline so a wedged fetch cannot stall
	// the daemon past the next fire.
	runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	if err := p.Execute(runCtx, run); err != nil {
		recordFailedRun(led, logger, run)
		return err
	}

	return nil
}

// recordFailedRun persists a failed run best-effort. The pipeline's
// record step never ran, so without this the ledger would only hold
// successful runs. Uses a fresh context because the run's context may
// already be cancelled or expired.
func recordFailedRun(led *ledger.Ledger, logger *slog.Logger, run *model.Run) {
	if led == nil {
		return
	}

	if run.FinishedAt.IsZero() {
		run.Finish()
	}

	recCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := led.RecordRun(recCtx, run); err != nil {
		logger.Error("failed to record failed run", "run_id", run.ID, "error", err)
	}
}

// reportOutcome prints the run result for the operator.
func reportOutcome(run *model.Run) error {
	switch run.Outcome {
	case model.OutcomePosted:
		fmt.Printf("Announcement published (post %s)\n", run.PostID)
	case model.OutcomeNoRound:
		fmt.Println("No round scheduled for the target date; nothing posted.")
	case model.OutcomeDuplicate:
		fmt.Println("Round already announced; nothing posted (use --force to repost).")
	case model.OutcomeDryRun:
		writer := report.NewSimpleWriter(os.Stdout)
		if _, err := writer.Write(run); err != nil {
			return fmt.Errorf("render dry-run report: %w", err)
		}
	}

	return nil
}
