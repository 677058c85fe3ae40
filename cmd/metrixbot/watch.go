package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/log"
	"github.com/tfk-discgolf/metrixbot/internal/model"
	"github.com/tfk-discgolf/metrixbot/internal/schedule"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run as a daemon, announcing rounds on a daily schedule",
		Long: `Watch runs metrixbot as a long-lived daemon. Once per day, at the
configured UTC wall-clock time, it performs the same run as the post
command: fetch the series, pick tomorrow's round, compose, publish.

A failed run is logged and recorded in the ledger; the daemon stays up
and tries again at the next day's fire. SIGINT and SIGTERM stop the
daemon cleanly.

Logs are emitted as JSON for collection by journald or a log shipper.

Examples:
  # Watch with the configured schedule (default 05:00 UTC)
  metrixbot watch

  # Fire at a different time of day
  metrixbot watch --at 06:30`,
		Args: cobra.NoArgs,
		RunE: runWatchCmd,
	}

	cmd.Flags().StringP("at", "a", "",
		"Daily fire time as HH:MM on the UTC clock (overrides the config file)")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return err
	}
	if at != "" {
		cfg.ScheduleAt = at
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	// The daemon publishes, so the secrets must be present up front.
	// Failing at 05:00 with nobody watching helps no one.
	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}

	// JSON logs for daemon mode; journald and log shippers parse them.
	logger := log.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	led, err := ledger.Open(cfg.DataDir())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer led.Close()

	job := func(ctx context.Context, _ string) error {
		run := model.NewRun(model.TriggerScheduled)
		if err := executeRun(ctx, cfg, led, logger, run, runOptions{}); err != nil {
			return err
		}
		logger.Info("scheduled run finished",
			"run_id", run.ID,
			"outcome", run.Outcome.String(),
		)
		return nil
	}

	sched := schedule.New(job,
		schedule.WithAt(cfg.ScheduleAt),
		schedule.WithLogger(logger),
	)

	fmt.Printf("Watching series %d: daily announcement check at %s UTC (Ctrl+C to stop)\n",
		cfg.SeriesID, cfg.ScheduleAt)

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println("Watch stopped.")
	return nil
}
