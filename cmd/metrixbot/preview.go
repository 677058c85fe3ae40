package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tfk-discgolf/metrixbot/internal/compose"
	"github.com/tfk-discgolf/metrixbot/internal/config"
	"github.com/tfk-discgolf/metrixbot/internal/log"
	"github.com/tfk-discgolf/metrixbot/internal/metrix"
	"github.com/tfk-discgolf/metrixbot/internal/model"
	"github.com/tfk-discgolf/metrixbot/internal/report"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the announcement without publishing",
		Long: `Preview fetches the series page and renders the announcement for
tomorrow's round without touching Facebook. No credentials are needed.

With --all it renders an announcement for every future round in the
series, fetching the event pages concurrently.

Examples:
  # Preview tomorrow's announcement
  metrixbot preview

  # Preview the announcement for a specific date
  metrixbot preview --date 2025-08-22

  # Preview every future round as markdown
  metrixbot preview --all --format markdown

  # Write the preview to a file
  metrixbot preview --all --output previews.md --format markdown`,
		Args: cobra.NoArgs,
		RunE: runPreviewCmd,
	}

	cmd.Flags().BoolP("all", "a", false,
		"Preview every future round in the series")
	cmd.Flags().StringP("format", "f", "simple",
		"Output format: simple, markdown, or json")
	cmd.Flags().StringP("output", "o", "",
		"Write the preview to specified file path (creates directories if needed)")
	cmd.Flags().StringP("date", "d", "",
		"Preview the round on this date instead of tomorrow (YYYY-MM-DD)")

	return cmd
}

// runPreviewCmd executes the preview command.
func runPreviewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	dateStr, err := cmd.Flags().GetString("date")
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	targetDate, err := parseTargetDate(cfg, dateStr)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer, err := report.NewWriter(format, output)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	previews, err := buildPreviews(ctx, cfg, logger, all, targetDate)
	if err != nil {
		return err
	}

	if _, err := writer.WritePreviews(previews); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}

	return nil
}

// buildPreviews fetches the series and composes the requested previews.
func buildPreviews(ctx context.Context, cfg *config.Config, logger *slog.Logger, all bool, targetDate time.Time) ([]report.Preview, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := metrix.NewClient(httpClient,
		metrix.WithUserAgent(cfg.UserAgent),
		metrix.WithMaxBodySize(cfg.MaxBodySize),
		metrix.WithLocation(location),
		metrix.WithLogger(logger),
	)

	composer := compose.NewComposer(
		compose.WithLocation(location),
		compose.WithHeadline(cfg.Headline),
		compose.WithMaxDescription(cfg.MaxDescription),
	)

	rounds, err := client.GetSeries(ctx, cfg.SeriesURL())
	if err != nil {
		return nil, fmt.Errorf("fetch series page: %w", err)
	}

	if all {
		return previewAll(ctx, client, composer, rounds)
	}

	return previewOne(ctx, client, composer, rounds, location, targetDate)
}

// previewAll renders every future round.
func previewAll(ctx context.Context, client *metrix.Client, composer *compose.Composer, rounds []model.Round) ([]report.Preview, error) {
	now := time.Now()
	future := make([]model.Round, 0, len(rounds))
	for _, r := range rounds {
		if r.StartsAt.After(now) {
			future = append(future, r)
		}
	}

	details, err := client.GetAllDetails(ctx, future)
	if err != nil {
		return nil, fmt.Errorf("fetch event pages: %w", err)
	}

	previews := make([]report.Preview, 0, len(details))
	for _, detail := range details {
		previews = append(previews, report.Preview{
			Round:   detail,
			Message: composer.Message(detail),
		})
	}

	return previews, nil
}

// previewOne renders the round on the target date (default tomorrow).
func previewOne(ctx context.Context, client *metrix.Client, composer *compose.Composer, rounds []model.Round, location *time.Location, targetDate time.Time) ([]report.Preview, error) {
	var selected *model.Round
	if targetDate.IsZero() {
		selected = metrix.SelectTomorrow(rounds, time.Now(), location)
	} else {
		selected = metrix.SelectOn(rounds, targetDate, location)
	}

	if selected == nil {
		return nil, nil
	}

	detail, err := client.GetDetail(ctx, *selected)
	if err != nil {
		return nil, fmt.Errorf("fetch event page: %w", err)
	}

	return []report.Preview{{
		Round:   detail,
		Message: composer.Message(detail),
	}}, nil
}

// openOutput returns the preview destination: the named file, or stdout
// when path is empty. The returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
