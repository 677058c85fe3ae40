package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the ledger",
		Long: `History lists recent bot runs recorded in the local ledger: when they
ran, what triggered them, how they ended, and which round they touched.

Examples:
  # Show the last ten runs
  metrixbot history

  # Show more runs as a markdown table
  metrixbot history --limit 50 --format markdown

  # Machine-readable output
  metrixbot history --format json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 10,
		"Maximum number of runs to show")
	cmd.Flags().StringP("format", "f", "simple",
		"Output format: simple, markdown, or json")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(format, os.Stdout)
	if err != nil {
		return err
	}

	// Reading history must not create an empty database.
	led, err := ledger.Open(cfg.DataDir(), ledger.WithCreateIfNotExists(false))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			fmt.Println("No run history yet. The ledger is created by the first post or watch run.")
			return nil
		}
		return fmt.Errorf("open ledger: %w", err)
	}
	defer led.Close()

	records, err := led.RecentRuns(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("read run history: %w", err)
	}

	if _, err := writer.WriteHistory(records); err != nil {
		return fmt.Errorf("render history: %w", err)
	}

	return nil
}
