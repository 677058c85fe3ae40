package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/model"
	"github.com/tfk-discgolf/metrixbot/internal/report"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
		if flag.DefValue != "10" {
			t.Errorf("expected default '10', got %q", flag.DefValue)
		}
	})

	t.Run("has format flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
		if flag.DefValue != "simple" {
			t.Errorf("expected default 'simple', got %q", flag.DefValue)
		}
	})
}

// seedLedger records the given runs into a fresh ledger in dir.
func seedLedger(t *testing.T, dir string, runs ...*model.Run) {
	t.Helper()

	led, err := ledger.Open(dir)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	defer led.Close()

	for _, run := range runs {
		if err := led.RecordRun(context.Background(), run); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}
}

func postedRun() *model.Run {
	run := model.NewRun(model.TriggerManual)
	run.Outcome = model.OutcomePosted
	run.Round = &model.RoundDetail{
		Title: "Runde 14, Lade",
		URL:   "https://discgolfmetrix.com/3300014",
	}
	run.PostID = "123456789_987654321"
	run.Finish()
	return run
}

// TestRunHistoryCmd tests the history command execution.
func TestRunHistoryCmd(t *testing.T) {
	t.Run("no ledger yet", func(t *testing.T) {
		cfgPath := writeTestConfig(t, "", t.TempDir())

		var err error
		output := captureStdout(t, func() {
			root := NewRootCmd()
			root.SetArgs([]string{"history", "-c", cfgPath})
			err = root.Execute()
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "No run history yet") {
			t.Errorf("expected friendly notice, got %q", output)
		}
	})

	t.Run("lists recorded runs", func(t *testing.T) {
		dir := t.TempDir()
		seedLedger(t, dir, postedRun())
		cfgPath := writeTestConfig(t, "", dir)

		var err error
		output := captureStdout(t, func() {
			root := NewRootCmd()
			root.SetArgs([]string{"history", "-c", cfgPath})
			err = root.Execute()
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(output, "RUN HISTORY") {
			t.Errorf("expected history header, got %q", output)
		}
		if !strings.Contains(output, "posted") {
			t.Errorf("expected posted outcome, got %q", output)
		}
		if !strings.Contains(output, "manual") {
			t.Errorf("expected manual trigger, got %q", output)
		}
		if !strings.Contains(output, "https://discgolfmetrix.com/3300014") {
			t.Errorf("expected round URL, got %q", output)
		}
	})

	t.Run("json format", func(t *testing.T) {
		dir := t.TempDir()
		seedLedger(t, dir, postedRun())
		cfgPath := writeTestConfig(t, "", dir)

		var err error
		output := captureStdout(t, func() {
			root := NewRootCmd()
			root.SetArgs([]string{"history", "--format", "json", "-c", cfgPath})
			err = root.Execute()
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var records []ledger.RunRecord
		if err := json.Unmarshal([]byte(output), &records); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Outcome != model.OutcomePosted {
			t.Errorf("expected posted outcome, got %q", records[0].Outcome)
		}
	})

	t.Run("respects the limit flag", func(t *testing.T) {
		dir := t.TempDir()
		seedLedger(t, dir, postedRun(), postedRun(), postedRun())
		cfgPath := writeTestConfig(t, "", dir)

		var err error
		output := captureStdout(t, func() {
			root := NewRootCmd()
			root.SetArgs([]string{"history", "--format", "json", "--limit", "2", "-c", cfgPath})
			err = root.Execute()
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var records []ledger.RunRecord
		if err := json.Unmarshal([]byte(output), &records); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		cfgPath := writeTestConfig(t, "", t.TempDir())

		root := NewRootCmd()
		root.SetArgs([]string{"history", "--format", "xml", "-c", cfgPath})

		err := root.Execute()
		if !errors.Is(err, report.ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})
}
