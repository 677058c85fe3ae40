package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// SimpleWriter renders human-readable text reports for the terminal.
// Sections are separated with plain ASCII rules, no ANSI colors, so
// the output pipes cleanly into files and CI logs.
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output, such as the
	// full list of rounds parsed from the series page.
	verbose bool
}

// SimpleWriterOption adjusts a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose adds the series round listing to run reports.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter returns a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

const lineWidth = 70

// Write renders the full run report in human-readable format.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, run)
	w.writeRound(&sb, run.Round)
	w.writeMessage(&sb, run.Message)
	if w.verbose {
		w.writeRounds(&sb, run.Rounds)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WritePreviews renders announcement previews in human-readable format.
func (w *SimpleWriter) WritePreviews(previews []Preview) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("                      ANNOUNCEMENT PREVIEW\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")

	if len(previews) == 0 {
		sb.WriteString("\nNo upcoming rounds to preview.\n")
	}

	for _, p := range previews {
		w.writeRound(&sb, p.Round)
		w.writeMessage(&sb, p.Message)
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory renders ledger run records in human-readable format.
func (w *SimpleWriter) WriteHistory(records []ledger.RunRecord) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("                         RUN HISTORY\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n\n")

	if len(records) == 0 {
		sb.WriteString("No runs recorded yet.\n")
	}

	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("%s  %-9s  %s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.TriggeredBy,
			rec.Outcome,
		))
		if rec.RoundURL != "" {
			sb.WriteString(fmt.Sprintf("    round: %s\n", rec.RoundURL))
		}
		if rec.Error != "" {
			sb.WriteString(fmt.Sprintf("    error: %s\n", rec.Error))
		}
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the banner and the run summary fields.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, run *model.Run) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("                        METRIXBOT RUN REPORT\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Run ID:     %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Trigger:    %s\n", run.Trigger))
	sb.WriteString(fmt.Sprintf("Started:    %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST")))
	if !run.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Duration:   %s\n", run.Duration().Round(time.Millisecond)))
	}

	switch {
	case run.TimedOut:
		sb.WriteString("Status:     TIMED OUT\n")
	case run.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status:     %s - %s\n", run.Outcome, run.ErrorMessage))
	default:
		sb.WriteString(fmt.Sprintf("Status:     %s\n", run.Outcome))
	}

	if run.PostID != "" {
		sb.WriteString(fmt.Sprintf("Post ID:    %s\n", run.PostID))
	}

	sb.WriteString("\n")
}

// writeRound writes the selected round section.
func (w *SimpleWriter) writeRound(sb *strings.Builder, round *model.RoundDetail) {
	if round == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("SELECTED ROUND\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Title:    %s\n", round.Title))
	sb.WriteString(fmt.Sprintf("  Starts:   %s\n", round.StartsAt.Format("2006-01-02 15:04 MST")))
	sb.WriteString(fmt.Sprintf("  Course:   %s\n", round.CourseFull))
	sb.WriteString(fmt.Sprintf("  URL:      %s\n", round.URL))
	sb.WriteString("\n")
}

// writeMessage writes the composed announcement section.
func (w *SimpleWriter) writeMessage(sb *strings.Builder, message string) {
	if message == "" {
		return
	}

	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("ANNOUNCEMENT\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")
	sb.WriteString(message)
	sb.WriteString("\n\n")
}

// writeRounds writes the full series listing section.
func (w *SimpleWriter) writeRounds(sb *strings.Builder, rounds []model.Round) {
	if len(rounds) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("SERIES ROUNDS\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")

	for _, r := range rounds {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", r.StartsAt.Format("2006-01-02 15:04"), r.Title))
	}
	sb.WriteString("\n")
}

// writeFooter closes the report with a final rule.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
}
