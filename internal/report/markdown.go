package report

import (
	"io"
	"time"

	"github.com/nao1215/markdown"
	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// MarkdownWriter renders reports as GitHub-flavored Markdown, built
// with the nao1215/markdown fluent API. The output is meant for
// sharing, for example pasting a preview into the club's chat for
// review, and uses tables, code blocks, and alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter returns a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the full run report in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Metrixbot Run Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + run.ID + "`"},
			{"Trigger", run.Trigger.String()},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", formatDuration(run)},
			{"Outcome", string(run.Outcome)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, run)

	if run.Round != nil {
		w.writeRound(md, run.Round)
	}

	if run.Message != "" {
		md.H2("Announcement")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, run.Message)
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WritePreviews renders announcement previews in Markdown format.
func (w *MarkdownWriter) WritePreviews(previews []Preview) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Announcement Preview")
	md.PlainText("")

	if len(previews) == 0 {
		md.PlainText("No upcoming rounds to preview.")
		md.PlainText("")
	}

	for _, p := range previews {
		w.writeRound(md, p.Round)
		md.CodeBlocks(markdown.SyntaxHighlightText, p.Message)
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteHistory renders ledger run records in Markdown format.
func (w *MarkdownWriter) WriteHistory(records []ledger.RunRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run History")
	md.PlainText("")

	if len(records) == 0 {
		md.PlainText("No runs recorded yet.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		detail := rec.RoundURL
		if rec.Error != "" {
			detail = rec.Error
		}
		rows[i] = []string{
			rec.StartedAt.Format("2006-01-02 15:04"),
			rec.TriggeredBy,
			string(rec.Outcome),
			truncateString(detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Started (UTC)", "Trigger", "Outcome", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeRound writes the selected round section.
func (w *MarkdownWriter) writeRound(md *markdown.Markdown, round *model.RoundDetail) {
	md.H2(round.Title)
	md.PlainText("")
	md.BulletList(
		"Starts: "+round.StartsAt.Format("2006-01-02 15:04 MST"),
		"Course: "+round.CourseFull,
		"URL: "+round.URL,
	)
	md.PlainText("")
}

// writeAlert writes an outcome alert for the run.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, run *model.Run) {
	switch run.Outcome {
	case model.OutcomeFailed:
		md.Cautionf("Run failed: %s", run.ErrorMessage)
	case model.OutcomePosted:
		md.Tipf("Announcement published (post ID `%s`).", run.PostID)
	case model.OutcomeDuplicate:
		md.Note("This round was already announced; nothing was published.")
	case model.OutcomeNoRound:
		md.Note("No round on the target date; nothing to announce.")
	case model.OutcomeDryRun:
		md.Importantf("Dry run: the announcement below was composed but not published.")
	}
	md.PlainText("")
}

// writeFooter closes the document with a rule and an attribution line.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by metrixbot*")
}

// formatDuration renders the run duration, or a dash while running.
func formatDuration(run *model.Run) string {
	if run.FinishedAt.IsZero() {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

// truncateString shortens s to maxLen characters, ending in "..."
// when anything was cut.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
