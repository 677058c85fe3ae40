package report

import (
	"io"

	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// Preview pairs a round's details with its composed announcement text.
// The preview command renders these without publishing anything.
type Preview struct {
	// Round is the fully fetched round detail.
	Round *model.RoundDetail `json:"round"`

	// Message is the announcement text as it would be posted.
	Message string `json:"message"`
}

// Writer renders bot output. Each implementation covers one format
// and knows how to print runs, previews, and ledger history. Reports
// are structured values rather than byte streams, so io.Writer alone
// is not enough here.
type Writer interface {
	// Write renders a full run report and reports the bytes written.
	Write(run *model.Run) (int, error)

	// WritePreviews renders announcement previews without run context.
	WritePreviews(previews []Preview) (int, error)

	// WriteHistory renders run records read back from the ledger.
	WriteHistory(records []ledger.RunRecord) (int, error)
}

// MultiWriter fans one report out to several Writers in order,
// for example a terminal and a log file at the same time.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter bundles the given Writers into a single Writer.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the run report through every configured Writer.
// The count sums the bytes from all of them; the first failure
// aborts the remaining writers.
func (m *MultiWriter) Write(run *model.Run) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WritePreviews renders the previews through every configured Writer.
func (m *MultiWriter) WritePreviews(previews []Preview) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WritePreviews(previews)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteHistory renders the run records through every configured Writer.
func (m *MultiWriter) WriteHistory(records []ledger.RunRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteHistory(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by the concrete writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
