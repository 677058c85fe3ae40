package report

import (
	"encoding/json"
	"io"

	"github.com/tfk-discgolf/metrixbot/internal/ledger"
	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// JSONWriter renders runs, previews, and history as JSON for scripts
// and other tools. The output shapes are the json tags of the model
// and ledger types, so what the bot stores is what a consumer reads.
type JSONWriter struct {
	baseWriter

	// pretty switches from compact to indented output.
	pretty bool

	// prefix and indent are handed to json.MarshalIndent when pretty.
	prefix string
	indent string
}

// JSONWriterOption adjusts a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent switches to indented output, with prefix starting each
// line and indent repeated per nesting level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.pretty = true
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter returns a JSONWriter writing to output, compact by
// default.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the full run report in JSON format.
func (w *JSONWriter) Write(run *model.Run) (int, error) {
	return w.encode(run)
}

// WritePreviews renders announcement previews in JSON format.
// The output is always an array, even when there is nothing to preview.
func (w *JSONWriter) WritePreviews(previews []Preview) (int, error) {
	if previews == nil {
		previews = []Preview{}
	}
	return w.encode(previews)
}

// WriteHistory renders ledger run records in JSON format.
func (w *JSONWriter) WriteHistory(records []ledger.RunRecord) (int, error) {
	if records == nil {
		records = []ledger.RunRecord{}
	}
	return w.encode(records)
}

// encode marshals v and writes it followed by a newline, so compact
// output still ends cleanly in a terminal or a line-oriented pipe.
func (w *JSONWriter) encode(v any) (int, error) {
	data, err := w.marshal(v)
	if err != nil {
		return 0, err
	}

	n, err := w.output.Write(data)
	if err != nil {
		return n, err
	}

	m, err := io.WriteString(w.output, "\n")
	return n + m, err
}

func (w *JSONWriter) marshal(v any) ([]byte, error) {
	if w.pretty {
		return json.MarshalIndent(v, w.prefix, w.indent)
	}
	return json.Marshal(v)
}
