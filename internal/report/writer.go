package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rico-chet/languagetool/internal/model"
)

// Format names accepted by New.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatText     = "text"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatHTML, FormatMarkdown, FormatJSON, FormatText}
}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the overview to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(overview *model.Overview) (int, error)
}

// New returns the writer for a format name. Verbose adds the maintainer
// column to the text format.
func New(format string, output io.Writer, links Links, verbose bool) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatHTML:
		return NewHTMLWriter(output, WithLinks(links)), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output, links), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatText:
		return NewSimpleWriter(output, WithVerbose(verbose)), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the overview to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(overview *model.Overview) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(overview)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
