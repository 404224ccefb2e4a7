package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rico-chet/languagetool/internal/model"
)

// SimpleWriter outputs a plain text table for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the maintainer column.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the overview in human-readable format.
func (w *SimpleWriter) Write(overview *model.Overview) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, overview)
	if err := w.writeTable(&sb, overview); err != nil {
		return 0, err
	}
	w.writeFooter(&sb, overview)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, overview *model.Overview) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Rules in %s %s\n", overview.Product, overview.Version)
	fmt.Fprintf(sb, "Date: %s\n", overview.Date())
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeTable writes one aligned line per language.
func (w *SimpleWriter) writeTable(sb *strings.Builder, overview *model.Overview) error {
	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)

	header := "LANGUAGE\tXML\tJAVA\tFALSE FRIENDS\tAUTO-DETECTED"
	if w.verbose {
		header += "\tMAINTAINERS"
	}
	fmt.Fprintln(tw, header)

	for _, r := range overview.Rows {
		line := fmt.Sprintf("%s\t%d\t%d\t%d\t%s",
			r.Name, r.XMLRules, r.JavaRules, r.FalseFriends, autoDetectedText(r.AutoDetected))
		if w.verbose {
			names := make([]string, len(r.Maintainers))
			for i, m := range r.Maintainers {
				names[i] = m.Name
			}
			line += "\t" + strings.Join(names, ", ")
		}
		fmt.Fprintln(tw, line)
	}

	return tw.Flush()
}

// writeFooter writes the totals.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, overview *model.Overview) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%d languages, %d XML rules, %d Java rules, %d false friends\n",
		len(overview.Rows), overview.TotalXMLRules(), overview.TotalJavaRules(), overview.TotalFalseFriends())
}
