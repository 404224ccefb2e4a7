package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/rico-chet/languagetool/internal/model"
)

// HTMLWriter outputs the overview as the HTML fragment embedded in the
// project website: a banner followed by a sortable table.
type HTMLWriter struct {
	baseWriter
	links Links
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithLinks sets the URL templates.
func WithLinks(links Links) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.links = links
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		links:      DefaultLinks(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the overview in HTML format.
func (w *HTMLWriter) Write(overview *model.Overview) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, overview)
	for i := range overview.Rows {
		w.writeRow(&sb, &overview.Rows[i])
	}
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the banner and the table head.
func (w *HTMLWriter) writeHeader(sb *strings.Builder, overview *model.Overview) {
	fmt.Fprintf(sb, "<b>Rules in %s %s</b><br />\n",
		html.EscapeString(overview.Product), html.EscapeString(overview.Version))
	fmt.Fprintf(sb, "Date: %s<br /><br />\n\n", overview.Date())
	sb.WriteString("<table class=\"tablesorter sortable\">\n")
	sb.WriteString("<thead>\n")
	sb.WriteString("<tr>\n")
	sb.WriteString("  <th valign='bottom' width=\"70\">Language</th>\n")
	sb.WriteString("  <th valign='bottom' align=\"left\" width=\"60\">XML<br/>rules</th>\n")
	sb.WriteString("  <th></th>\n")
	sb.WriteString("  <th align=\"left\" width=\"60\">Java<br/>rules</th>\n")
	sb.WriteString("  <th align=\"left\" width=\"60\">False<br/>friends</th>\n")
	sb.WriteString("  <th valign='bottom' width=\"65\">Auto-<br/>detected</th>\n")
	sb.WriteString("  <th valign='bottom' align=\"left\">Rule Maintainers</th>\n")
	sb.WriteString("</tr>\n")
	sb.WriteString("</thead>\n")
	sb.WriteString("<tbody>\n")
}

// writeRow writes one table row. Cells for absent inputs collapse the way
// the website table always has: no link cell without a grammar file, and
// no auto-detection or maintainer cells without the false-friends file.
func (w *HTMLWriter) writeRow(sb *strings.Builder, row *model.Row) {
	sb.WriteString("<tr>")

	name := html.EscapeString(row.Name)
	if row.HasWebsite {
		fmt.Fprintf(sb, "<td valign=\"top\"><a href=\"%s\">%s</a></td>",
			html.EscapeString(expand(w.links.Site, row.Code)), name)
	} else {
		fmt.Fprintf(sb, "<td valign=\"top\">%s</td>", name)
	}

	if row.HasGrammar {
		writeCount(sb, row.XMLRules)
		fmt.Fprintf(sb, "<td valign=\"top\" align=\"right\"><a href=\"%s\">show</a>/<a href=\"%s\">browse</a></td>",
			html.EscapeString(expand(w.links.Source, row.Code)),
			html.EscapeString(expand(w.links.Browse, row.Code)))
	} else {
		writeCount(sb, 0)
	}

	writeCount(sb, row.JavaRules)

	if row.HasFalseFriends {
		writeCount(sb, row.FalseFriends)
		fmt.Fprintf(sb, "<td valign=\"top\">%s</td>", autoDetectedText(row.AutoDetected))
		fmt.Fprintf(sb, "<td valign=\"top\" align=\"left\">%s</td>", MaintainersHTML(row.Maintainers))
	} else {
		writeCount(sb, 0)
	}

	sb.WriteString("</tr>\n")
}

// writeFooter closes the table.
func (w *HTMLWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString("</tbody>\n")
	sb.WriteString("</table>\n")
}

func writeCount(sb *strings.Builder, n int) {
	fmt.Fprintf(sb, "<td valign=\"top\" align=\"right\">%d</td>", n)
}

func autoDetectedText(detected bool) string {
	if detected {
		return "yes"
	}
	return "-"
}

// MaintainersHTML renders maintainers as a comma separated list. Names with
// a URL are linked; a remark follows the name in parentheses.
func MaintainersHTML(maintainers []model.Maintainer) string {
	var sb strings.Builder
	for i, m := range maintainers {
		if i > 0 {
			sb.WriteString(", ")
		}
		if m.URL != "" {
			fmt.Fprintf(&sb, "<a href=\"%s\">", html.EscapeString(m.URL))
		}
		sb.WriteString(html.EscapeString(m.Name))
		if m.URL != "" {
			sb.WriteString("</a>")
		}
		if m.Remark != "" {
			fmt.Fprintf(&sb, "&nbsp;(%s)", html.EscapeString(m.Remark))
		}
	}
	return sb.String()
}
