package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/rico-chet/languagetool/internal/model"
)

// MarkdownWriter outputs the overview as GitHub Flavored Markdown, for
// release notes and wiki pages.
type MarkdownWriter struct {
	baseWriter
	links Links
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, links Links) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		links:      links,
	}
}

// Write outputs the overview in Markdown format.
func (w *MarkdownWriter) Write(overview *model.Overview) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(fmt.Sprintf("Rules in %s %s", overview.Product, overview.Version))
	md.PlainText("")
	md.PlainTextf("Date: %s", overview.Date())
	md.PlainText("")

	w.writeTable(md, overview)
	w.writeTotals(md, overview)

	return len(md.String()), md.Build()
}

// writeTable writes one table row per language.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, overview *model.Overview) {
	rows := make([][]string, len(overview.Rows))
	for i, r := range overview.Rows {
		name := escapeCell(r.Name)
		if r.HasWebsite {
			name = markdown.Link(name, expand(w.links.Site, r.Code))
		}

		links := "-"
		if r.HasGrammar {
			links = markdown.Link("show", expand(w.links.Source, r.Code)) + "/" + markdown.Link("browse", expand(w.links.Browse, r.Code))
		}

		detected := "-"
		maintainers := "-"
		if r.HasFalseFriends {
			detected = autoDetectedText(r.AutoDetected)
			if len(r.Maintainers) > 0 {
				maintainers = w.maintainers(r.Maintainers)
			}
		}

		rows[i] = []string{
			name,
			strconv.Itoa(r.XMLRules),
			links,
			strconv.Itoa(r.JavaRules),
			strconv.Itoa(r.FalseFriends),
			detected,
			maintainers,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Language", "XML rules", "Links", "Java rules", "False friends", "Auto-detected", "Rule Maintainers"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTotals writes a short summary below the table.
func (w *MarkdownWriter) writeTotals(md *markdown.Markdown, overview *model.Overview) {
	md.BulletList(
		fmt.Sprintf("Languages: %d", len(overview.Rows)),
		fmt.Sprintf("XML rules: %d", overview.TotalXMLRules()),
		fmt.Sprintf("Java rules: %d", overview.TotalJavaRules()),
		fmt.Sprintf("False friends: %d", overview.TotalFalseFriends()),
	)
	md.PlainText("")
}

func (w *MarkdownWriter) maintainers(ms []model.Maintainer) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		s := escapeCell(m.Name)
		if m.URL != "" {
			s = markdown.Link(s, escapeCell(m.URL))
		}
		if m.Remark != "" {
			s += " (" + escapeCell(m.Remark) + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// escapeCell keeps a pipe in catalog text from ending the table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
