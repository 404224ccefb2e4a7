// Package report writes rule overviews.
//
// This package contains writers for different output formats:
//   - HTMLWriter: the HTML table published on the project website
//   - MarkdownWriter: GitHub Flavored Markdown
//   - JSONWriter: structured JSON for tool integration
//   - SimpleWriter: plain text for terminal display
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter.
package report
