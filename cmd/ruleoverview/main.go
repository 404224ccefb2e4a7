// Package main provides the entry point for the ruleoverview CLI.
//
// ruleoverview counts the grammar rules of every LanguageTool language and
// writes the HTML table shown on the project website.
//
// Usage:
//
//	ruleoverview --root ~/src/languagetool > rules.html
//	ruleoverview compare
//
// See --help for all available options.
package main

func main() {
	Execute()
}
