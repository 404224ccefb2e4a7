package rules

import (
	"regexp"
	"strings"
)

// Markers counted in rule files.
const (
	// RuleMarker opens a rule that carries attributes (id, name, ...).
	RuleMarker = "<rule "

	// RuleGroupMarker opens a rule inside a rulegroup, which has no attributes.
	RuleGroupMarker = "<rule>"

	// falseFriendMarkerPrefix is followed by the language code.
	falseFriendMarkerPrefix = `<pattern lang="`
)

var (
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	rootTagPattern = regexp.MustCompile(`(?s)<rules.*?>`)
)

// StripMarkup removes XML comments and <rules ...> opening tags from a rule
// file so that neither contributes to the marker counts.
func StripMarkup(text string) string {
	text = commentPattern.ReplaceAllString(text, "")
	return rootTagPattern.ReplaceAllString(text, "")
}

// CountOccurrences returns the number of non-overlapping occurrences of
// marker in text. The search is case-sensitive. An empty marker counts zero.
func CountOccurrences(text, marker string) int {
	if marker == "" {
		return 0
	}
	return strings.Count(text, marker)
}

// CountXMLRules counts the pattern rules in a grammar file: attributed rules
// plus bare rules inside rule groups.
func CountXMLRules(grammar string) int {
	stripped := StripMarkup(grammar)
	return CountOccurrences(stripped, RuleMarker) + CountOccurrences(stripped, RuleGroupMarker)
}

// FalseFriendMarker returns the marker that tags a false friend pattern with
// the given language code.
func FalseFriendMarker(code string) string {
	return falseFriendMarkerPrefix + code
}

// CountFalseFriends counts the false friend patterns for code in an already
// stripped false-friends file.
func CountFalseFriends(strippedFalseFriends, code string) int {
	return CountOccurrences(strippedFalseFriends, FalseFriendMarker(code))
}

// CountJavaRules returns the number of Java rules given the number of source
// files in a language's rule directory. One file is always the language's
// base rule class and is not a rule itself.
func CountJavaRules(sourceFiles int) int {
	return sourceFiles - 1
}
