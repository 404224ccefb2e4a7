package report

import "strings"

// LangPlaceholder is replaced by the language code in link templates.
const LangPlaceholder = "{lang}"

// Default link templates.
const (
	DefaultSourceURL = "http://languagetool.svn.sourceforge.net/viewvc/languagetool/trunk/JLanguageTool/src/rules/{lang}/grammar.xml?content-type=text%2Fplain"
	DefaultBrowseURL = "http://community.languagetool.org/rule/list?lang={lang}"
	DefaultSiteURL   = "../{lang}/"
)

// Links holds the URL templates used in a report.
type Links struct {
	// Source points to the raw grammar file ("show").
	Source string

	// Browse points to the rule browser ("browse").
	Browse string

	// Site points to the language specific website.
	Site string
}

// DefaultLinks returns the links used on the LanguageTool website.
func DefaultLinks() Links {
	return Links{
		Source: DefaultSourceURL,
		Browse: DefaultBrowseURL,
		Site:   DefaultSiteURL,
	}
}

func expand(template, code string) string {
	return strings.ReplaceAll(template, LangPlaceholder, code)
}
