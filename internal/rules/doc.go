// Package rules reads LanguageTool rule resources and counts the rules they
// define.
//
// A Source gives read-only access to a project tree laid out the way the
// LanguageTool repository is:
//
//	src/rules/<code>/grammar.xml              pattern rules
//	src/rules/false-friends.xml               false friends for all languages
//	src/java/org/languagetool/rules/<code>/   Java rules
//	website/www/<code>/                       language specific website
//
// Missing resources are reported as absent rather than as errors.
package rules
