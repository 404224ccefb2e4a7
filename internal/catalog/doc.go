// Package catalog describes the languages a LanguageTool installation
// supports: their codes, display names and rule maintainers, plus the codes
// the language identifier can detect.
//
// A default catalog is embedded in the binary. A YAML file with the same
// shape can replace it.
package catalog
