package rules

import "strings"

// FileFilter reports whether a file name should be counted.
type FileFilter func(name string) bool

// DefaultSourceSuffix is the suffix of Java rule source files.
const DefaultSourceSuffix = ".java"

// SuffixFilter accepts names ending in suffix.
func SuffixFilter(suffix string) FileFilter {
	return func(name string) bool {
		return strings.HasSuffix(name, suffix)
	}
}
