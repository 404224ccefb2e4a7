package catalog

import "errors"

// Catalog validation errors, checked with errors.Is.
var (
	// ErrNoLanguages is returned when the catalog lists no languages.
	ErrNoLanguages = errors.New("catalog lists no languages")

	// ErrEmptyCode is returned when a language has no code.
	ErrEmptyCode = errors.New("language code is empty")

	// ErrDuplicateCode is returned when two languages share a code.
	ErrDuplicateCode = errors.New("duplicate language code")

	// ErrInvalidCode is returned when a non-demo code is not a known BCP 47 tag.
	ErrInvalidCode = errors.New("invalid language code")

	// ErrEmptyMaintainerName is returned when a maintainer entry has no name.
	ErrEmptyMaintainerName = errors.New("maintainer name is empty")
)
