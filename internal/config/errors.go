package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be checked with
// errors.Is().
var (
	// ErrEmptyRootDir is returned when no project root directory is set.
	ErrEmptyRootDir = errors.New("invalid root directory: must not be empty")

	// ErrInvalidFormat is returned when the report format is not one of the
	// supported writer formats.
	ErrInvalidFormat = errors.New("invalid report format: must be one of html, markdown, json, text")

	// ErrInvalidLogFormat is returned when the log format is neither text
	// nor json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrEmptySourceSuffix is returned when the Java source suffix is empty.
	// An empty suffix would count every file in a rule directory.
	ErrEmptySourceSuffix = errors.New("invalid source suffix: must not be empty")

	// ErrEmptyLayoutPath is returned when one of the rule directories is empty.
	ErrEmptyLayoutPath = errors.New("invalid layout: rules, java rules and website directories must be set")

	// ErrMissingPlaceholder is returned when a link template does not contain
	// the {lang} placeholder.
	ErrMissingPlaceholder = errors.New("invalid link template: missing {lang} placeholder")
)
