// Package log builds the slog loggers used by ruleoverview.
//
// Catalog data names real people: maintainer URLs are sometimes mailto:
// links, and override files may carry contact addresses. MaskingHandler
// wraps any slog.Handler and masks e-mail addresses in attribute values, so
// verbose logs can be attached to bug reports as they are.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("maintainer", "url", "mailto:jane@example.org")
//	// url=mailto:***@example.org
//
// Logs always go to the writer passed in, never to stdout, which carries
// the report.
package log
