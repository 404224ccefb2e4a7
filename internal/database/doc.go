// Package database stores ruleoverview run history in SQLite.
//
// Each saved run records the product version, the generation time and the
// per-language counts, so that later runs can be compared. The database is
// a single file (modernc.org/sqlite, no cgo) under the XDG data directory.
//
// Tables:
//   - runs: one row per saved overview, keyed by a random UUID
//   - language_counts: one row per language and run
package database
