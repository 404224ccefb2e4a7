// Package model defines the data structures shared by the rule overview
// generator, the report writers and the run history.
//
// This package contains the following main types:
//   - Overview: one generated rule overview (banner data plus rows)
//   - Row: the counts and metadata reported for a single language
//   - Maintainer: a rule maintainer as rendered in a row
//
// The models are serializable to JSON for report output and database storage.
package model
