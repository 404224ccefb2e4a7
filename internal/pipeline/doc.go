// Package pipeline assembles the report row of a single language.
//
// A Pipeline runs an ordered list of Steps against a model.Row. Each step
// fills in one part of the row: website link, XML rule count, Java rule
// count, false friends and auto-detection, maintainers. DefaultPipeline
// wires all of them to a rule source and a language catalog.
package pipeline
