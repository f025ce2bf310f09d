// Package main hosts the cinelookup CLI entrypoint and command graph.
//
// Commands resolve free-form titles against the catalog, render the detail
// view with its secondary rating and cached artwork, and expose the curated
// lists, person lookup, image manifests, the artwork cache, lookup history
// and configuration scaffolding. Wiring of clients and stores lives in
// context.go so each subcommand only deals with presentation.
//
// Failures follow the two-message rule: missing configuration is reported
// with an actionable hint, every other failure prints "No results" and the
// cause goes to the debug log.
package main
