// Package logging assembles structured slog loggers and formatting helpers used
// across cinelookup.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so lookup code can tag log lines with the
// operation name and request token. Remote failures are logged here rather
// than shown to the user; WarnWithContext enforces the cause/impact fields
// those lines need.
package logging
