// Package preflight provides readiness checks for the remote services and
// filesystem paths that cinelookup depends on.
//
// The CLI "cinelookup status" command runs RunAll and prints one row per
// check. Checks never fail the process; each returns a Result with a short
// human-readable detail. Optional features (ratings, artwork, history) are
// reported as disabled instead of failing when they are turned off.
package preflight
