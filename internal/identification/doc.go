// Package identification turns noisy titles into a single catalog match.
//
// Normalize strips program-guide noise and extracts a year hint. The
// Resolver then runs the tiered selection: multi search, exact-year scan in
// catalog order, popularity tie-break with a short-runtime re-check against
// series search, and a movie-then-series fallback. Person results are never
// selected automatically.
//
// NewCachedSearcher memoizes identical searches and spaces requests so
// repeated lookups in one session stay cheap. The tmdb subpackage provides
// the production Searcher.
package identification
