// Package tmdb provides the catalog client used by the lookup pipeline.
//
// It authenticates requests and exposes movie, series, multi and person
// search, movie/series and person details, curated lists, and image
// manifests. Wire payloads are decoded into private structs and mapped to
// internal/media records by typed parsers, so absent fields get explicit
// defaults instead of leaking nil maps.
//
// Every failure is classified with a services sentinel: 404 is ErrNotFound,
// 401 is ErrConfigurationMissing, everything else (transport, status,
// undecodable body) is ErrRemoteUnavailable with an empty result. Options
// allow tests to supply custom HTTP clients without modifying production code.
package tmdb
