// Package media defines the catalog records shared by the lookup pipeline:
// normalized queries, search candidates, movie/series and person details,
// image manifests, curated list categories, and secondary ratings.
//
// The records carry no transport concerns; the tmdb and omdb clients map
// their wire payloads into these types.
package media
