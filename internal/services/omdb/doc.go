// Package omdb fetches the secondary critic rating for a catalog detail.
//
// Lookups prefer the IMDb id carried by the detail and fall back to a
// title and year match. A "not found" answer is a valid outcome and yields
// the zero media.SecondaryRating.
package omdb
