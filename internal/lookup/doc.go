// Package lookup runs catalog work off the caller's goroutine and hands back
// Task handles.
//
// Every user request begins with Tracker.Begin, which issues a fresh token
// and cancels the previous request. Results carry the token that produced
// them; consumers drop anything whose token is no longer current. Artwork
// and rating enrichment run as independent tasks that may finish in any
// order.
package lookup
