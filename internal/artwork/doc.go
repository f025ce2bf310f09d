// Package artwork keeps a local directory of poster, backdrop and person
// images downloaded from the catalog image CDN.
//
// Files are named {prefix}_{ownerID}_{basename} and are reused across runs:
// a cached file short-circuits the network entirely. Downloads land through
// a temp file and rename. Concurrent requests for the same image inside one
// process share a single download; ClearAll takes an exclusive lock on the
// directory so it never races an in-flight write from another process.
package artwork
