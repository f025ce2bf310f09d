// Package history persists resolved lookups in a small SQLite database so the
// CLI can list recent queries and the tier that answered them.
//
// The store follows the same conventions as the other SQLite stores in the
// codebase: WAL journal, busy timeout, retry on SQLITE_BUSY, an embedded
// schema with a version row, and a hard reset when the version changes.
package history
