// Package store persists download requests in SQLite.
//
// Requests are content addressed: the primary identity is the request key
// (a domain-separated SHA-256 of the canonical JSON encoding), so writing
// the same request twice is a no-op. Listings are ordered by an
// AUTOINCREMENT seq column, never by timestamps.
//
// The request column holds canonical JSON. Reads decode it back through the
// predicate constructors, so a row that no longer validates surfaces as an
// error instead of an invalid tree.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
