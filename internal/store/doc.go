// Package store provides SQLite-backed storage for settings and archived
// reports.
//
// Two tables:
//   - settings: key/value pairs such as the daily folder
//   - reports: rendered reports kept as JSON payloads, one row per save
//
// Report IDs are UUIDv7 so they sort by creation time. Listing orders by
// created_at DESC, id DESC so results are stable when timestamps tie.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The schema is embedded from schema.sql and versioned with PRAGMA
// user_version.
package store
