// Package store provides SQLite-backed durable storage for folder revision
// logs.
//
// The store holds two families of tables:
//
//   - revisions: the append-only, checksummed revision log for the current
//     storage format. Records are immutable once appended; amendments are new
//     records, never in-place edits. The sole mutable column is sync_state,
//     which tracks remote acknowledgement and never affects local durability.
//   - legacy_*: the pre-revision entity tables (workspaces, apps, views,
//     trash). The migration engine reads them once per user to build the
//     bootstrap revision; new writes never target them.
//
// Checksum verification happens on load, not on write: AppendRevision trusts
// the caller's freshly computed digest, LoadRevisions verifies every record
// and surfaces a corruption error on mismatch.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity on the legacy tables
package store
