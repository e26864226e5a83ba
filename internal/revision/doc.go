// Package revision defines the immutable unit of persisted change: a
// sequence-numbered, checksummed snapshot of one tree object.
//
// Every committed mutation produces a record whose target sequence is exactly
// one greater than its base sequence; the bootstrap record for an object uses
// base = target = 0. Checksums are verified on load, never on write - the
// writer is trusted to have computed the digest from the payload it persists.
//
// The sync state distinguishes records still pending upload to a remote from
// records the remote has acknowledged. It never affects local durability,
// which is the log's contract at write time.
package revision
