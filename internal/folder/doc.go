// Package folder defines the in-memory folder tree model: workspaces that own
// apps, apps that own views, and a parallel trash collection for soft-deleted
// items.
//
// # Invariants
//
//   - Identifiers are unique across the whole tree for their entity kind.
//   - Every app and view belongs to exactly one live parent (a workspace or
//     the trash), never both.
//
// All tree mutations go through methods on Tree, which enforce the invariants
// and return typed errors (see errors.go). Entity names are NFC-normalized on
// the way in so that serialization and checksums are stable regardless of the
// Unicode form the caller used.
//
// # Serialization
//
// MarshalPayload produces the deterministic snapshot bytes persisted inside a
// revision record; Checksum computes the domain-separated SHA-256 digest of
// those bytes. A tree decoded from a payload and re-marshaled produces the
// identical bytes, which is what makes checksum verification on replay sound.
package folder
