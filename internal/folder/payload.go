package folder

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// TreeDomain is the domain prefix for tree checksums.
// Version suffix enables future algorithm migration.
const TreeDomain = "folderstore/tree/v1"

// MarshalPayload serializes a tree snapshot into revision payload bytes.
// The encoding is deterministic for a given in-memory state: struct fields
// serialize in declaration order, child slices preserve insertion order, and
// HTML escaping is disabled so the bytes are stable across encoders.
func MarshalPayload(t Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("marshal tree payload: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalPayload decodes revision payload bytes back into a tree.
func UnmarshalPayload(payload []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(payload, &t); err != nil {
		return Tree{}, fmt.Errorf("unmarshal tree payload: %w", err)
	}
	return t, nil
}

// Checksum computes the content digest of a revision payload.
// Format: SHA256(domain + 0x00 + payload), hex encoded.
// The null byte separator prevents domain/payload boundary ambiguity.
func Checksum(payload []byte) string {
	h := sha256.New()
	h.Write([]byte(TreeDomain))
	h.Write([]byte{0x00})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
