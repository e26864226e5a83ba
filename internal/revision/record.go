package revision

import (
	"fmt"

	"github.com/roach88/folderstore/internal/folder"
)

// State tracks a record's remote synchronization status.
type State string

const (
	// StatePending marks a record not yet acknowledged by a remote.
	StatePending State = "pending"

	// StateSynced marks a record a remote has acknowledged.
	StateSynced State = "synced"
)

// Record is one immutable revision of a tree object.
type Record struct {
	ObjectID  string `json:"object_id"`
	BaseSeq   int64  `json:"base_seq"`
	TargetSeq int64  `json:"target_seq"`
	Payload   []byte `json:"payload"`
	AuthorID  string `json:"author_id"`
	Checksum  string `json:"checksum"`
	State     State  `json:"state"`
}

// ObjectID returns the revision object identifier for a user's folder tree.
func ObjectID(userID string) string {
	return "folder/" + userID
}

// New creates an incremental record, computing the payload checksum.
func New(objectID string, baseSeq int64, payload []byte, authorID string) Record {
	return Record{
		ObjectID:  objectID,
		BaseSeq:   baseSeq,
		TargetSeq: baseSeq + 1,
		Payload:   payload,
		AuthorID:  authorID,
		Checksum:  folder.Checksum(payload),
		State:     StatePending,
	}
}

// Bootstrap creates the first record for an object, at sequence (0, 0).
func Bootstrap(objectID string, payload []byte, authorID string) Record {
	return Record{
		ObjectID:  objectID,
		BaseSeq:   0,
		TargetSeq: 0,
		Payload:   payload,
		AuthorID:  authorID,
		Checksum:  folder.Checksum(payload),
		State:     StatePending,
	}
}

// BootstrapFromTree serializes a tree and wraps it in a bootstrap record.
func BootstrapFromTree(objectID string, t folder.Tree, authorID string) (Record, error) {
	payload, err := folder.MarshalPayload(t)
	if err != nil {
		return Record{}, fmt.Errorf("bootstrap record: %w", err)
	}
	return Bootstrap(objectID, payload, authorID), nil
}

// IsBootstrap reports whether the record is an object's bootstrap record.
func (r Record) IsBootstrap() bool {
	return r.BaseSeq == 0 && r.TargetSeq == 0
}

// Verify checks the record's integrity: the stored checksum must match the
// payload, and the sequence pair must be either incremental or bootstrap.
// Failures are corruption errors, surfaced, never silently repaired.
func (r Record) Verify() error {
	if !r.IsBootstrap() && r.TargetSeq != r.BaseSeq+1 {
		return folder.NewCorruption(r.ObjectID,
			fmt.Sprintf("invalid sequence pair (base=%d, target=%d)", r.BaseSeq, r.TargetSeq))
	}
	if got := folder.Checksum(r.Payload); got != r.Checksum {
		return folder.NewCorruption(r.ObjectID,
			fmt.Sprintf("checksum mismatch at seq %d", r.TargetSeq))
	}
	return nil
}

// ValidateChain checks that an ordered sequence of records for one object
// forms an unbroken chain: the first record starts at base 0, every later
// record's base equals its predecessor's target, and every record verifies.
func ValidateChain(records []Record) error {
	for i, rec := range records {
		if err := rec.Verify(); err != nil {
			return err
		}
		if i == 0 {
			if rec.BaseSeq != 0 {
				return folder.NewCorruption(rec.ObjectID,
					fmt.Sprintf("first record starts at base %d, want 0", rec.BaseSeq))
			}
			continue
		}
		if rec.BaseSeq != records[i-1].TargetSeq {
			return folder.NewCorruption(rec.ObjectID,
				fmt.Sprintf("sequence gap: record %d has base %d, predecessor target %d",
					i, rec.BaseSeq, records[i-1].TargetSeq))
		}
	}
	return nil
}
