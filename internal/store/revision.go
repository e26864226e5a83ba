package store

import (
	"context"
	"fmt"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
)

// AppendRevision persists a revision record durably before returning.
// Uses ON CONFLICT(object_id, target_seq) DO NOTHING for idempotency - a
// retried append of the same sequence position is silently ignored, which
// keeps interrupted initialize calls safe to re-run.
//
// The write trusts the caller's freshly computed checksum; verification
// happens on load.
func (s *Store) AppendRevision(ctx context.Context, rec revision.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revisions
		(object_id, base_seq, target_seq, payload, author_id, checksum, sync_state)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(object_id, target_seq) DO NOTHING
	`,
		rec.ObjectID,
		rec.BaseSeq,
		rec.TargetSeq,
		rec.Payload,
		rec.AuthorID,
		rec.Checksum,
		string(rec.State),
	)
	if err != nil {
		return fmt.Errorf("append revision: %w", err)
	}

	return nil
}

// LoadRevisions returns the ordered revision sequence for an object, or an
// empty slice if none exist. Every record's checksum is verified against its
// payload; a mismatch is surfaced as a corruption error, never repaired.
func (s *Store) LoadRevisions(ctx context.Context, objectID string) ([]revision.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT object_id, base_seq, target_seq, payload, author_id, checksum, sync_state
		FROM revisions
		WHERE object_id = ?
		ORDER BY target_seq ASC
	`, objectID)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	var records []revision.Record
	for rows.Next() {
		var rec revision.Record
		var state string
		if err := rows.Scan(
			&rec.ObjectID, &rec.BaseSeq, &rec.TargetSeq, &rec.Payload,
			&rec.AuthorID, &rec.Checksum, &state,
		); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		rec.State = revision.State(state)
		if err := rec.Verify(); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}

	// Return empty slice instead of nil
	if records == nil {
		records = []revision.Record{}
	}

	return records, nil
}

// HasRevisions reports whether current-format data exists for an object.
// Used by the migration engine to detect an already-migrated user.
func (s *Store) HasRevisions(ctx context.Context, objectID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM revisions WHERE object_id = ?
	`, objectID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check revisions: %w", err)
	}
	return count > 0, nil
}

// MarkRevisionSynced flips a record's sync state to synced after remote
// acknowledgement. Local durability is unaffected - the record was durable at
// append time. Fails with a not-found error if the record does not exist.
func (s *Store) MarkRevisionSynced(ctx context.Context, objectID string, targetSeq int64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE revisions SET sync_state = ?
		WHERE object_id = ? AND target_seq = ?
	`, string(revision.StateSynced), objectID, targetSeq)
	if err != nil {
		return fmt.Errorf("mark revision synced: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark revision synced: rows affected: %w", err)
	}
	if affected == 0 {
		return folder.NewNotFound("revision", fmt.Sprintf("%s@%d", objectID, targetSeq))
	}
	return nil
}

// PendingRevisions returns the records for an object still awaiting remote
// acknowledgement, in sequence order.
func (s *Store) PendingRevisions(ctx context.Context, objectID string) ([]revision.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT object_id, base_seq, target_seq, payload, author_id, checksum, sync_state
		FROM revisions
		WHERE object_id = ? AND sync_state = ?
		ORDER BY target_seq ASC
	`, objectID, string(revision.StatePending))
	if err != nil {
		return nil, fmt.Errorf("query pending revisions: %w", err)
	}
	defer rows.Close()

	var records []revision.Record
	for rows.Next() {
		var rec revision.Record
		var state string
		if err := rows.Scan(
			&rec.ObjectID, &rec.BaseSeq, &rec.TargetSeq, &rec.Payload,
			&rec.AuthorID, &rec.Checksum, &state,
		); err != nil {
			return nil, fmt.Errorf("scan pending revision: %w", err)
		}
		rec.State = revision.State(state)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending revisions: %w", err)
	}

	if records == nil {
		records = []revision.Record{}
	}

	return records, nil
}
