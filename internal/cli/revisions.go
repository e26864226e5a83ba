package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/folderstore/internal/revision"
	"github.com/roach88/folderstore/internal/store"
)

// RevisionSummary is one revision log entry's metadata.
type RevisionSummary struct {
	BaseSeq      int64  `json:"base_seq"`
	TargetSeq    int64  `json:"target_seq"`
	AuthorID     string `json:"author_id"`
	Checksum     string `json:"checksum"`
	SyncState    string `json:"sync_state"`
	PayloadBytes int    `json:"payload_bytes"`
}

// RevisionsResult holds the revisions command output.
type RevisionsResult struct {
	ObjectID  string            `json:"object_id"`
	Revisions []RevisionSummary `json:"revisions"`
}

// NewRevisionsCommand creates the revisions command, which lists the revision
// log metadata for a user's folder object.
func NewRevisionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "revisions <user-id>",
		Short: "List revision records for a user's folder tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			s, err := store.Open(rootOpts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			objectID := revision.ObjectID(userID)
			records, err := s.LoadRevisions(cmd.Context(), objectID)
			if err != nil {
				return WrapExitError(ExitFailure, "load revisions", err)
			}

			result := RevisionsResult{
				ObjectID:  objectID,
				Revisions: make([]RevisionSummary, 0, len(records)),
			}
			for _, rec := range records {
				result.Revisions = append(result.Revisions, RevisionSummary{
					BaseSeq:      rec.BaseSeq,
					TargetSeq:    rec.TargetSeq,
					AuthorID:     rec.AuthorID,
					Checksum:     rec.Checksum,
					SyncState:    string(rec.State),
					PayloadBytes: len(rec.Payload),
				})
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Emit(result, func(w io.Writer) {
				fmt.Fprintf(w, "object %s: %d revision(s)\n", result.ObjectID, len(result.Revisions))
				for _, rev := range result.Revisions {
					fmt.Fprintf(w, "  %d -> %d  %-7s  %d bytes  %s  by %s\n",
						rev.BaseSeq, rev.TargetSeq, rev.SyncState, rev.PayloadBytes,
						shortChecksum(rev.Checksum), rev.AuthorID)
				}
			})
		},
	}
}

// shortChecksum abbreviates a hex digest for text output.
func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
