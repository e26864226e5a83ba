package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
	"github.com/roach88/folderstore/internal/store"
)

// VerifyResult holds the verify command output.
type VerifyResult struct {
	ObjectID   string `json:"object_id"`
	Records    int    `json:"records"`
	LastSeq    int64  `json:"last_seq"`
	Checksum   string `json:"checksum,omitempty"`
	Workspaces int    `json:"workspaces"`
	TrashItems int    `json:"trash_items"`
	Outline    string `json:"outline,omitempty"`
}

// NewVerifyCommand creates the verify command, which replays a user's
// revision log, validates the sequence chain and every checksum, and prints
// the reconstructed tree.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <user-id>",
		Short: "Replay a user's revision log and verify its integrity",
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

			result := VerifyResult{ObjectID: objectID, Records: len(records)}
			if len(records) > 0 {
				if err := revision.ValidateChain(records); err != nil {
					return WrapExitError(ExitFailure, "revision chain invalid", err)
				}

				last := records[len(records)-1]
				tree, err := folder.UnmarshalPayload(last.Payload)
				if err != nil {
					return WrapExitError(ExitFailure, "decode latest payload", err)
				}

				result.LastSeq = last.TargetSeq
				result.Checksum = last.Checksum
				result.Workspaces = len(tree.Workspaces)
				result.TrashItems = len(tree.Trash)
				result.Outline = tree.Outline()
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Emit(result, func(w io.Writer) {
				if result.Records == 0 {
					fmt.Fprintf(w, "object %s: no revisions\n", result.ObjectID)
					return
				}
				fmt.Fprintf(w, "object %s: %d revision(s) verified, last seq %d\n",
					result.ObjectID, result.Records, result.LastSeq)
				fmt.Fprint(w, result.Outline)
			})
		},
	}
}
