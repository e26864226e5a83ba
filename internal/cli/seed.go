package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
	"github.com/roach88/folderstore/internal/store"
)

// SeedResult holds the seed command output.
type SeedResult struct {
	ObjectID string `json:"object_id"`
	Outline  string `json:"outline"`
}

// NewSeedCommand creates the seed command, which writes the default folder
// tree for a brand-new user as the bootstrap revision record.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <user-id>",
		Short: "Create the default folder tree for a brand-new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			s, err := store.Open(rootOpts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			ctx := cmd.Context()
			objectID := revision.ObjectID(userID)

			// Never duplicate a bootstrap record for a user with data.
			migrated, err := s.HasRevisions(ctx, objectID)
			if err != nil {
				return WrapExitError(ExitFailure, "check existing data", err)
			}
			hasLegacy, err := s.HasLegacyData(ctx, userID)
			if err != nil {
				return WrapExitError(ExitFailure, "check existing data", err)
			}
			if migrated || hasLegacy {
				return WrapExitError(ExitCommandError, "seed refused",
					folder.NewBootstrapExists(userID))
			}

			tree, err := folder.DefaultTree(time.Now().Unix())
			if err != nil {
				return WrapExitError(ExitFailure, "build default tree", err)
			}

			rec, err := revision.BootstrapFromTree(objectID, tree, userID)
			if err != nil {
				return WrapExitError(ExitFailure, "build bootstrap record", err)
			}
			if err := s.AppendRevision(ctx, rec); err != nil {
				return WrapExitError(ExitFailure, "persist bootstrap record", err)
			}

			result := SeedResult{ObjectID: objectID, Outline: tree.Outline()}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Emit(result, func(w io.Writer) {
				fmt.Fprintf(w, "object %s: seeded default tree\n", result.ObjectID)
				fmt.Fprint(w, result.Outline)
			})
		},
	}
}
