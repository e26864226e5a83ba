package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/folderstore/internal/migration"
	"github.com/roach88/folderstore/internal/revision"
	"github.com/roach88/folderstore/internal/store"
)

// MigrateResult holds the migrate command output.
type MigrateResult struct {
	ObjectID   string `json:"object_id"`
	Migrated   bool   `json:"migrated"`
	Workspaces int    `json:"workspaces,omitempty"`
}

// NewMigrateCommand creates the migrate command, which runs the one-shot
// legacy-format conversion for a user and persists the bootstrap record.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <user-id>",
		Short: "Convert a user's legacy-format data into the revision log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]
			logger := newLogger(rootOpts)

			s, err := store.Open(rootOpts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			ctx := cmd.Context()
			engine := migration.NewEngine(s, logger)
			tree, err := engine.Run(ctx, userID)
			if err != nil {
				return WrapExitError(ExitFailure, "migration failed", err)
			}

			objectID := revision.ObjectID(userID)
			result := MigrateResult{ObjectID: objectID}
			if tree != nil {
				rec, err := revision.BootstrapFromTree(objectID, *tree, userID)
				if err != nil {
					return WrapExitError(ExitFailure, "build bootstrap record", err)
				}
				if err := s.AppendRevision(ctx, rec); err != nil {
					return WrapExitError(ExitFailure, "persist bootstrap record", err)
				}
				result.Migrated = true
				result.Workspaces = len(tree.Workspaces)
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Emit(result, func(w io.Writer) {
				if !result.Migrated {
					fmt.Fprintf(w, "object %s: no migration performed\n", result.ObjectID)
					return
				}
				fmt.Fprintf(w, "object %s: migrated %d workspace(s) into bootstrap revision\n",
					result.ObjectID, result.Workspaces)
			})
		},
	}
}
