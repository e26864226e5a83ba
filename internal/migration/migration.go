// Package migration converts legacy-format folder data into the current
// revision-based format, at most once per user.
package migration

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
)

// LegacyStore is the storage surface the engine needs: current-format
// detection plus read-only access to the pre-revision entities.
// Satisfied by *store.Store.
type LegacyStore interface {
	HasRevisions(ctx context.Context, objectID string) (bool, error)
	HasLegacyData(ctx context.Context, userID string) (bool, error)
	ReadLegacyTree(ctx context.Context, userID string) (folder.Tree, error)
}

// Engine runs the one-shot legacy-format conversion for a user.
type Engine struct {
	store  LegacyStore
	logger zerolog.Logger
}

// NewEngine creates a migration engine over the given store.
func NewEngine(store LegacyStore, logger zerolog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Run inspects the user's stored data and returns the converted tree when a
// migration is needed, or nil when nothing was performed.
//
// Idempotence hinges on checking for the current format's presence first: a
// user whose revisions already exist is never converted again, even if the
// legacy rows were left in place. Any read error from the legacy path is
// fatal - a partial migration risks silent data loss, so nothing is retried
// here.
func (e *Engine) Run(ctx context.Context, userID string) (*folder.Tree, error) {
	migrated, err := e.store.HasRevisions(ctx, revision.ObjectID(userID))
	if err != nil {
		return nil, fmt.Errorf("migration: detect current format: %w", err)
	}
	if migrated {
		e.logger.Debug().Str("user_id", userID).Msg("migration skipped, current format present")
		return nil, nil
	}

	hasLegacy, err := e.store.HasLegacyData(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("migration: detect legacy format: %w", err)
	}
	if !hasLegacy {
		return nil, nil
	}

	tree, err := e.store.ReadLegacyTree(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("migration: read legacy tree: %w", err)
	}

	e.logger.Info().
		Str("user_id", userID).
		Int("workspaces", len(tree.Workspaces)).
		Msg("migrated legacy folder data")
	return &tree, nil
}
