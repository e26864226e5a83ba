// Package persistence owns the at-most-one folder editor per user session
// and orchestrates migrate-then-load-then-serve on first access.
package persistence

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/roach88/folderstore/internal/editor"
	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/migration"
	"github.com/roach88/folderstore/internal/revision"
)

// Store combines the storage surfaces the facade needs: the revision log for
// the editor and bootstrap writes, and legacy detection for the migration
// engine. Satisfied by *store.Store.
type Store interface {
	editor.RevisionLog
	migration.LegacyStore
}

// The folder editor is the sole Transaction implementation.
var _ Transaction = (*editor.FolderEditor)(nil)

// handleState is the editor handle's lifecycle position.
type handleState int

const (
	// stateUninitialized: no editor exists and none is being built.
	stateUninitialized handleState = iota

	// stateInitializing: one construction is in flight; arrivals wait on it
	// instead of starting a second.
	stateInitializing

	// stateReady: a fully constructed editor is published.
	stateReady
)

// Facade guards the single folder editor behind an explicit three-state
// handle with single-flight construction. Readers observing the ready state
// get a consistent, fully constructed editor; only one goroutine at a time
// may transition the handle out of the uninitialized state.
type Facade struct {
	session Session
	store   Store
	logger  zerolog.Logger

	mu       sync.Mutex
	state    handleState
	editor   *editor.FolderEditor
	initDone chan struct{} // non-nil while stateInitializing
}

// NewFacade creates a facade with no editor constructed.
func NewFacade(session Session, store Store, logger zerolog.Logger) *Facade {
	return &Facade{
		session: session,
		store:   store,
		logger:  logger,
	}
}

// Initialize runs the migrate-then-load protocol for a user: the migration
// engine runs first; if it yields a converted tree, that tree is persisted as
// the bootstrap revision record; then the editor is force-constructed.
// Safe to re-run - migration detection and the bootstrap append are both
// idempotent, and an already-ready editor is reused.
func (f *Facade) Initialize(ctx context.Context, userID string) error {
	engine := migration.NewEngine(f.store, f.logger)
	migrated, err := engine.Run(ctx, userID)
	if err != nil {
		return err
	}
	if migrated != nil {
		if err := f.SaveFolder(ctx, userID, *migrated); err != nil {
			return err
		}
	}

	_, err = f.editorHandle(ctx)
	return err
}

// SaveFolder persists a tree as the user's bootstrap revision record
// (sequence 0). Durable before returning; a repeated call for the same user
// is a no-op at the log level.
func (f *Facade) SaveFolder(ctx context.Context, userID string, tree folder.Tree) error {
	rec, err := revision.BootstrapFromTree(revision.ObjectID(userID), tree, userID)
	if err != nil {
		return err
	}
	return f.store.AppendRevision(ctx, rec)
}

// BeginTransaction hands fn the editor as a transactional unit of work.
//
// If the editor is ready it is handed over immediately. A caller arriving
// while construction is in flight waits for it. A caller arriving with no
// construction started bypassed login-triggered initialization - a protocol
// violation that is recovered locally by forcing construction, but logged as
// an error for diagnosis.
func (f *Facade) BeginTransaction(ctx context.Context, fn func(Transaction) error) error {
	f.mu.Lock()
	state := f.state
	if state == stateReady {
		ed := f.editor
		f.mu.Unlock()
		return fn(ed)
	}
	f.mu.Unlock()

	// A caller waiting on an in-flight construction is following the
	// protocol; only an access with no construction started at all is a
	// violation.
	if state == stateUninitialized {
		violation := folder.NewProtocolViolation("folder editor accessed before user login initialization")
		f.logger.Error().Str("code", string(violation.Code)).Msg(violation.Message)
	}

	ed, err := f.editorHandle(ctx)
	if err != nil {
		return err
	}
	return fn(ed)
}

// UserDidLogout clears the editor reference, releasing the in-memory tree.
// No persistence side effect - the last revision record already captures all
// state.
func (f *Facade) UserDidLogout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == stateReady {
		f.state = stateUninitialized
	}
	f.editor = nil
}

// HasPersistedData reports whether any folder data - current or legacy
// format - exists for a user. Guards new-user seeding against duplicating a
// bootstrap record.
func (f *Facade) HasPersistedData(ctx context.Context, userID string) (bool, error) {
	migrated, err := f.store.HasRevisions(ctx, revision.ObjectID(userID))
	if err != nil {
		return false, err
	}
	if migrated {
		return true, nil
	}
	return f.store.HasLegacyData(ctx, userID)
}

// editorHandle returns the ready editor, constructing it single-flight if
// needed. Concurrent callers arriving during construction wait for the
// in-flight attempt rather than racing a second one; a failed attempt resets
// the handle so the next caller retries.
func (f *Facade) editorHandle(ctx context.Context) (*editor.FolderEditor, error) {
	for {
		f.mu.Lock()
		switch f.state {
		case stateReady:
			ed := f.editor
			f.mu.Unlock()
			return ed, nil

		case stateInitializing:
			done := f.initDone
			f.mu.Unlock()
			select {
			case <-done:
				// Re-check: the attempt may have failed.
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		case stateUninitialized:
			done := make(chan struct{})
			f.state = stateInitializing
			f.initDone = done
			f.mu.Unlock()

			ed, err := f.construct(ctx)

			f.mu.Lock()
			if err != nil {
				f.state = stateUninitialized
				f.editor = nil
			} else {
				f.state = stateReady
				f.editor = ed
			}
			f.initDone = nil
			f.mu.Unlock()
			close(done)

			return ed, err
		}
	}
}

// construct builds the editor from the current session identity and the
// revision log. Never published partially: the caller installs the result
// under the handle lock.
func (f *Facade) construct(ctx context.Context) (*editor.FolderEditor, error) {
	userID, err := f.session.UserID()
	if err != nil {
		return nil, folder.NewNotAuthenticated(err)
	}
	token, err := f.session.Token()
	if err != nil {
		return nil, folder.NewNotAuthenticated(err)
	}
	return editor.New(ctx, userID, token, f.store)
}
