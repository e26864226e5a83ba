// Package editor implements the single live in-memory owner of one user's
// folder tree and its revision sequence counter.
package editor

import (
	"context"
	"sync"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
)

// RevisionLog is the durable log the editor appends to and replays from.
// Satisfied by *store.Store.
type RevisionLog interface {
	AppendRevision(ctx context.Context, rec revision.Record) error
	LoadRevisions(ctx context.Context, objectID string) ([]revision.Record, error)
}

// FolderEditor holds the current tree state for one user session.
//
// Exactly one instance exists per active user; the persistence facade owns
// the reference and guarantees single construction. Mutations are strictly
// sequential: each one applies to the in-memory tree, serializes the new
// state, computes its checksum, appends a revision record, and only then
// reports success. A failed append leaves the in-memory tree untouched, so a
// crash before the append is equivalent to the mutation never having
// happened.
type FolderEditor struct {
	userID   string
	token    string
	objectID string
	log      RevisionLog

	mu    sync.RWMutex
	tree  folder.Tree
	clock *revision.Clock
}

// New constructs an editor by replaying the persisted revision records for
// the user's folder object. The record chain and every checksum are verified;
// construction fails with a corruption error on mismatch. A user with no
// records yet starts from an empty tree at sequence 0.
func New(ctx context.Context, userID, token string, log RevisionLog) (*FolderEditor, error) {
	objectID := revision.ObjectID(userID)

	records, err := log.LoadRevisions(ctx, objectID)
	if err != nil {
		return nil, err
	}

	e := &FolderEditor{
		userID:   userID,
		token:    token,
		objectID: objectID,
		log:      log,
		clock:    revision.NewClock(),
	}

	if len(records) == 0 {
		return e, nil
	}

	if err := revision.ValidateChain(records); err != nil {
		return nil, err
	}

	last := records[len(records)-1]
	tree, err := folder.UnmarshalPayload(last.Payload)
	if err != nil {
		return nil, folder.NewCorruption(objectID, "latest payload does not decode: "+err.Error())
	}

	// The reconstructed tree must re-serialize to the checksummed bytes;
	// anything else means replay produced a silently different state.
	remarshaled, err := folder.MarshalPayload(tree)
	if err != nil {
		return nil, folder.NewCorruption(objectID, "reconstructed tree does not serialize: "+err.Error())
	}
	if folder.Checksum(remarshaled) != last.Checksum {
		return nil, folder.NewCorruption(objectID, "reconstructed tree checksum mismatch")
	}

	e.tree = tree
	e.clock = revision.NewClockAt(last.TargetSeq)
	return e, nil
}

// UserID returns the owning user's identifier.
func (e *FolderEditor) UserID() string { return e.userID }

// Tree returns a snapshot copy of the current tree state.
func (e *FolderEditor) Tree() folder.Tree {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Clone()
}

// Seq returns the current revision sequence position.
func (e *FolderEditor) Seq() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clock.Current()
}

// mutate runs one committed mutation. The change applies to a clone of the
// tree; the clone is serialized, checksummed, and appended as a new revision
// record with base_seq equal to the prior target_seq. Only after the append
// succeeds does the clone become the current tree.
func (e *FolderEditor) mutate(ctx context.Context, apply func(*folder.Tree) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.tree.Clone()
	if err := apply(&next); err != nil {
		return err
	}

	payload, err := folder.MarshalPayload(next)
	if err != nil {
		return err
	}

	rec := revision.New(e.objectID, e.clock.Current(), payload, e.userID)
	if err := e.log.AppendRevision(ctx, rec); err != nil {
		return err
	}

	e.clock.Next()
	e.tree = next
	return nil
}

// CreateWorkspace adds a workspace to the tree.
func (e *FolderEditor) CreateWorkspace(ctx context.Context, ws folder.Workspace) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.AddWorkspace(ws)
	})
}

// ReadWorkspaces returns the workspace with the given identifier, or all
// workspaces when workspaceID is empty. A missing identifier is a not-found
// error, never an empty result.
func (e *FolderEditor) ReadWorkspaces(ctx context.Context, workspaceID string) ([]folder.Workspace, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if workspaceID == "" {
		return e.tree.Clone().Workspaces, nil
	}
	ws, err := e.tree.WorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}
	return []folder.Workspace{ws}, nil
}

// UpdateWorkspace applies a partial changeset to a workspace.
func (e *FolderEditor) UpdateWorkspace(ctx context.Context, ch folder.WorkspaceChangeset) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.UpdateWorkspace(ch)
	})
}

// DeleteWorkspace removes a workspace and everything it owns.
func (e *FolderEditor) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.RemoveWorkspace(workspaceID)
	})
}

// CreateApp adds an app under its workspace.
func (e *FolderEditor) CreateApp(ctx context.Context, app folder.App) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.AddApp(app)
	})
}

// ReadApp returns the app with the given identifier.
func (e *FolderEditor) ReadApp(ctx context.Context, appID string) (folder.App, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.AppByID(appID)
}

// ReadWorkspaceApps returns the apps owned by a workspace.
func (e *FolderEditor) ReadWorkspaceApps(ctx context.Context, workspaceID string) ([]folder.App, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.AppsByWorkspace(workspaceID)
}

// UpdateApp applies a partial changeset to an app.
func (e *FolderEditor) UpdateApp(ctx context.Context, ch folder.AppChangeset) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.UpdateApp(ch)
	})
}

// DeleteApp removes an app from its workspace and returns it, so the caller
// can decide whether to move it to trash.
func (e *FolderEditor) DeleteApp(ctx context.Context, appID string) (folder.App, error) {
	var removed folder.App
	err := e.mutate(ctx, func(t *folder.Tree) error {
		app, err := t.RemoveApp(appID)
		if err != nil {
			return err
		}
		removed = app
		return nil
	})
	if err != nil {
		return folder.App{}, err
	}
	return removed, nil
}

// CreateView adds a view under its app.
func (e *FolderEditor) CreateView(ctx context.Context, v folder.View) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.AddView(v)
	})
}

// ReadView returns the view with the given identifier.
func (e *FolderEditor) ReadView(ctx context.Context, viewID string) (folder.View, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.ViewByID(viewID)
}

// ReadViews returns the views owned by an app.
func (e *FolderEditor) ReadViews(ctx context.Context, belongToID string) ([]folder.View, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.ViewsByApp(belongToID)
}

// UpdateView applies a partial changeset to a view.
func (e *FolderEditor) UpdateView(ctx context.Context, ch folder.ViewChangeset) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.UpdateView(ch)
	})
}

// DeleteView removes a view from its app.
func (e *FolderEditor) DeleteView(ctx context.Context, viewID string) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.RemoveView(viewID)
	})
}

// CreateTrash adds soft-deleted entries to the trash collection.
func (e *FolderEditor) CreateTrash(ctx context.Context, items []folder.Trash) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.AddTrash(items)
	})
}

// ReadTrash returns the trash entry with the given identifier, or all
// entries when trashID is empty.
func (e *FolderEditor) ReadTrash(ctx context.Context, trashID string) ([]folder.Trash, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if trashID == "" {
		return e.tree.AllTrash(), nil
	}
	tr, err := e.tree.TrashByID(trashID)
	if err != nil {
		return nil, err
	}
	return []folder.Trash{tr}, nil
}

// DeleteTrash removes the trash entries with the given identifiers.
// A nil slice removes all entries.
func (e *FolderEditor) DeleteTrash(ctx context.Context, trashIDs []string) error {
	return e.mutate(ctx, func(t *folder.Tree) error {
		return t.RemoveTrash(trashIDs)
	})
}
