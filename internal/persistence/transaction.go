package persistence

import (
	"context"

	"github.com/roach88/folderstore/internal/folder"
)

// Transaction is the transactional contract for folder entity CRUD.
//
// Each operation either fully commits its effect or has no observable effect.
// Callers receive an implementation bound to one enclosing atomic unit of
// work (see Facade.BeginTransaction) and issue their own sequence of calls
// within it. Reads targeting a missing identifier fail with a not-found
// error, never a silent default, so data loss is never masked. Updates accept
// partial changesets; unspecified fields are left untouched.
//
// Implemented by *editor.FolderEditor.
type Transaction interface {
	CreateWorkspace(ctx context.Context, ws folder.Workspace) error
	ReadWorkspaces(ctx context.Context, workspaceID string) ([]folder.Workspace, error)
	UpdateWorkspace(ctx context.Context, ch folder.WorkspaceChangeset) error
	DeleteWorkspace(ctx context.Context, workspaceID string) error

	CreateApp(ctx context.Context, app folder.App) error
	ReadApp(ctx context.Context, appID string) (folder.App, error)
	ReadWorkspaceApps(ctx context.Context, workspaceID string) ([]folder.App, error)
	UpdateApp(ctx context.Context, ch folder.AppChangeset) error
	DeleteApp(ctx context.Context, appID string) (folder.App, error)

	CreateView(ctx context.Context, v folder.View) error
	ReadView(ctx context.Context, viewID string) (folder.View, error)
	ReadViews(ctx context.Context, belongToID string) ([]folder.View, error)
	UpdateView(ctx context.Context, ch folder.ViewChangeset) error
	DeleteView(ctx context.Context, viewID string) error

	CreateTrash(ctx context.Context, items []folder.Trash) error
	ReadTrash(ctx context.Context, trashID string) ([]folder.Trash, error)
	// DeleteTrash removes the given entries; a nil slice removes all.
	DeleteTrash(ctx context.Context, trashIDs []string) error
}

// Session supplies the current session identity. The core treats it as an
// opaque source of two strings; a "not logged in" failure surfaces as a
// not-authenticated error rather than producing a usable editor.
type Session interface {
	UserID() (string, error)
	Token() (string, error)
}
