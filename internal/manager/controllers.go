package manager

import (
	"context"
	"sync"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/persistence"
)

// WorkspaceController mediates workspace operations and tracks the session's
// current workspace.
type WorkspaceController struct {
	persistence *persistence.Facade

	mu        sync.RWMutex
	currentID string
}

// NewWorkspaceController creates a workspace controller.
func NewWorkspaceController(p *persistence.Facade) *WorkspaceController {
	return &WorkspaceController{persistence: p}
}

// SetCurrentWorkspace records the workspace the session is operating in.
func (c *WorkspaceController) SetCurrentWorkspace(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentID = id
}

// CurrentWorkspace returns the session's current workspace identifier.
func (c *WorkspaceController) CurrentWorkspace() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentID
}

// CreateWorkspace persists a new workspace.
func (c *WorkspaceController) CreateWorkspace(ctx context.Context, ws folder.Workspace) error {
	return c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		return tx.CreateWorkspace(ctx, ws)
	})
}

// ReadWorkspaces returns one workspace by id, or all when id is empty.
func (c *WorkspaceController) ReadWorkspaces(ctx context.Context, workspaceID string) ([]folder.Workspace, error) {
	var out []folder.Workspace
	err := c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		workspaces, err := tx.ReadWorkspaces(ctx, workspaceID)
		if err != nil {
			return err
		}
		out = workspaces
		return nil
	})
	return out, err
}

// AppController mediates app operations.
type AppController struct {
	persistence *persistence.Facade
}

// NewAppController creates an app controller.
func NewAppController(p *persistence.Facade) *AppController {
	return &AppController{persistence: p}
}

// Initialize is the controller's slot in the manager's per-user startup
// sequence. It holds no per-user state to prepare, so this is a no-op.
func (c *AppController) Initialize() error {
	return nil
}

// CreateApp persists a new app under its workspace.
func (c *AppController) CreateApp(ctx context.Context, app folder.App) error {
	return c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		return tx.CreateApp(ctx, app)
	})
}

// ReadApp returns the app with the given identifier.
func (c *AppController) ReadApp(ctx context.Context, appID string) (folder.App, error) {
	var out folder.App
	err := c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		app, err := tx.ReadApp(ctx, appID)
		if err != nil {
			return err
		}
		out = app
		return nil
	})
	return out, err
}

// ViewController mediates view operations and tracks the most recently
// opened view for the session.
type ViewController struct {
	persistence *persistence.Facade

	mu           sync.RWMutex
	latestViewID string
}

// NewViewController creates a view controller.
func NewViewController(p *persistence.Facade) *ViewController {
	return &ViewController{persistence: p}
}

// Initialize is the controller's slot in the manager's per-user startup
// sequence. The latest-view marker is set by seeding or by explicit
// SetLatestView calls, not here, so this is a no-op.
func (c *ViewController) Initialize() error {
	return nil
}

// SetLatestView records the most recently opened view.
func (c *ViewController) SetLatestView(viewID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latestViewID = viewID
}

// LatestView returns the most recently opened view identifier.
func (c *ViewController) LatestView() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latestViewID
}

// CreateView persists a new view under its app.
func (c *ViewController) CreateView(ctx context.Context, v folder.View) error {
	return c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		return tx.CreateView(ctx, v)
	})
}

// ReadView returns the view with the given identifier.
func (c *ViewController) ReadView(ctx context.Context, viewID string) (folder.View, error) {
	var out folder.View
	err := c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		v, err := tx.ReadView(ctx, viewID)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// TrashController mediates the trash collection.
type TrashController struct {
	persistence *persistence.Facade
}

// NewTrashController creates a trash controller.
func NewTrashController(p *persistence.Facade) *TrashController {
	return &TrashController{persistence: p}
}

// Add places soft-deleted entries in the trash.
func (c *TrashController) Add(ctx context.Context, items []folder.Trash) error {
	return c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		return tx.CreateTrash(ctx, items)
	})
}

// List returns all trash entries.
func (c *TrashController) List(ctx context.Context) ([]folder.Trash, error) {
	var out []folder.Trash
	err := c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		items, err := tx.ReadTrash(ctx, "")
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	return out, err
}

// Delete removes the given trash entries; nil removes all.
func (c *TrashController) Delete(ctx context.Context, trashIDs []string) error {
	return c.persistence.BeginTransaction(ctx, func(tx persistence.Transaction) error {
		return tx.DeleteTrash(ctx, trashIDs)
	})
}
