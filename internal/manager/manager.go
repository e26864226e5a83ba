// Package manager is the process-facing orchestrator of the folder
// subsystem: it gates per-user initialization, seeds brand-new users with a
// default tree, and delegates persistence to the facade.
package manager

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/persistence"
)

// Notifier receives the one structured event this core emits: a new default
// workspace was created for a user. The snapshot is the freshly seeded tree.
type Notifier interface {
	WorkspaceCreated(userID string, snapshot folder.Tree)
}

// Manager orchestrates per-user folder initialization.
//
// Tree data is never owned here - all reads and writes pass through the
// persistence facade's transactional interface.
type Manager struct {
	session     persistence.Session
	persistence *persistence.Facade
	notifier    Notifier
	gate        *InitGate
	logger      zerolog.Logger

	workspaces *WorkspaceController
	apps       *AppController
	views      *ViewController
	trash      *TrashController
}

// NewManager creates a manager and its sub-controllers. The init gate entry
// for the current session user (if any) starts not-done.
func NewManager(session persistence.Session, p *persistence.Facade, notifier Notifier, logger zerolog.Logger) *Manager {
	gate := NewInitGate()
	if userID, err := session.UserID(); err == nil {
		gate.Register(userID)
	}

	return &Manager{
		session:     session,
		persistence: p,
		notifier:    notifier,
		gate:        gate,
		logger:      logger,
		workspaces:  NewWorkspaceController(p),
		apps:        NewAppController(p),
		views:       NewViewController(p),
		trash:       NewTrashController(p),
	}
}

// Workspaces returns the workspace sub-controller.
func (m *Manager) Workspaces() *WorkspaceController { return m.workspaces }

// Apps returns the app sub-controller.
func (m *Manager) Apps() *AppController { return m.apps }

// Views returns the view sub-controller.
func (m *Manager) Views() *ViewController { return m.views }

// Trash returns the trash sub-controller.
func (m *Manager) Trash() *TrashController { return m.trash }

// Initialize prepares the folder subsystem for a user. A user the gate
// already records as done returns immediately with no I/O. The steps are not
// atomic: a failure anywhere leaves the gate not-done, so every subsequent
// request retries initialization until it succeeds.
func (m *Manager) Initialize(ctx context.Context, userID string) error {
	if m.gate.Done(userID) {
		return nil
	}

	if err := m.persistence.Initialize(ctx, userID); err != nil {
		return err
	}
	if err := m.apps.Initialize(); err != nil {
		return err
	}
	if err := m.views.Initialize(); err != nil {
		return err
	}

	m.gate.MarkDone(userID)
	return nil
}

// InitializeWithNewUser seeds a brand-new account with the default tree,
// emits the workspace-created notification, then runs the normal Initialize
// path.
//
// A user that already has persisted data - either format - fails with a
// bootstrap-exists error before anything is written, so a misrouted call can
// never duplicate the bootstrap record.
func (m *Manager) InitializeWithNewUser(ctx context.Context, userID, token string) error {
	exists, err := m.persistence.HasPersistedData(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return folder.NewBootstrapExists(userID)
	}

	tree, err := folder.DefaultTree(time.Now().Unix())
	if err != nil {
		return err
	}

	ws := tree.Workspaces[0]
	m.workspaces.SetCurrentWorkspace(ws.ID)
	if len(ws.Apps) > 0 && len(ws.Apps[0].Views) > 0 {
		m.views.SetLatestView(ws.Apps[0].Views[0].ID)
	}

	if err := m.persistence.SaveFolder(ctx, userID, tree); err != nil {
		return err
	}

	m.logger.Debug().Str("user_id", userID).Str("workspace_id", ws.ID).
		Msg("created user default workspace")

	if m.notifier != nil {
		m.notifier.WorkspaceCreated(userID, tree.Clone())
	}

	return m.Initialize(ctx, userID)
}

// Clear releases the in-memory tree on logout. The init gate is deliberately
// left in place: seeding is once per process lifetime, not per login.
func (m *Manager) Clear() {
	m.persistence.UserDidLogout()
}
