package persistence

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
	"github.com/roach88/folderstore/internal/store"
)

// fakeSession is a fixed session identity, or a failing one when err is set.
type fakeSession struct {
	userID string
	token  string
	err    error
}

func (s fakeSession) UserID() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

func (s fakeSession) Token() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func setupFacade(t *testing.T) (*Facade, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	f := NewFacade(fakeSession{userID: "u1", token: "tok"}, s, zerolog.Nop())
	return f, s
}

func TestInitialize_FreshUser(t *testing.T) {
	f, s := setupFacade(t)
	ctx := context.Background()

	require.NoError(t, f.Initialize(ctx, "u1"))

	// A fresh user has no legacy data, so no bootstrap record is written;
	// the editor simply starts empty.
	records, err := s.LoadRevisions(ctx, revision.ObjectID("u1"))
	require.NoError(t, err)
	assert.Empty(t, records)

	err = f.BeginTransaction(ctx, func(tx Transaction) error {
		workspaces, err := tx.ReadWorkspaces(ctx, "")
		if err != nil {
			return err
		}
		assert.Empty(t, workspaces)
		return nil
	})
	require.NoError(t, err)
}

func TestInitialize_MigratesLegacyData(t *testing.T) {
	f, s := setupFacade(t)
	ctx := context.Background()

	ws := folder.Workspace{ID: "w1", Name: "Main", CreateTime: 100, ModifiedTime: 100}
	require.NoError(t, s.InsertLegacyWorkspace(ctx, "u1", ws))

	require.NoError(t, f.Initialize(ctx, "u1"))

	// Exactly one bootstrap record at sequence (0, 0).
	records, err := s.LoadRevisions(ctx, revision.ObjectID("u1"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsBootstrap())

	err = f.BeginTransaction(ctx, func(tx Transaction) error {
		workspaces, err := tx.ReadWorkspaces(ctx, "w1")
		if err != nil {
			return err
		}
		assert.Equal(t, "Main", workspaces[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestInitialize_Idempotent(t *testing.T) {
	f, s := setupFacade(t)
	ctx := context.Background()

	ws := folder.Workspace{ID: "w1", Name: "Main", CreateTime: 100, ModifiedTime: 100}
	require.NoError(t, s.InsertLegacyWorkspace(ctx, "u1", ws))

	require.NoError(t, f.Initialize(ctx, "u1"))
	require.NoError(t, f.Initialize(ctx, "u1"))

	records, err := s.LoadRevisions(ctx, revision.ObjectID("u1"))
	require.NoError(t, err)
	assert.Len(t, records, 1, "re-initialization must not duplicate the bootstrap record")
}

func TestBeginTransaction_BeforeInitialize(t *testing.T) {
	f, _ := setupFacade(t)
	ctx := context.Background()

	// Editor access without prior Initialize is recovered locally.
	err := f.BeginTransaction(ctx, func(tx Transaction) error {
		return tx.CreateWorkspace(ctx, folder.Workspace{ID: "w1", Name: "Workspace"})
	})
	require.NoError(t, err)

	err = f.BeginTransaction(ctx, func(tx Transaction) error {
		workspaces, err := tx.ReadWorkspaces(ctx, "w1")
		if err != nil {
			return err
		}
		assert.Equal(t, "Workspace", workspaces[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestBeginTransaction_SingleFlight(t *testing.T) {
	f, _ := setupFacade(t)
	ctx := context.Background()

	// All concurrent callers must observe the same editor instance.
	const n = 16
	editors := make([]Transaction, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = f.BeginTransaction(ctx, func(tx Transaction) error {
				editors[i] = tx
				return nil
			})
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, editors[0], editors[i])
	}
}

func TestUserDidLogout_StateSurvivesReconstruction(t *testing.T) {
	f, _ := setupFacade(t)
	ctx := context.Background()

	require.NoError(t, f.Initialize(ctx, "u1"))
	err := f.BeginTransaction(ctx, func(tx Transaction) error {
		return tx.CreateWorkspace(ctx, folder.Workspace{ID: "w1", Name: "Workspace"})
	})
	require.NoError(t, err)

	f.UserDidLogout()

	// The next access replays the log and sees the same state.
	err = f.BeginTransaction(ctx, func(tx Transaction) error {
		workspaces, err := tx.ReadWorkspaces(ctx, "w1")
		if err != nil {
			return err
		}
		assert.Equal(t, "Workspace", workspaces[0].Name)
		return nil
	})
	require.NoError(t, err)
}

// blockingSession holds editor construction open until release is closed.
type blockingSession struct {
	release chan struct{}
}

func (s blockingSession) UserID() (string, error) {
	<-s.release
	return "u1", nil
}

func (s blockingSession) Token() (string, error) { return "tok", nil }

func TestBeginTransaction_LogsViolationWhenUninitialized(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	var logBuf bytes.Buffer
	f := NewFacade(fakeSession{userID: "u1", token: "tok"}, s, zerolog.New(&logBuf))

	err = f.BeginTransaction(context.Background(), func(tx Transaction) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, logBuf.String(), "accessed before user login initialization")
}

func TestBeginTransaction_WaitingCallerIsNotAViolation(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	session := blockingSession{release: make(chan struct{})}
	var logBuf bytes.Buffer
	f := NewFacade(session, s, zerolog.New(&logBuf))
	ctx := context.Background()

	// Start construction; it parks inside the session until released.
	initDone := make(chan error, 1)
	go func() { initDone <- f.Initialize(ctx, "u1") }()
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.state == stateInitializing
	}, time.Second, time.Millisecond)

	// A caller arriving mid-construction waits for it.
	txDone := make(chan error, 1)
	go func() {
		txDone <- f.BeginTransaction(ctx, func(tx Transaction) error { return nil })
	}()

	close(session.release)
	require.NoError(t, <-initDone)
	require.NoError(t, <-txDone)

	assert.NotContains(t, logBuf.String(), "accessed before user login initialization")
}

func TestBeginTransaction_NotAuthenticated(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	f := NewFacade(fakeSession{err: errors.New("no session")}, s, zerolog.Nop())

	err = f.BeginTransaction(context.Background(), func(tx Transaction) error {
		t.Fatal("fn must not run without an editor")
		return nil
	})
	require.Error(t, err)
	assert.True(t, folder.IsNotAuthenticated(err))
}

func TestHasPersistedData(t *testing.T) {
	f, s := setupFacade(t)
	ctx := context.Background()

	has, err := f.HasPersistedData(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, has)

	// Legacy-only data counts.
	ws := folder.Workspace{ID: "w1", Name: "Main", CreateTime: 100, ModifiedTime: 100}
	require.NoError(t, s.InsertLegacyWorkspace(ctx, "u1", ws))

	has, err = f.HasPersistedData(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSaveFolder_Durable(t *testing.T) {
	f, s := setupFacade(t)
	ctx := context.Background()

	var tree folder.Tree
	require.NoError(t, tree.AddWorkspace(folder.Workspace{ID: "w1", Name: "Workspace"}))
	require.NoError(t, f.SaveFolder(ctx, "u1", tree))

	records, err := s.LoadRevisions(ctx, revision.ObjectID("u1"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsBootstrap())
}
