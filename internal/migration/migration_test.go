package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/folderstore/internal/folder"
	"github.com/roach88/folderstore/internal/revision"
	"github.com/roach88/folderstore/internal/store"
)

func setupEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewEngine(s, zerolog.Nop()), s
}

func TestRun_NoData(t *testing.T) {
	engine, _ := setupEngine(t)

	tree, err := engine.Run(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, tree)
}

func TestRun_ConvertsLegacyData(t *testing.T) {
	engine, s := setupEngine(t)
	ctx := context.Background()

	ws := folder.Workspace{ID: "w1", Name: "Main", CreateTime: 100, ModifiedTime: 100}
	require.NoError(t, s.InsertLegacyWorkspace(ctx, "u1", ws))
	require.NoError(t, s.InsertLegacyApp(ctx, folder.App{
		ID: "a1", WorkspaceID: "w1", Name: "Notes", CreateTime: 110, ModifiedTime: 110,
	}))
	require.NoError(t, s.InsertLegacyApp(ctx, folder.App{
		ID: "a2", WorkspaceID: "w1", Name: "Tasks", CreateTime: 120, ModifiedTime: 120,
	}))

	tree, err := engine.Run(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, tree)

	require.Len(t, tree.Workspaces, 1)
	assert.Equal(t, "Main", tree.Workspaces[0].Name)
	require.Len(t, tree.Workspaces[0].Apps, 2)
	assert.Equal(t, "a1", tree.Workspaces[0].Apps[0].ID)
	assert.Equal(t, "a2", tree.Workspaces[0].Apps[1].ID)
}

func TestRun_SkipsMigratedUser(t *testing.T) {
	engine, s := setupEngine(t)
	ctx := context.Background()

	// Legacy rows present, but the user already has current-format data -
	// the legacy rows must never be converted again.
	ws := folder.Workspace{ID: "w1", Name: "Main", CreateTime: 100, ModifiedTime: 100}
	require.NoError(t, s.InsertLegacyWorkspace(ctx, "u1", ws))
	rec := revision.Bootstrap(revision.ObjectID("u1"), []byte(`{"workspaces":[]}`), "u1")
	require.NoError(t, s.AppendRevision(ctx, rec))

	tree, err := engine.Run(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, tree)
}

func TestRun_OtherUserUnaffected(t *testing.T) {
	engine, s := setupEngine(t)
	ctx := context.Background()

	ws := folder.Workspace{ID: "w1", Name: "Main", CreateTime: 100, ModifiedTime: 100}
	require.NoError(t, s.InsertLegacyWorkspace(ctx, "u1", ws))

	tree, err := engine.Run(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, tree)
}
