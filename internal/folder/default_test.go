package folder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTree_Shape(t *testing.T) {
	tree, err := DefaultTree(1700000000)
	require.NoError(t, err)

	require.Len(t, tree.Workspaces, 1)
	ws := tree.Workspaces[0]
	assert.Equal(t, "Workspace", ws.Name)
	assert.NotEmpty(t, ws.ID)
	assert.Equal(t, int64(1700000000), ws.CreateTime)

	require.Len(t, ws.Apps, 1)
	app := ws.Apps[0]
	assert.Equal(t, "Getting Started", app.Name)
	assert.Equal(t, ws.ID, app.WorkspaceID)

	require.Len(t, app.Views, 2)
	assert.Equal(t, "Read Me", app.Views[0].Name)
	assert.Equal(t, "Blank", app.Views[1].Name)
	for _, v := range app.Views {
		assert.Equal(t, app.ID, v.BelongToID)
		assert.NotEmpty(t, v.ID)
	}

	assert.Empty(t, tree.Trash)
}

func TestDefaultTree_FreshIDs(t *testing.T) {
	a, err := DefaultTree(0)
	require.NoError(t, err)
	b, err := DefaultTree(0)
	require.NoError(t, err)

	assert.NotEqual(t, a.Workspaces[0].ID, b.Workspaces[0].ID)
}
