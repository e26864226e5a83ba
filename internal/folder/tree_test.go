package folder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

// buildTestTree creates a tree with one workspace, one app, and two views.
func buildTestTree(t *testing.T) Tree {
	t.Helper()
	var tree Tree
	require.NoError(t, tree.AddWorkspace(Workspace{ID: "w1", Name: "Workspace"}))
	require.NoError(t, tree.AddApp(App{ID: "a1", WorkspaceID: "w1", Name: "Notes"}))
	require.NoError(t, tree.AddView(View{ID: "v1", BelongToID: "a1", Name: "Read Me"}))
	require.NoError(t, tree.AddView(View{ID: "v2", BelongToID: "a1", Name: "Blank"}))
	return tree
}

func TestAddWorkspace_DuplicateID(t *testing.T) {
	tree := buildTestTree(t)

	err := tree.AddWorkspace(Workspace{ID: "w1", Name: "Other"})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err))
}

func TestUpdateWorkspace_PartialChangeset(t *testing.T) {
	tree := buildTestTree(t)

	require.NoError(t, tree.UpdateWorkspace(WorkspaceChangeset{ID: "w1", Name: str("Renamed")}))

	ws, err := tree.WorkspaceByID("w1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", ws.Name)
	assert.Equal(t, "", ws.Desc, "unspecified field must be left untouched")
}

func TestUpdateWorkspace_NotFound(t *testing.T) {
	tree := buildTestTree(t)

	err := tree.UpdateWorkspace(WorkspaceChangeset{ID: "missing", Name: str("x")})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAddApp_MissingWorkspace(t *testing.T) {
	var tree Tree

	err := tree.AddApp(App{ID: "a1", WorkspaceID: "nope", Name: "Notes"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAddApp_DuplicateID(t *testing.T) {
	tree := buildTestTree(t)

	err := tree.AddApp(App{ID: "a1", WorkspaceID: "w1", Name: "Again"})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err))
}

func TestRemoveApp_ReturnsApp(t *testing.T) {
	tree := buildTestTree(t)

	app, err := tree.RemoveApp("a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", app.ID)
	assert.Len(t, app.Views, 2, "removed app carries its views")

	_, err = tree.AppByID("a1")
	assert.True(t, IsNotFound(err))
}

func TestUpdateApp_PartialChangeset(t *testing.T) {
	tree := buildTestTree(t)

	require.NoError(t, tree.UpdateApp(AppChangeset{ID: "a1", Desc: str("about")}))

	app, err := tree.AppByID("a1")
	require.NoError(t, err)
	assert.Equal(t, "Notes", app.Name, "unspecified field must be left untouched")
	assert.Equal(t, "about", app.Desc)
}

func TestViewsByApp(t *testing.T) {
	tree := buildTestTree(t)

	views, err := tree.ViewsByApp("a1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "v1", views[0].ID)
	assert.Equal(t, "v2", views[1].ID)
}

func TestRemoveView(t *testing.T) {
	tree := buildTestTree(t)

	require.NoError(t, tree.RemoveView("v1"))
	_, err := tree.ViewByID("v1")
	assert.True(t, IsNotFound(err))

	views, err := tree.ViewsByApp("a1")
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestAddTrash_LiveIDCollision(t *testing.T) {
	tree := buildTestTree(t)

	// v1 is still attached to app a1 - trashing its id would give it two
	// live parents.
	err := tree.AddTrash([]Trash{{ID: "v1", Name: "Read Me", Kind: TrashView}})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err))
}

func TestTrash_SoftDeleteFlow(t *testing.T) {
	tree := buildTestTree(t)

	require.NoError(t, tree.RemoveView("v2"))
	require.NoError(t, tree.AddTrash([]Trash{{ID: "v2", Name: "Blank", Kind: TrashView}}))

	tr, err := tree.TrashByID("v2")
	require.NoError(t, err)
	assert.Equal(t, TrashView, tr.Kind)

	// A new view must not reuse the trashed identifier.
	err = tree.AddView(View{ID: "v2", BelongToID: "a1", Name: "Blank"})
	assert.True(t, IsDuplicateID(err))
}

func TestAddTrash_DuplicateWithinBatch(t *testing.T) {
	var tree Tree

	err := tree.AddTrash([]Trash{
		{ID: "x", Name: "First", Kind: TrashView},
		{ID: "x", Name: "Second", Kind: TrashView},
	})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err))

	// The whole batch is rejected before anything is appended.
	assert.Empty(t, tree.AllTrash())
}

func TestRemoveTrash_AllAndByID(t *testing.T) {
	var tree Tree
	require.NoError(t, tree.AddTrash([]Trash{
		{ID: "t1", Name: "One", Kind: TrashApp},
		{ID: "t2", Name: "Two", Kind: TrashView},
	}))

	require.NoError(t, tree.RemoveTrash([]string{"t1"}))
	assert.Len(t, tree.AllTrash(), 1)

	err := tree.RemoveTrash([]string{"t1"})
	assert.True(t, IsNotFound(err))

	// Nil removes everything.
	require.NoError(t, tree.RemoveTrash(nil))
	assert.Empty(t, tree.AllTrash())
}

func TestNormalizeName_NFC(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form.
	assert.Equal(t, "é", NormalizeName("é"))

	var tree Tree
	require.NoError(t, tree.AddWorkspace(Workspace{ID: "w1", Name: "Café"}))
	ws, err := tree.WorkspaceByID("w1")
	require.NoError(t, err)
	assert.Equal(t, "Café", ws.Name)
}

func TestClone_Isolated(t *testing.T) {
	tree := buildTestTree(t)
	clone := tree.Clone()

	require.NoError(t, tree.UpdateApp(AppChangeset{ID: "a1", Name: str("Changed")}))
	require.NoError(t, tree.RemoveView("v1"))

	app, err := clone.AppByID("a1")
	require.NoError(t, err)
	assert.Equal(t, "Notes", app.Name)
	assert.Len(t, app.Views, 2)
}
