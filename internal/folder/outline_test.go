package folder

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestOutline_Golden(t *testing.T) {
	var tree Tree
	require.NoError(t, tree.AddWorkspace(Workspace{ID: "w1", Name: "Workspace"}))
	require.NoError(t, tree.AddApp(App{ID: "a1", WorkspaceID: "w1", Name: "Getting Started"}))
	require.NoError(t, tree.AddView(View{ID: "v1", BelongToID: "a1", Name: "Read Me"}))
	require.NoError(t, tree.AddView(View{ID: "v2", BelongToID: "a1", Name: "Blank"}))
	require.NoError(t, tree.AddTrash([]Trash{{ID: "t1", Name: "Old Notes", Kind: TrashView}}))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tree_outline", []byte(tree.Outline()))
}

func TestOutline_Empty(t *testing.T) {
	var tree Tree
	require.Equal(t, "", tree.Outline())
}
