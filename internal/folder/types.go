package folder

// Workspace is the top-level container of a user's folder tree.
type Workspace struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	Apps         []App  `json:"apps"`
	CreateTime   int64  `json:"create_time"`
	ModifiedTime int64  `json:"modified_time"`
}

// App belongs to exactly one workspace and owns zero or more views.
type App struct {
	ID           string `json:"id"`
	WorkspaceID  string `json:"workspace_id"`
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	Views        []View `json:"views"`
	CreateTime   int64  `json:"create_time"`
	ModifiedTime int64  `json:"modified_time"`
}

// View belongs to exactly one app.
type View struct {
	ID           string `json:"id"`
	BelongToID   string `json:"belong_to_id"`
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	CreateTime   int64  `json:"create_time"`
	ModifiedTime int64  `json:"modified_time"`
}

// TrashKind identifies what kind of entity a trash entry shadows.
type TrashKind string

const (
	TrashApp  TrashKind = "app"
	TrashView TrashKind = "view"
)

// Trash is a soft-deleted app or view, held by identifier outside the live
// hierarchy.
type Trash struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         TrashKind `json:"kind"`
	CreateTime   int64     `json:"create_time"`
	ModifiedTime int64     `json:"modified_time"`
}

// Tree is one user's complete folder hierarchy plus its trash collection.
// The zero value is a valid empty tree.
type Tree struct {
	Workspaces []Workspace `json:"workspaces"`
	Trash      []Trash     `json:"trash"`
}

// WorkspaceChangeset describes a partial update to a workspace.
// Nil fields are left untouched.
type WorkspaceChangeset struct {
	ID   string
	Name *string
	Desc *string
}

// AppChangeset describes a partial update to an app.
// Nil fields are left untouched.
type AppChangeset struct {
	ID   string
	Name *string
	Desc *string
}

// ViewChangeset describes a partial update to a view.
// Nil fields are left untouched.
type ViewChangeset struct {
	ID   string
	Name *string
	Desc *string
}
