package folder

import "golang.org/x/text/unicode/norm"

// NormalizeName returns the NFC normalization of an entity name.
// Names are normalized before entering the tree so that serialized payloads
// and their checksums do not depend on the Unicode form the caller used.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	out := Tree{}
	if t.Workspaces != nil {
		out.Workspaces = make([]Workspace, len(t.Workspaces))
		for i, ws := range t.Workspaces {
			out.Workspaces[i] = ws
			if ws.Apps != nil {
				out.Workspaces[i].Apps = make([]App, len(ws.Apps))
				for j, app := range ws.Apps {
					out.Workspaces[i].Apps[j] = app
					if app.Views != nil {
						out.Workspaces[i].Apps[j].Views = append([]View(nil), app.Views...)
					}
				}
			}
		}
	}
	if t.Trash != nil {
		out.Trash = append([]Trash(nil), t.Trash...)
	}
	return out
}

// AddWorkspace inserts a workspace at the end of the workspace list.
// Fails with a duplicate-id error if the identifier is already taken.
func (t *Tree) AddWorkspace(ws Workspace) error {
	if _, ok := t.findWorkspace(ws.ID); ok {
		return NewDuplicateID("workspace", ws.ID)
	}
	ws.Name = NormalizeName(ws.Name)
	for i := range ws.Apps {
		ws.Apps[i].Name = NormalizeName(ws.Apps[i].Name)
		for j := range ws.Apps[i].Views {
			ws.Apps[i].Views[j].Name = NormalizeName(ws.Apps[i].Views[j].Name)
		}
	}
	t.Workspaces = append(t.Workspaces, ws)
	return nil
}

// WorkspaceByID returns a copy of the workspace with the given identifier.
func (t *Tree) WorkspaceByID(id string) (Workspace, error) {
	idx, ok := t.findWorkspace(id)
	if !ok {
		return Workspace{}, NewNotFound("workspace", id)
	}
	return t.Workspaces[idx], nil
}

// UpdateWorkspace applies a partial changeset to a workspace.
func (t *Tree) UpdateWorkspace(ch WorkspaceChangeset) error {
	idx, ok := t.findWorkspace(ch.ID)
	if !ok {
		return NewNotFound("workspace", ch.ID)
	}
	if ch.Name != nil {
		t.Workspaces[idx].Name = NormalizeName(*ch.Name)
	}
	if ch.Desc != nil {
		t.Workspaces[idx].Desc = *ch.Desc
	}
	return nil
}

// RemoveWorkspace removes a workspace and everything it owns.
func (t *Tree) RemoveWorkspace(id string) error {
	idx, ok := t.findWorkspace(id)
	if !ok {
		return NewNotFound("workspace", id)
	}
	t.Workspaces = append(t.Workspaces[:idx], t.Workspaces[idx+1:]...)
	return nil
}

// AddApp inserts an app under its workspace.
// The parent workspace must exist and the app identifier must be unique among
// live apps and trashed apps.
func (t *Tree) AddApp(app App) error {
	if t.appIDTaken(app.ID) {
		return NewDuplicateID("app", app.ID)
	}
	idx, ok := t.findWorkspace(app.WorkspaceID)
	if !ok {
		return NewNotFound("workspace", app.WorkspaceID)
	}
	app.Name = NormalizeName(app.Name)
	for i := range app.Views {
		app.Views[i].Name = NormalizeName(app.Views[i].Name)
	}
	t.Workspaces[idx].Apps = append(t.Workspaces[idx].Apps, app)
	return nil
}

// AppByID returns a copy of the app with the given identifier.
func (t *Tree) AppByID(id string) (App, error) {
	wi, ai, ok := t.findApp(id)
	if !ok {
		return App{}, NewNotFound("app", id)
	}
	return t.Workspaces[wi].Apps[ai], nil
}

// AppsByWorkspace returns copies of the apps owned by a workspace.
func (t *Tree) AppsByWorkspace(workspaceID string) ([]App, error) {
	idx, ok := t.findWorkspace(workspaceID)
	if !ok {
		return nil, NewNotFound("workspace", workspaceID)
	}
	return append([]App(nil), t.Workspaces[idx].Apps...), nil
}

// UpdateApp applies a partial changeset to an app.
func (t *Tree) UpdateApp(ch AppChangeset) error {
	wi, ai, ok := t.findApp(ch.ID)
	if !ok {
		return NewNotFound("app", ch.ID)
	}
	if ch.Name != nil {
		t.Workspaces[wi].Apps[ai].Name = NormalizeName(*ch.Name)
	}
	if ch.Desc != nil {
		t.Workspaces[wi].Apps[ai].Desc = *ch.Desc
	}
	return nil
}

// RemoveApp detaches an app from its workspace and returns it.
func (t *Tree) RemoveApp(id string) (App, error) {
	wi, ai, ok := t.findApp(id)
	if !ok {
		return App{}, NewNotFound("app", id)
	}
	app := t.Workspaces[wi].Apps[ai]
	t.Workspaces[wi].Apps = append(t.Workspaces[wi].Apps[:ai], t.Workspaces[wi].Apps[ai+1:]...)
	return app, nil
}

// AddView inserts a view under its app.
// The parent app must exist and the view identifier must be unique among live
// views and trashed views.
func (t *Tree) AddView(v View) error {
	if t.viewIDTaken(v.ID) {
		return NewDuplicateID("view", v.ID)
	}
	wi, ai, ok := t.findApp(v.BelongToID)
	if !ok {
		return NewNotFound("app", v.BelongToID)
	}
	v.Name = NormalizeName(v.Name)
	t.Workspaces[wi].Apps[ai].Views = append(t.Workspaces[wi].Apps[ai].Views, v)
	return nil
}

// ViewByID returns a copy of the view with the given identifier.
func (t *Tree) ViewByID(id string) (View, error) {
	wi, ai, vi, ok := t.findView(id)
	if !ok {
		return View{}, NewNotFound("view", id)
	}
	return t.Workspaces[wi].Apps[ai].Views[vi], nil
}

// ViewsByApp returns copies of the views owned by an app.
func (t *Tree) ViewsByApp(belongToID string) ([]View, error) {
	wi, ai, ok := t.findApp(belongToID)
	if !ok {
		return nil, NewNotFound("app", belongToID)
	}
	return append([]View(nil), t.Workspaces[wi].Apps[ai].Views...), nil
}

// UpdateView applies a partial changeset to a view.
func (t *Tree) UpdateView(ch ViewChangeset) error {
	wi, ai, vi, ok := t.findView(ch.ID)
	if !ok {
		return NewNotFound("view", ch.ID)
	}
	if ch.Name != nil {
		t.Workspaces[wi].Apps[ai].Views[vi].Name = NormalizeName(*ch.Name)
	}
	if ch.Desc != nil {
		t.Workspaces[wi].Apps[ai].Views[vi].Desc = *ch.Desc
	}
	return nil
}

// RemoveView detaches a view from its app.
func (t *Tree) RemoveView(id string) error {
	wi, ai, vi, ok := t.findView(id)
	if !ok {
		return NewNotFound("view", id)
	}
	views := t.Workspaces[wi].Apps[ai].Views
	t.Workspaces[wi].Apps[ai].Views = append(views[:vi], views[vi+1:]...)
	return nil
}

// AddTrash appends trash entries.
// An entry's identifier must not collide with an existing trash entry or with
// a live entity of the same kind, which would break single-parent ownership.
func (t *Tree) AddTrash(items []Trash) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return NewDuplicateID("trash", item.ID)
		}
		seen[item.ID] = struct{}{}
		if _, ok := t.findTrash(item.ID); ok {
			return NewDuplicateID("trash", item.ID)
		}
		switch item.Kind {
		case TrashApp:
			if _, _, ok := t.findApp(item.ID); ok {
				return NewDuplicateID("trash", item.ID)
			}
		case TrashView:
			if _, _, _, ok := t.findView(item.ID); ok {
				return NewDuplicateID("trash", item.ID)
			}
		}
	}
	for _, item := range items {
		item.Name = NormalizeName(item.Name)
		t.Trash = append(t.Trash, item)
	}
	return nil
}

// TrashByID returns a copy of the trash entry with the given identifier.
func (t *Tree) TrashByID(id string) (Trash, error) {
	idx, ok := t.findTrash(id)
	if !ok {
		return Trash{}, NewNotFound("trash", id)
	}
	return t.Trash[idx], nil
}

// AllTrash returns copies of every trash entry.
func (t *Tree) AllTrash() []Trash {
	return append([]Trash(nil), t.Trash...)
}

// RemoveTrash removes the trash entries with the given identifiers.
// A nil or empty slice removes all entries.
func (t *Tree) RemoveTrash(ids []string) error {
	if len(ids) == 0 {
		t.Trash = nil
		return nil
	}
	for _, id := range ids {
		idx, ok := t.findTrash(id)
		if !ok {
			return NewNotFound("trash", id)
		}
		t.Trash = append(t.Trash[:idx], t.Trash[idx+1:]...)
	}
	return nil
}

func (t *Tree) findWorkspace(id string) (int, bool) {
	for i := range t.Workspaces {
		if t.Workspaces[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (t *Tree) findApp(id string) (wi, ai int, ok bool) {
	for i := range t.Workspaces {
		for j := range t.Workspaces[i].Apps {
			if t.Workspaces[i].Apps[j].ID == id {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func (t *Tree) findView(id string) (wi, ai, vi int, ok bool) {
	for i := range t.Workspaces {
		for j := range t.Workspaces[i].Apps {
			for k := range t.Workspaces[i].Apps[j].Views {
				if t.Workspaces[i].Apps[j].Views[k].ID == id {
					return i, j, k, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

func (t *Tree) findTrash(id string) (int, bool) {
	for i := range t.Trash {
		if t.Trash[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (t *Tree) appIDTaken(id string) bool {
	if _, _, ok := t.findApp(id); ok {
		return true
	}
	if idx, ok := t.findTrash(id); ok && t.Trash[idx].Kind == TrashApp {
		return true
	}
	return false
}

func (t *Tree) viewIDTaken(id string) bool {
	if _, _, _, ok := t.findView(id); ok {
		return true
	}
	if idx, ok := t.findTrash(id); ok && t.Trash[idx].Kind == TrashView {
		return true
	}
	return false
}
