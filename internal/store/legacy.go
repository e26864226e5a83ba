package store

import (
	"context"
	"fmt"

	"github.com/roach88/folderstore/internal/folder"
)

// HasLegacyData reports whether pre-revision-format entities exist for a
// user. Note this only detects the legacy format's presence; callers deciding
// whether to migrate must also check HasRevisions so an already-migrated user
// is never converted twice.
func (s *Store) HasLegacyData(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM legacy_workspaces WHERE user_id = ?) +
			(SELECT COUNT(*) FROM legacy_trash WHERE user_id = ?)
	`, userID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check legacy data: %w", err)
	}
	return count > 0, nil
}

// ReadLegacyTree assembles a user's complete folder tree from the legacy
// entity tables. Ordering is deterministic (create_time ASC, id ASC) so the
// migrated bootstrap payload is stable across retries.
func (s *Store) ReadLegacyTree(ctx context.Context, userID string) (folder.Tree, error) {
	var tree folder.Tree

	workspaces, err := s.readLegacyWorkspaces(ctx, userID)
	if err != nil {
		return folder.Tree{}, err
	}

	for i := range workspaces {
		apps, err := s.readLegacyApps(ctx, workspaces[i].ID)
		if err != nil {
			return folder.Tree{}, err
		}
		for j := range apps {
			views, err := s.readLegacyViews(ctx, apps[j].ID)
			if err != nil {
				return folder.Tree{}, err
			}
			apps[j].Views = views
		}
		workspaces[i].Apps = apps
	}
	tree.Workspaces = workspaces

	trash, err := s.readLegacyTrash(ctx, userID)
	if err != nil {
		return folder.Tree{}, err
	}
	tree.Trash = trash

	return tree, nil
}

func (s *Store) readLegacyWorkspaces(ctx context.Context, userID string) ([]folder.Workspace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, create_time, modified_time
		FROM legacy_workspaces
		WHERE user_id = ?
		ORDER BY create_time ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query legacy workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []folder.Workspace
	for rows.Next() {
		var ws folder.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Desc, &ws.CreateTime, &ws.ModifiedTime); err != nil {
			return nil, fmt.Errorf("scan legacy workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy workspaces: %w", err)
	}

	return workspaces, nil
}

func (s *Store) readLegacyApps(ctx context.Context, workspaceID string) ([]folder.App, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, description, create_time, modified_time
		FROM legacy_apps
		WHERE workspace_id = ?
		ORDER BY create_time ASC, id ASC
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query legacy apps: %w", err)
	}
	defer rows.Close()

	var apps []folder.App
	for rows.Next() {
		var app folder.App
		if err := rows.Scan(&app.ID, &app.WorkspaceID, &app.Name, &app.Desc,
			&app.CreateTime, &app.ModifiedTime); err != nil {
			return nil, fmt.Errorf("scan legacy app: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy apps: %w", err)
	}

	return apps, nil
}

func (s *Store) readLegacyViews(ctx context.Context, belongToID string) ([]folder.View, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, belong_to_id, name, description, create_time, modified_time
		FROM legacy_views
		WHERE belong_to_id = ?
		ORDER BY create_time ASC, id ASC
	`, belongToID)
	if err != nil {
		return nil, fmt.Errorf("query legacy views: %w", err)
	}
	defer rows.Close()

	var views []folder.View
	for rows.Next() {
		var v folder.View
		if err := rows.Scan(&v.ID, &v.BelongToID, &v.Name, &v.Desc,
			&v.CreateTime, &v.ModifiedTime); err != nil {
			return nil, fmt.Errorf("scan legacy view: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy views: %w", err)
	}

	return views, nil
}

func (s *Store) readLegacyTrash(ctx context.Context, userID string) ([]folder.Trash, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, create_time, modified_time
		FROM legacy_trash
		WHERE user_id = ?
		ORDER BY create_time ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query legacy trash: %w", err)
	}
	defer rows.Close()

	var trash []folder.Trash
	for rows.Next() {
		var tr folder.Trash
		var kind string
		if err := rows.Scan(&tr.ID, &tr.Name, &kind, &tr.CreateTime, &tr.ModifiedTime); err != nil {
			return nil, fmt.Errorf("scan legacy trash: %w", err)
		}
		tr.Kind = folder.TrashKind(kind)
		trash = append(trash, tr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy trash: %w", err)
	}

	return trash, nil
}

// InsertLegacyWorkspace writes a workspace row in the legacy format.
// Support path for migration fixtures and import tooling; production writes
// go through the revision log.
func (s *Store) InsertLegacyWorkspace(ctx context.Context, userID string, ws folder.Workspace) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO legacy_workspaces (id, user_id, name, description, create_time, modified_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ws.ID, userID, ws.Name, ws.Desc, ws.CreateTime, ws.ModifiedTime)
	if err != nil {
		return fmt.Errorf("insert legacy workspace: %w", err)
	}
	return nil
}

// InsertLegacyApp writes an app row in the legacy format.
func (s *Store) InsertLegacyApp(ctx context.Context, app folder.App) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO legacy_apps (id, workspace_id, name, description, create_time, modified_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, app.ID, app.WorkspaceID, app.Name, app.Desc, app.CreateTime, app.ModifiedTime)
	if err != nil {
		return fmt.Errorf("insert legacy app: %w", err)
	}
	return nil
}

// InsertLegacyView writes a view row in the legacy format.
func (s *Store) InsertLegacyView(ctx context.Context, v folder.View) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO legacy_views (id, belong_to_id, name, description, create_time, modified_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.ID, v.BelongToID, v.Name, v.Desc, v.CreateTime, v.ModifiedTime)
	if err != nil {
		return fmt.Errorf("insert legacy view: %w", err)
	}
	return nil
}

// InsertLegacyTrash writes a trash row in the legacy format.
func (s *Store) InsertLegacyTrash(ctx context.Context, userID string, tr folder.Trash) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO legacy_trash (id, user_id, name, kind, create_time, modified_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tr.ID, userID, tr.Name, string(tr.Kind), tr.CreateTime, tr.ModifiedTime)
	if err != nil {
		return fmt.Errorf("insert legacy trash: %w", err)
	}
	return nil
}
