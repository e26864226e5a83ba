package folder

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed default_tree.yaml
var defaultTreeYAML []byte

// defaultTemplate mirrors the embedded default-tree YAML.
type defaultTemplate struct {
	Workspace struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Apps        []struct {
			Name  string `yaml:"name"`
			Views []struct {
				Name string `yaml:"name"`
			} `yaml:"views"`
		} `yaml:"apps"`
	} `yaml:"workspace"`
}

// DefaultTree builds the seed tree for a brand-new user from the embedded
// template: one workspace with a fixed set of apps and views. Identifiers are
// freshly generated; now stamps the create/modified times.
func DefaultTree(now int64) (Tree, error) {
	var tpl defaultTemplate
	if err := yaml.Unmarshal(defaultTreeYAML, &tpl); err != nil {
		return Tree{}, fmt.Errorf("parse default tree template: %w", err)
	}

	ws := Workspace{
		ID:           uuid.NewString(),
		Name:         NormalizeName(tpl.Workspace.Name),
		Desc:         tpl.Workspace.Description,
		CreateTime:   now,
		ModifiedTime: now,
	}
	for _, appTpl := range tpl.Workspace.Apps {
		app := App{
			ID:           uuid.NewString(),
			WorkspaceID:  ws.ID,
			Name:         NormalizeName(appTpl.Name),
			CreateTime:   now,
			ModifiedTime: now,
		}
		for _, viewTpl := range appTpl.Views {
			app.Views = append(app.Views, View{
				ID:           uuid.NewString(),
				BelongToID:   app.ID,
				Name:         NormalizeName(viewTpl.Name),
				CreateTime:   now,
				ModifiedTime: now,
			})
		}
		ws.Apps = append(ws.Apps, app)
	}

	return Tree{Workspaces: []Workspace{ws}}, nil
}
