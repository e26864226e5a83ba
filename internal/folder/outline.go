package folder

import (
	"fmt"
	"strings"
)

// Outline renders the tree as an indented text listing.
// Used by the CLI's text output and by golden tests; the rendering is
// deterministic for a given tree state.
func (t Tree) Outline() string {
	var b strings.Builder
	for _, ws := range t.Workspaces {
		fmt.Fprintf(&b, "workspace %s (%s)\n", ws.Name, ws.ID)
		for _, app := range ws.Apps {
			fmt.Fprintf(&b, "  app %s (%s)\n", app.Name, app.ID)
			for _, v := range app.Views {
				fmt.Fprintf(&b, "    view %s (%s)\n", v.Name, v.ID)
			}
		}
	}
	for _, tr := range t.Trash {
		fmt.Fprintf(&b, "trash %s [%s] (%s)\n", tr.Name, tr.Kind, tr.ID)
	}
	return b.String()
}
