package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	diagramdto "depflow/internal/modules/diagram/dto"
	"depflow/internal/ui/theme"
)

// TreeRow is one line of the rendered tree.
type TreeRow struct {
	Node      diagramdto.NodeOutput
	EdgeLabel string
	Depth     int
	Prefix    string
}

var (
	edgeLabelStyle = lipgloss.NewStyle().Foreground(theme.Green)
	cursorStyle    = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// TreeRows lays out the visible diagram depth-first from the root, children
// in input order.
func TreeRows(out diagramdto.DiagramOutput) []TreeRow {
	if out.Empty || out.RootID == "" {
		return nil
	}
	nodes := make(map[string]diagramdto.NodeOutput, len(out.Nodes))
	for _, n := range out.Nodes {
		nodes[n.ID] = n
	}
	root, ok := nodes[out.RootID]
	if !ok {
		return nil
	}
	children := map[string][]diagramdto.EdgeOutput{}
	for _, e := range out.Edges {
		children[e.From] = append(children[e.From], e)
	}

	type frame struct {
		id     string
		label  string
		depth  int
		indent string
		last   bool
	}
	rows := make([]TreeRow, 0, len(out.Nodes))
	seen := map[string]bool{}
	stack := []frame{{id: root.ID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, ok := nodes[f.id]
		if !ok || seen[f.id] {
			continue
		}
		seen[f.id] = true

		prefix, childIndent := "", ""
		if f.depth > 0 {
			if f.last {
				prefix, childIndent = f.indent+"└─ ", f.indent+"   "
			} else {
				prefix, childIndent = f.indent+"├─ ", f.indent+"│  "
			}
		}
		rows = append(rows, TreeRow{Node: node, EdgeLabel: f.label, Depth: f.depth, Prefix: prefix})

		kids := children[f.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				id:     kids[i].To,
				label:  kids[i].Label,
				depth:  f.depth + 1,
				indent: childIndent,
				last:   i == len(kids)-1,
			})
		}
	}
	return rows
}

// RenderTree draws the visible diagram. The row whose node id equals cursor
// is highlighted; pass "" for no cursor.
func RenderTree(out diagramdto.DiagramOutput, cursor string) string {
	rows := TreeRows(out)
	if len(rows) == 0 {
		return theme.Muted.Render("nothing to render")
	}
	var sb strings.Builder
	for _, row := range rows {
		pointer := "  "
		if cursor != "" && row.Node.ID == cursor {
			pointer = cursorStyle.Render("› ")
		}
		sb.WriteString(pointer)
		sb.WriteString(theme.Muted.Render(row.Prefix))
		if row.EdgeLabel != "" {
			sb.WriteString(edgeLabelStyle.Render(row.EdgeLabel) + theme.Muted.Render(" → "))
		}
		sb.WriteString(theme.NodeStyle(row.Node.Color).Render(row.Node.Label))
		sb.WriteString(theme.Muted.Render(" [" + row.Node.ID + "]"))
		sb.WriteString(" " + marker(row.Node) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func marker(n diagramdto.NodeOutput) string {
	switch {
	case n.Expanded:
		return "▾"
	case n.HasChildren:
		return "▸"
	default:
		return "·"
	}
}
