package domain

import (
	"regexp"
	"strings"
)

const (
	rootHead     = "0"
	rootRelation = "main"
)

type Color string

const (
	ColorRoot        Color = "root"
	ColorConjunction Color = "conjunction"
	ColorDefault     Color = "default"
)

// Record is one usable input line.
type Record struct {
	ID       string
	RawToken string
	Head     string
	Relation string
	Label    string
}

type Node struct {
	ID       string
	Label    string
	Head     string
	Relation string
	RawToken string
	Color    Color
}

type Edge struct {
	ID       string
	From     string
	To       string
	Relation string
	Label    string
}

// FullIndex is the complete parse of one input text. It is never mutated
// after Parse returns.
type FullIndex struct {
	RootID  string
	Nodes   map[string]Node
	Order   []string
	Edges   []Edge
	Records []Record
	// Dangling lists node ids whose head is not a node of this parse.
	Dangling []string
}

// Empty reports whether the input had no root line; there is nothing to render.
func (f FullIndex) Empty() bool {
	return f.RootID == ""
}

func (f FullIndex) Node(id string) (Node, bool) {
	n, ok := f.Nodes[id]
	return n, ok
}

func (f FullIndex) ChildEdges(id string) []Edge {
	var out []Edge
	for _, e := range f.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Parse reads the line-oriented dependency format. Malformed lines are
// dropped; a text without a root line yields an Empty index.
func Parse(text string) FullIndex {
	records, order := readRecords(text)

	rootID := ""
	for _, id := range order {
		r := records[id]
		if r.Head == rootHead && r.Relation == rootRelation {
			rootID = id
		}
	}

	idx := FullIndex{Nodes: map[string]Node{}}
	for _, id := range order {
		r := records[id]
		idx.Records = append(idx.Records, r)
		if IsDescriptorRelation(r.Relation) {
			continue
		}
		label := r.Label
		if label == "" || (isPlaceholder(r.RawToken) && label != ConjunctionLabel) {
			label = descriptorLabel(records, order, id)
			if label == "" {
				label = placeholderText(r.RawToken)
			}
		}
		color := ColorDefault
		switch {
		case id == rootID:
			color = ColorRoot
		case label == ConjunctionLabel:
			color = ColorConjunction
		}
		idx.Nodes[id] = Node{ID: id, Label: label, Head: r.Head, Relation: r.Relation, RawToken: r.RawToken, Color: color}
		idx.Order = append(idx.Order, id)
	}

	if rootID == "" {
		return FullIndex{Nodes: idx.Nodes, Order: idx.Order, Records: idx.Records}
	}
	idx.RootID = rootID
	if root, ok := idx.Nodes[rootID]; ok {
		root.Head = ""
		idx.Nodes[rootID] = root
	}

	for _, id := range idx.Order {
		if id == rootID {
			continue
		}
		n := idx.Nodes[id]
		if _, ok := idx.Nodes[n.Head]; !ok || n.Head == id {
			idx.Dangling = append(idx.Dangling, id)
			continue
		}
		idx.Edges = append(idx.Edges, Edge{
			ID:       n.Head + "->" + id,
			From:     n.Head,
			To:       id,
			Relation: n.Relation,
			Label:    RelationLabel(n.Relation),
		})
	}
	return idx
}

func readRecords(text string) (map[string]Record, []string) {
	records := map[string]Record{}
	order := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "<") || strings.HasPrefix(line, "#") {
			continue
		}
		r, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, seen := records[r.ID]; !seen {
			order = append(order, r.ID)
		}
		records[r.ID] = r
	}
	return records, order
}

func parseLine(line string) (Record, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return Record{}, false
	}
	id, relToken := "", ""
	for _, tok := range tokens[1:] {
		if id == "" && digitsOnly.MatchString(tok) {
			id = tok
		}
		if relToken == "" && strings.Contains(tok, ":") {
			relToken = tok
		}
	}
	if id == "" || relToken == "" {
		return Record{}, false
	}
	parts := strings.Split(relToken, ":")
	return Record{
		ID:       id,
		RawToken: tokens[0],
		Head:     parts[0],
		Relation: parts[1],
		Label:    NormalizeLabel(tokens[0]),
	}, true
}

func descriptorLabel(records map[string]Record, order []string, headID string) string {
	for _, id := range order {
		r := records[id]
		if r.Head == headID && IsDescriptorRelation(r.Relation) && r.Label != "" {
			return r.Label
		}
	}
	return ""
}
