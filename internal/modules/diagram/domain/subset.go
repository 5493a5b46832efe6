package domain

import "sort"

// ChangeFunc receives the visible nodes and edges after every state change.
type ChangeFunc func(nodes []Node, edges []Edge)

// Subset tracks which part of a FullIndex is on screen. It starts at the root
// and grows or shrinks through Expand, Collapse and Toggle.
type Subset struct {
	index    FullIndex
	children map[string][]Edge
	nodes    map[string]struct{}
	edges    map[string]struct{}
	expanded map[string]struct{}
	onChange ChangeFunc
}

// SubsetState is a sorted copy of the three id sets.
type SubsetState struct {
	VisibleNodeIDs []string
	VisibleEdgeIDs []string
	ExpandedIDs    []string
}

func NewSubset(index FullIndex, onChange ChangeFunc) *Subset {
	s := &Subset{onChange: onChange}
	s.Reset(index)
	return s
}

// Reset drops all state and shows only the root of index.
func (s *Subset) Reset(index FullIndex) {
	s.index = index
	s.children = map[string][]Edge{}
	for _, e := range index.Edges {
		s.children[e.From] = append(s.children[e.From], e)
	}
	s.nodes = map[string]struct{}{}
	s.edges = map[string]struct{}{}
	s.expanded = map[string]struct{}{}
	if !index.Empty() {
		s.nodes[index.RootID] = struct{}{}
	}
	s.notify()
}

func (s *Subset) Index() FullIndex { return s.index }

// Expand reveals the direct children of a visible, collapsed node.
func (s *Subset) Expand(id string) bool {
	if !s.expand(id) {
		return false
	}
	s.notify()
	return true
}

func (s *Subset) expand(id string) bool {
	if !s.IsVisible(id) || s.IsExpanded(id) || !s.HasChildren(id) {
		return false
	}
	for _, e := range s.children[id] {
		s.nodes[e.To] = struct{}{}
		s.edges[e.ID] = struct{}{}
	}
	s.expanded[id] = struct{}{}
	return true
}

// Collapse hides every descendant of an expanded node. Descendants are
// cleared whether or not they are currently visible.
func (s *Subset) Collapse(id string) bool {
	if !s.IsExpanded(id) {
		return false
	}
	for _, e := range s.descendantEdges(id) {
		delete(s.nodes, e.To)
		delete(s.edges, e.ID)
		delete(s.expanded, e.To)
	}
	delete(s.expanded, id)
	s.notify()
	return true
}

// descendantEdges walks the subtree below id depth-first with an explicit
// stack and returns the edges children-first.
func (s *Subset) descendantEdges(id string) []Edge {
	seen := map[string]struct{}{id: {}}
	var preorder []Edge
	stack := append([]Edge(nil), s.children[id]...)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[e.To]; ok {
			continue
		}
		seen[e.To] = struct{}{}
		preorder = append(preorder, e)
		stack = append(stack, s.children[e.To]...)
	}
	for i, j := 0, len(preorder)-1; i < j; i, j = i+1, j-1 {
		preorder[i], preorder[j] = preorder[j], preorder[i]
	}
	return preorder
}

// Toggle is the click handler: collapse when expanded, expand otherwise.
func (s *Subset) Toggle(id string) bool {
	if _, ok := s.index.Nodes[id]; !ok {
		return false
	}
	if s.IsExpanded(id) {
		return s.Collapse(id)
	}
	return s.Expand(id)
}

// ExpandAll opens every node reachable from the root and notifies once.
func (s *Subset) ExpandAll() bool {
	if s.index.Empty() {
		return false
	}
	changed := false
	queue := []string{s.index.RootID}
	seen := map[string]struct{}{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if s.expand(id) {
			changed = true
		}
		for _, e := range s.children[id] {
			queue = append(queue, e.To)
		}
	}
	if changed {
		s.notify()
	}
	return changed
}

func (s *Subset) IsVisible(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

func (s *Subset) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

func (s *Subset) HasChildren(id string) bool {
	return len(s.children[id]) > 0
}

// Nodes returns the visible nodes in input order.
func (s *Subset) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, id := range s.index.Order {
		if _, ok := s.nodes[id]; ok {
			out = append(out, s.index.Nodes[id])
		}
	}
	return out
}

// Edges returns the visible edges in input order.
func (s *Subset) Edges() []Edge {
	out := make([]Edge, 0, len(s.edges))
	for _, e := range s.index.Edges {
		if _, ok := s.edges[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *Subset) Snapshot() SubsetState {
	return SubsetState{
		VisibleNodeIDs: sortedKeys(s.nodes),
		VisibleEdgeIDs: sortedKeys(s.edges),
		ExpandedIDs:    sortedKeys(s.expanded),
	}
}

func (s *Subset) notify() {
	if s.onChange != nil {
		s.onChange(s.Nodes(), s.Edges())
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
