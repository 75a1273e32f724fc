package tree

import "encoding/json"

// Tree is a rooted, acyclic reduction of a graph.
// Every surviving node appears exactly once and has at most one parent.
type Tree struct {
	root     string
	order    []string
	labels   map[string]string
	parent   map[string]string
	children map[string][]string
}

// Root returns the root node id.
func (t *Tree) Root() string { return t.root }

// Len returns the number of nodes in the tree. A nil tree has none.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Has reports whether id is a node of the tree.
func (t *Tree) Has(id string) bool {
	_, ok := t.labels[id]
	return ok
}

// Label returns the trimmed label of id.
func (t *Tree) Label(id string) string { return t.labels[id] }

// Parent returns the parent of id. The root has no parent.
func (t *Tree) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns a copy of the ordered children of id.
func (t *Tree) Children(id string) []string {
	kids := t.children[id]
	if len(kids) == 0 {
		return nil
	}
	out := make([]string, len(kids))
	copy(out, kids)
	return out
}

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id string) bool { return len(t.children[id]) == 0 }

// Depth returns the distance of id from the root, or -1 if id is unknown.
func (t *Tree) Depth(id string) int {
	if !t.Has(id) {
		return -1
	}
	d := 0
	for id != t.root {
		id = t.parent[id]
		d++
	}
	return d
}

// Walk visits every node in depth-first pre-order, children in order.
func (t *Tree) Walk(fn func(id string, depth int)) {
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		fn(id, depth)
		for _, c := range t.children[id] {
			visit(c, depth+1)
		}
	}
	visit(t.root, 0)
}

// IDs returns all node ids in depth-first pre-order.
func (t *Tree) IDs() []string {
	ids := make([]string, 0, len(t.order))
	t.Walk(func(id string, _ int) { ids = append(ids, id) })
	return ids
}

// MaxDepth returns the depth of the deepest node.
func (t *Tree) MaxDepth() int {
	maxDepth := 0
	t.Walk(func(_ string, depth int) {
		maxDepth = max(maxDepth, depth)
	})
	return maxDepth
}

// LeafCount returns the number of nodes without children.
func (t *Tree) LeafCount() int {
	n := 0
	for _, id := range t.order {
		if t.IsLeaf(id) {
			n++
		}
	}
	return n
}

// Node is the serialized form of a tree node.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Depth    int      `json:"depth"`
	Children []string `json:"children"`
}

type treeJSON struct {
	Root  string `json:"root"`
	Nodes []Node `json:"nodes"`
}

// MarshalJSON encodes the tree as its root plus nodes in pre-order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	out := treeJSON{Root: t.root, Nodes: make([]Node, 0, len(t.order))}
	t.Walk(func(id string, depth int) {
		kids := t.Children(id)
		if kids == nil {
			kids = []string{}
		}
		out.Nodes = append(out.Nodes, Node{ID: id, Label: t.labels[id], Depth: depth, Children: kids})
	})
	return json.Marshal(out)
}
