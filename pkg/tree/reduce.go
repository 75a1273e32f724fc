package tree

import (
	"slices"
	"strings"

	"github.com/matzehuels/mindmap/pkg/graph"
)

// Result contains counters about what a reduction discarded or repaired.
//
// Result is returned by [ReduceWithResult] for logging and API responses.
// None of these conditions is an error.
type Result struct {
	// DroppedNodes counts nodes with a blank id or label.
	DroppedNodes int `json:"dropped_nodes"`

	// DuplicateNodes counts node entries superseded by a later entry with the
	// same id.
	DuplicateNodes int `json:"duplicate_nodes"`

	// DroppedEdges counts self-loops and edges with an unknown endpoint.
	DroppedEdges int `json:"dropped_edges"`

	// IgnoredEdges counts kept edges whose target already had a parent.
	IgnoredEdges int `json:"ignored_edges"`

	// OrphansAttached counts nodes re-parented to the root because they
	// were unreachable from it.
	OrphansAttached int `json:"orphans_attached"`

	// RootFallback is true when every node had a parent and the first node
	// was chosen as root.
	RootFallback bool `json:"root_fallback"`
}

// Reduce converts g into a rooted tree. It returns nil when no node survives
// normalization.
func Reduce(g graph.Graph) *Tree {
	t, _ := ReduceWithResult(g)
	return t
}

// ReduceWithResult is [Reduce] plus counters describing the repairs made.
func ReduceWithResult(g graph.Graph) (*Tree, Result) {
	var res Result
	t := &Tree{
		labels:   make(map[string]string),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}

	for _, n := range g.Nodes {
		id, label := strings.TrimSpace(n.ID), strings.TrimSpace(n.Label)
		if id == "" || label == "" {
			res.DroppedNodes++
			continue
		}
		if _, seen := t.labels[id]; seen {
			res.DuplicateNodes++
		} else {
			t.order = append(t.order, id)
		}
		t.labels[id] = label
	}
	if len(t.order) == 0 {
		return nil, res
	}

	for _, e := range g.Edges {
		from, to := strings.TrimSpace(e.From), strings.TrimSpace(e.To)
		if from == to || !t.Has(from) || !t.Has(to) {
			res.DroppedEdges++
			continue
		}
		if _, ok := t.parent[to]; ok {
			res.IgnoredEdges++
			continue
		}
		t.parent[to] = from
		t.children[from] = append(t.children[from], to)
	}

	t.root = t.order[0]
	res.RootFallback = true
	for _, id := range t.order {
		if _, ok := t.parent[id]; !ok {
			t.root = id
			res.RootFallback = false
			break
		}
	}
	if res.RootFallback {
		t.detach(t.root)
	}

	reached := make(map[string]bool, len(t.order))
	t.mark(t.root, reached)
	for _, id := range t.order {
		if reached[id] {
			continue
		}
		t.detach(id)
		t.parent[id] = t.root
		t.children[t.root] = append(t.children[t.root], id)
		t.mark(id, reached)
		res.OrphansAttached++
	}
	return t, res
}

// detach removes the parent link of id, if any.
func (t *Tree) detach(id string) {
	p, ok := t.parent[id]
	if !ok {
		return
	}
	delete(t.parent, id)
	if i := slices.Index(t.children[p], id); i >= 0 {
		t.children[p] = slices.Delete(t.children[p], i, i+1)
	}
}

// mark adds id and everything below it to reached.
func (t *Tree) mark(id string, reached map[string]bool) {
	if reached[id] {
		return
	}
	reached[id] = true
	for _, c := range t.children[id] {
		t.mark(c, reached)
	}
}
