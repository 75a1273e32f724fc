package graph

// Graph is the node-link description of a mind map.
//
// Nodes and Edges keep their supplied order; the tree reducer relies on it
// for root selection and first-parent-wins resolution.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a single concept in the map.
// A node with a blank ID or a blank Label is dropped by the reducer.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Edge is a directed parent → child link.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"` // carried, never drawn
}

// NodeCount returns the number of supplied nodes, duplicates included.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of supplied edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// IsEmpty reports whether the graph has no nodes.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }
