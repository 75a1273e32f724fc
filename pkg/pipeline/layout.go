package pipeline

import (
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// =============================================================================
// Reduce and Layout
// =============================================================================

// Reduce turns g into a tree. It returns [ErrEmptyGraph] when no node
// survives.
func Reduce(g graph.Graph) (*tree.Tree, tree.Result, error) {
	t, res := tree.ReduceWithResult(g)
	if t == nil {
		return nil, res, ErrEmptyGraph
	}
	return t, res, nil
}

// GenerateLayout lays out t with the layout constants of opts.
func GenerateLayout(t *tree.Tree, opts Options) (*layout.Layout, error) {
	if t == nil {
		return nil, ErrEmptyGraph
	}
	return layout.Build(t, layout.WithOptions(opts.Layout)), nil
}
