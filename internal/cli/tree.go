package cli

import (
	"encoding/json"
	"fmt"
	"io"

	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// treeCommand creates the tree command for inspecting the reduced tree.
func (c *CLI) treeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree [graph.json]",
		Short: "Print the tree a graph reduces to",
		Long: `Print the tree a graph reduces to.

Each node keeps the first parent that points at it; nodes that cannot be
reached from the root are attached directly to it. Blank nodes, self loops
and edges to unknown nodes are dropped. Graphs may be JSON or YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")

	return cmd
}

// runTree loads and reduces the graph, then prints the tree to w.
func (c *CLI) runTree(w io.Writer, input string, asJSON bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	t, res, err := pipeline.Reduce(g)
	if errors.Is(err, errors.ErrCodeEmptyGraph) {
		c.ui.nothingToShow()
		return nil
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("reduced graph",
		"nodes", t.Len(),
		"dropped_nodes", res.DroppedNodes,
		"dropped_edges", res.DroppedEdges,
		"orphans", res.OrphansAttached)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	fmt.Fprintln(w, formatTree(t))
	c.printReduction(g, t, res)
	return nil
}

// formatTree renders t as an indented tree with rounded connectors.
func formatTree(t *tree.Tree) string {
	root := ltree.Root(nodeLabel(t, t.Root())).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(styleDim).
		RootStyle(styleTitle)
	addChildren(root, t, t.Root())
	return root.String()
}

func addChildren(parent *ltree.Tree, t *tree.Tree, id string) {
	for _, child := range t.Children(id) {
		if t.IsLeaf(child) {
			parent.Child(nodeLabel(t, child))
			continue
		}
		sub := ltree.Root(nodeLabel(t, child))
		addChildren(sub, t, child)
		parent.Child(sub)
	}
}

func nodeLabel(t *tree.Tree, id string) string {
	label := t.Label(id)
	if label == id {
		return label
	}
	return label + " " + styleDim.Render("("+id+")")
}

// printReduction summarizes what the reducer dropped or repaired.
func (c *CLI) printReduction(g graph.Graph, t *tree.Tree, res tree.Result) {
	c.ui.summary(plural(g.NodeCount(), "node"), plural(g.EdgeCount(), "edge"))
	var notes []string
	if res.DroppedNodes > 0 {
		notes = append(notes, fmt.Sprintf("%d blank nodes dropped", res.DroppedNodes))
	}
	if res.DuplicateNodes > 0 {
		notes = append(notes, fmt.Sprintf("%d duplicate ids merged", res.DuplicateNodes))
	}
	if res.DroppedEdges > 0 {
		notes = append(notes, fmt.Sprintf("%d invalid edges dropped", res.DroppedEdges))
	}
	if res.IgnoredEdges > 0 {
		notes = append(notes, fmt.Sprintf("%d extra parents ignored", res.IgnoredEdges))
	}
	if res.OrphansAttached > 0 {
		notes = append(notes, fmt.Sprintf("%d orphans attached to root", res.OrphansAttached))
	}
	if res.RootFallback {
		notes = append(notes, "no parentless node; first node used as root")
	}
	for _, n := range notes {
		c.ui.detail("%s", n)
	}
	c.ui.keyValue("tree", fmt.Sprintf("%d nodes, depth %d, %d leaves", t.Len(), t.MaxDepth(), t.LeafCount()))
}
