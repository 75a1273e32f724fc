package layout

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/tree"
)

// Point is a position in natural-size pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned tree node.
type Node struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Lines  []string `json:"lines"`
	Depth  int      `json:"depth"`
	Column float64  `json:"column"`
	CX     float64  `json:"cx"`
	CY     float64  `json:"cy"`
	W      float64  `json:"w"`
	H      float64  `json:"h"`
	Color  Color    `json:"color"`
}

// X returns the left edge of the node footprint.
func (n Node) X() float64 { return n.CX - n.W/2 }

// Y returns the top edge of the node footprint.
func (n Node) Y() float64 { return n.CY - n.H/2 }

// Top returns the y coordinate of the node's top edge.
func (n Node) Top() float64 { return n.CY - n.H/2 }

// Bottom returns the y coordinate of the node's bottom edge.
func (n Node) Bottom() float64 { return n.CY + n.H/2 }

// Rect returns the node footprint as x, y, width, height.
func (n Node) Rect() (x, y, w, h float64) { return n.X(), n.Y(), n.W, n.H }

// Edge is an orthogonal parent→child connector:
// (x1,y1) → (x1,ym) → (x2,ym) → (x2,y2), where y1 is the parent's bottom,
// y2 the child's top and ym their midpoint.
type Edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Points [4]Point `json:"points"`
}

// Layout is the natural-size drawing of a tree.
type Layout struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	RootID    string  `json:"root"`
	LeafCount int     `json:"leaf_count"`
	MaxDepth  int     `json:"max_depth"`
	Nodes     []Node  `json:"nodes"`
	Edges     []Edge  `json:"edges"`
}

// Size returns the canvas size rounded up to whole pixels.
func (l *Layout) Size() (w, h int) {
	return int(math.Ceil(l.Width)), int(math.Ceil(l.Height))
}

// Node returns the positioned node with the given id.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Build lays out t. It returns nil for a nil tree.
func Build(t *tree.Tree, opts ...Option) *Layout {
	if t == nil {
		return nil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o = o.sanitize()

	b := &builder{t: t, o: o, columns: make(map[string]float64, t.Len())}
	var leaves int
	b.visit(t.Root(), 0, &leaves)

	l := &Layout{
		RootID:    t.Root(),
		LeafCount: leaves,
		MaxDepth:  b.maxDepth,
		Width:     2*o.PadX + float64(leaves)*o.NodeWidth + float64(leaves-1)*o.GapX,
		Height:    2*o.PadY + float64(b.maxDepth+1)*o.NodeHeight + float64(b.maxDepth)*o.GapY,
		Nodes:     make([]Node, 0, t.Len()),
		Edges:     make([]Edge, 0, t.Len()-1),
	}

	index := make(map[string]int, t.Len())
	t.Walk(func(id string, depth int) {
		col := b.columns[id]
		index[id] = len(l.Nodes)
		l.Nodes = append(l.Nodes, Node{
			ID:     id,
			Label:  t.Label(id),
			Lines:  WrapLabel(t.Label(id), o.LabelLineChars, o.LabelMaxLines),
			Depth:  depth,
			Column: col,
			CX:     o.PadX + o.NodeWidth/2 + col*(o.NodeWidth+o.GapX),
			CY:     o.PadY + o.NodeHeight/2 + float64(depth)*(o.NodeHeight+o.GapY),
			W:      o.NodeWidth,
			H:      o.NodeHeight,
			Color:  o.Palette.At(depth),
		})
		if parent, ok := t.Parent(id); ok {
			p, c := l.Nodes[index[parent]], l.Nodes[index[id]]
			l.Edges = append(l.Edges, route(p, c))
		}
	})
	return l
}

// route builds the orthogonal connector from parent to child.
func route(p, c Node) Edge {
	y1, y2 := p.Bottom(), c.Top()
	ym := (y1 + y2) / 2
	return Edge{
		From: p.ID,
		To:   c.ID,
		Points: [4]Point{
			{X: p.CX, Y: y1},
			{X: p.CX, Y: ym},
			{X: c.CX, Y: ym},
			{X: c.CX, Y: y2},
		},
	}
}

type builder struct {
	t        *tree.Tree
	o        Options
	columns  map[string]float64
	maxDepth int
}

// visit assigns columns in post-order and returns the subtree's leaf column
// range. leaves counts the leaves assigned so far.
func (b *builder) visit(id string, depth int, leaves *int) (lo, hi int) {
	b.maxDepth = max(b.maxDepth, depth)
	kids := b.t.Children(id)
	if len(kids) == 0 {
		col := *leaves
		*leaves++
		b.columns[id] = float64(col)
		return col, col
	}
	lo, hi = math.MaxInt, math.MinInt
	for _, c := range kids {
		clo, chi := b.visit(c, depth+1, leaves)
		lo, hi = min(lo, clo), max(hi, chi)
	}
	b.columns[id] = float64(lo+hi) / 2
	return lo, hi
}
