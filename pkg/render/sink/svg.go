package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/layout"
)

// Drawing defaults.
const (
	DefaultFontSize    = 14.0
	DefaultEdgeColor   = "#94A3B8"
	DefaultTextColor   = "#1F2937"
	DefaultStrokeWidth = 2
	DefaultCornerRatio = 0.2
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	fontSize    float64
	edgeColor   string
	textColor   string
	strokeWidth int
}

// WithBackground fills the canvas with color. The default is transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithFontSize sets the label font size in pixels.
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithEdgeColor sets the connector stroke color.
func WithEdgeColor(color string) SVGOption { return func(r *svgRenderer) { r.edgeColor = color } }

// WithTextColor sets the label color.
func WithTextColor(color string) SVGOption { return func(r *svgRenderer) { r.textColor = color } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		fontSize:    DefaultFontSize,
		edgeColor:   DefaultEdgeColor,
		textColor:   DefaultTextColor,
		strokeWidth: DefaultStrokeWidth,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fontSize <= 0 {
		r.fontSize = DefaultFontSize
	}
	return r
}

// RenderSVG serializes l at its natural size. Edges are drawn first so node
// boxes cover the connector ends. A nil layout yields nil.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	if l == nil {
		return nil
	}
	r := newSVGRenderer(opts...)
	w, h := l.Size()

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(w, h, 0, 0, w, h)
	if r.background != "" {
		canvas.Rect(0, 0, w, h, "fill:"+r.background)
	}

	edgeStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", r.edgeColor, r.strokeWidth)
	canvas.Gid("edges")
	for _, e := range l.Edges {
		canvas.Path(edgePath(e), edgeStyle)
	}
	canvas.Gend()

	for _, n := range l.Nodes {
		r.renderNode(canvas, n)
	}
	canvas.End()
	return buf.Bytes()
}

func edgePath(e layout.Edge) string {
	var b strings.Builder
	for i, p := range e.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%s %s ", cmd, num(p.X), num(p.Y))
	}
	return strings.TrimSpace(b.String())
}

func (r svgRenderer) renderNode(canvas *svg.SVG, n layout.Node) {
	x, y, w, h := n.Rect()
	radius := px(math.Min(w, h) * DefaultCornerRatio)
	canvas.Roundrect(px(x), px(y), px(w), px(h), radius, radius,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", n.Color.Fill, n.Color.Stroke, r.strokeWidth))

	weight := "normal"
	if n.Depth == 0 {
		weight = "bold"
	}
	style := fmt.Sprintf("fill:%s;font-family:%s;font-size:%spx;font-weight:%s;text-anchor:middle",
		r.textColor, fonts.FallbackFontFamily, num(r.fontSize), weight)

	lineHeight := r.fontSize * 1.25
	first := n.CY - float64(len(n.Lines)-1)*lineHeight/2 + r.fontSize*0.35
	for i, line := range n.Lines {
		canvas.Text(px(n.CX), px(first+float64(i)*lineHeight), line, style)
	}
}

// px rounds a layout coordinate to the integer grid svgo writes.
func px(v float64) int { return int(math.Round(v)) }

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
