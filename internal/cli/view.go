package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/viewport"
)

// Terminal cells are mapped to screen pixels so the controller works in the
// same units as a graphical viewer.
const (
	cellW     = 8.0
	cellH     = 16.0
	panCells  = 4
	zoomStep  = 1.25
	statusBar = 1
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		lf layoutFlags
		cf cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "view [graph.json|layout.json]",
		Short: "Pan and zoom a diagram in the terminal",
		Long: `Pan and zoom a diagram in the terminal.

Keys: arrows or hjkl pan, + and - zoom around the center, 0 refits,
q quits. Drag with the mouse to pan and scroll to zoom around the pointer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			cf.apply(&opts)
			return c.runView(cmd.Context(), args[0], opts, cf.noCache)
		},
	}

	lf.register(cmd)
	cf.register(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	l, err := c.loadViewLayout(ctx, input, opts, noCache)
	if errors.Is(err, errors.ErrCodeEmptyGraph) {
		c.ui.nothingToShow()
		return nil
	}
	if err != nil {
		return err
	}

	p := tea.NewProgram(newViewModel(l),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

// loadViewLayout accepts either a precomputed layout or a graph.
func (c *CLI) loadViewLayout(ctx context.Context, input string, opts pipeline.Options, noCache bool) (*layout.Layout, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		return layout.ReadFile(input)
	}
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", input, err)
	}
	runner, err := c.newRunner(opts.Cache, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	_, l, _, err := runner.Layout(ctx, g, opts)
	return l, err
}

// =============================================================================
// viewModel - bubbletea model over a viewport.Controller
// =============================================================================

type viewModel struct {
	layout *layout.Layout
	ctrl   *viewport.Controller
	styles []lipgloss.Style
	cols   int
	rows   int
	ready  bool
}

func newViewModel(l *layout.Layout) viewModel {
	m := viewModel{
		layout: l,
		ctrl:   viewport.New(viewport.Size{W: l.Width, H: l.Height}),
	}
	for _, n := range l.Nodes {
		for len(m.styles) <= n.Depth {
			m.styles = append(m.styles, lipgloss.NewStyle())
		}
		m.styles[n.Depth] = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color.Stroke))
	}
	return m
}

func (m viewModel) Init() tea.Cmd { return nil }

// screen returns the drawable area in screen pixels.
func (m viewModel) screen() viewport.Size {
	return viewport.Size{W: float64(m.cols) * cellW, H: float64(m.rows) * cellH}
}

func (m viewModel) center() viewport.Point {
	s := m.screen()
	return viewport.Point{X: s.W / 2, Y: s.H / 2}
}

// cellPoint returns the screen-pixel center of a terminal cell.
func cellPoint(x, y int) viewport.Point {
	return viewport.Point{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = max(msg.Height-statusBar, 1)
		if !m.ready {
			m.ctrl.Fit(m.screen())
			m.ready = true
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.ctrl.Pan(panCells*cellW, 0)
		case "right", "l":
			m.ctrl.Pan(-panCells*cellW, 0)
		case "up", "k":
			m.ctrl.Pan(0, panCells*cellH/2)
		case "down", "j":
			m.ctrl.Pan(0, -panCells*cellH/2)
		case "+", "=":
			m.ctrl.ZoomBy(zoomStep, m.center())
		case "-", "_":
			m.ctrl.ZoomBy(1/zoomStep, m.center())
		case "0", "r":
			m.ctrl.Reset(m.screen())
		}
	case tea.MouseMsg:
		p := cellPoint(msg.X, msg.Y)
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.ctrl.ZoomBy(zoomStep, p)
		case msg.Button == tea.MouseButtonWheelDown:
			m.ctrl.ZoomBy(1/zoomStep, p)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.ctrl.DragStart(p)
		case msg.Action == tea.MouseActionMotion:
			m.ctrl.DragMove(p)
		case msg.Action == tea.MouseActionRelease:
			m.ctrl.DragEnd()
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	if !m.ready {
		return ""
	}
	c := newCanvas(m.cols, m.rows)
	t := m.ctrl.Transform()
	for _, e := range m.layout.Edges {
		var pts [4]cell
		for i, p := range e.Points {
			pts[i] = toCell(t, p.X, p.Y)
		}
		c.vline(pts[0].x, pts[0].y, pts[1].y)
		c.hline(pts[1].y, pts[1].x, pts[2].x)
		c.vline(pts[2].x, pts[2].y, pts[3].y)
	}
	for _, n := range m.layout.Nodes {
		x, y, w, h := n.Rect()
		c.box(toCell(t, x, y), toCell(t, x+w, y+h), n.Lines, n.Depth)
	}

	status := fmt.Sprintf("%3.0f%%  arrows pan · +/- zoom · 0 fit · drag pan · q quit", t.Scale*100)
	return c.render(m.styles) + "\n" + styleDim.Render(status)
}

// =============================================================================
// canvas - a grid of grapheme cells with a style per cell
// =============================================================================

type cell struct{ x, y int }

func toCell(t viewport.Transform, x, y float64) cell {
	s := t.ToScreen(viewport.Point{X: x, Y: y})
	return cell{x: int(math.Floor(s.X / cellW)), y: int(math.Floor(s.Y / cellH))}
}

type canvas struct {
	w, h  int
	chars [][]string
	style [][]int // -1 for unstyled
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, chars: make([][]string, h), style: make([][]int, h)}
	for y := range c.chars {
		c.chars[y] = make([]string, w)
		c.style[y] = make([]int, w)
		for x := range c.chars[y] {
			c.chars[y][x] = " "
			c.style[y][x] = -1
		}
	}
	return c
}

func (c *canvas) set(x, y int, ch string, style int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.chars[y][x] = ch
	c.style[y][x] = style
}

func (c *canvas) get(x, y int) string {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return ""
	}
	return c.chars[y][x]
}

func (c *canvas) vline(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		ch := "│"
		if c.get(x, y) == "─" {
			ch = "┼"
		}
		c.set(x, y, ch, -1)
	}
}

func (c *canvas) hline(y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		ch := "─"
		if c.get(x, y) == "│" {
			ch = "┼"
		}
		c.set(x, y, ch, -1)
	}
}

// box draws a rounded node box with its label lines centered inside. Boxes
// too small for a border collapse to a single marker.
func (c *canvas) box(tl, br cell, lines []string, style int) {
	if br.x-tl.x < 2 || br.y-tl.y < 1 {
		c.set(tl.x, tl.y, "■", style)
		return
	}
	for y := tl.y; y <= br.y; y++ {
		for x := tl.x; x <= br.x; x++ {
			var ch string
			switch {
			case y == tl.y && x == tl.x:
				ch = "╭"
			case y == tl.y && x == br.x:
				ch = "╮"
			case y == br.y && x == tl.x:
				ch = "╰"
			case y == br.y && x == br.x:
				ch = "╯"
			case y == tl.y || y == br.y:
				ch = "─"
			case x == tl.x || x == br.x:
				ch = "│"
			default:
				ch = " "
			}
			c.set(x, y, ch, style)
		}
	}

	inner := br.x - tl.x - 1
	rows := br.y - tl.y - 1
	if rows < 1 {
		return
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	top := tl.y + 1 + (rows-len(lines))/2
	for i, line := range lines {
		g := clusters(line, inner)
		x := tl.x + 1 + (inner-len(g))/2
		for j, ch := range g {
			c.set(x+j, top+i, ch, -1)
		}
	}
}

// clusters splits s into at most n grapheme clusters.
func clusters(s string, n int) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for len(out) < n && gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// render joins the grid, styling runs of cells that share a style.
func (c *canvas) render(styles []lipgloss.Style) string {
	var b strings.Builder
	for y := range c.chars {
		if y > 0 {
			b.WriteByte('\n')
		}
		x := 0
		for x < c.w {
			s := c.style[y][x]
			end := x
			var run strings.Builder
			for end < c.w && c.style[y][end] == s {
				run.WriteString(c.chars[y][end])
				end++
			}
			if s >= 0 && s < len(styles) {
				b.WriteString(styles[s].Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			x = end
		}
	}
	return b.String()
}
