package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindmap/pkg/layout"
)

// Accent colors are taken from the diagram palette so a tree printed in the
// terminal reads like its rendered picture.
var (
	colorRoot   = lipgloss.Color(layout.DefaultPalette.At(0).Stroke)
	colorBranch = lipgloss.Color(layout.DefaultPalette.At(1).Stroke)
	colorOK     = lipgloss.Color(layout.DefaultPalette.At(2).Stroke)
	colorWarn   = lipgloss.Color(layout.DefaultPalette.At(3).Stroke)
	colorFail   = lipgloss.Color(layout.DefaultPalette.At(4).Stroke)
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorRoot)
	styleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	styleValue   = lipgloss.NewStyle().Bold(true)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleCommand = lipgloss.NewStyle().Foreground(colorBranch)
	styleSpinner = lipgloss.NewStyle().Foreground(colorBranch)
)

// mark is the glyph that leads a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = mark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markNote = mark{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

// console writes status lines meant for a person. Command results such as
// trees, JSON and shell scripts go to stdout; status lines and spinners go
// to the console writer so piped output stays clean.
type console struct {
	w io.Writer
}

func newConsole(w io.Writer) console {
	if w == nil {
		w = os.Stderr
	}
	return console{w: w}
}

func (c console) line(m mark, msg string) {
	fmt.Fprintln(c.w, m.style.Render(m.glyph)+" "+msg)
}

func (c console) success(format string, args ...any) {
	c.line(markOK, fmt.Sprintf(format, args...))
}

func (c console) failure(format string, args ...any) {
	c.line(markFail, fmt.Sprintf(format, args...))
}

func (c console) warn(format string, args ...any) {
	c.line(markWarn, styleWarn.Render(fmt.Sprintf(format, args...)))
}

func (c console) note(format string, args ...any) {
	c.line(markNote, fmt.Sprintf(format, args...))
}

// nothingToShow reports a graph that reduced to no nodes. It is not an
// error: the command draws nothing and succeeds.
func (c console) nothingToShow() {
	c.warn("Nothing to show: the graph has no valid nodes")
}

// detail prints an indented secondary line.
func (c console) detail(format string, args ...any) {
	fmt.Fprintln(c.w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (c console) file(path string) {
	fmt.Fprintln(c.w, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

func (c console) keyValue(key, value string) {
	fmt.Fprintln(c.w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// summary prints parts on one dotted line.
func (c console) summary(parts ...string) {
	rendered := make([]string, len(parts))
	for i, part := range parts {
		rendered[i] = styleDim.Render(part)
	}
	fmt.Fprintln(c.w, "  "+strings.Join(rendered, styleDim.Render(" · ")))
}

// nextStep suggests the command to run after this one.
func (c console) nextStep(description, command string) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, styleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// origin names where a result came from.
func origin(cached bool) string {
	if cached {
		return "cached"
	}
	return "fresh"
}

// plural formats a count with a naively pluralized noun.
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
