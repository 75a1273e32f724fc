package textlayout

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/fonts"
)

func TestLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\n\r\nb", []string{"a", "", "b"}},
		{"trailing\n", []string{"trailing", ""}},
	}
	for _, tt := range tests {
		if got := Lines(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("Lines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	m := FixedMeasurer{Advance: 10}
	tests := []struct {
		name  string
		lines []string
		width float64
		want  []string
	}{
		{"Fits", []string{"hello"}, 100, []string{"hello"}},
		{"Exact", []string{"0123456789"}, 100, []string{"0123456789"}},
		{"Breaks", []string{"0123456789abc"}, 100, []string{"0123456789", "abc"}},
		{"EmptyLine", []string{"ab", "", "cd"}, 100, []string{"ab", "", "cd"}},
		{"CharGranular", []string{"hello world"}, 50, []string{"hello", " worl", "d"}},
		{"Oversized", []string{"abc"}, 5, []string{"a", "b", "c"}},
		{"Graphemes", []string{"👍🏽👍🏽👍🏽"}, 20, []string{"👍🏽👍🏽", "👍🏽"}},
		{"NoLines", nil, 100, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.lines, tt.width, m)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWrapWidthBound checks with a real font that no wrapped line is wider
// than the content width.
func TestWrapWidthBound(t *testing.T) {
	face, err := fonts.Face(fonts.Regular, 24)
	if err != nil {
		t.Fatal(err)
	}
	m := FaceMeasurer{Face: face}
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. 思维导图 ", 20)

	for _, width := range []float64{120, 300, 777} {
		for _, line := range Wrap([]string{text}, width, m) {
			if w := m.Measure(line); w > width {
				t.Errorf("width %v: line %q measures %v", width, line, w)
			}
		}
	}
}

// TestPaginationCompleteness checks that pages reproduce the wrapped lines
// exactly and the page count is the ceiling of lines over capacity.
func TestPaginationCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := FixedMeasurer{Advance: 1}
	for iter := 0; iter < 200; iter++ {
		var raw []string
		for i := 0; i < rng.Intn(40); i++ {
			raw = append(raw, strings.Repeat("x", rng.Intn(50)))
		}
		wrapped := Wrap(raw, float64(1+rng.Intn(20)), m)
		perPage := 1 + rng.Intn(10)
		pages := Paginate(wrapped, perPage)

		wantTotal := max(1, (len(wrapped)+perPage-1)/perPage)
		if len(pages) != wantTotal {
			t.Fatalf("iter %d: %d pages, want %d", iter, len(pages), wantTotal)
		}
		var joined []string
		for i, p := range pages {
			if p.Index != i+1 || p.Total != wantTotal {
				t.Fatalf("iter %d: page %d has Index %d Total %d", iter, i, p.Index, p.Total)
			}
			if len(p.Lines) > perPage {
				t.Fatalf("iter %d: page %d has %d lines, capacity %d", iter, i, len(p.Lines), perPage)
			}
			joined = append(joined, p.Lines...)
		}
		if !slices.Equal(joined, wrapped) {
			t.Fatalf("iter %d: pages do not reproduce wrapped lines", iter)
		}
		if strings.Join(joined, "") != strings.Join(raw, "") {
			t.Fatalf("iter %d: characters changed by wrapping", iter)
		}
	}
}

func TestPaginateSeven(t *testing.T) {
	// Content width fits 10 characters; capacity 3 lines.
	g := PageGeometry{Width: 120, Height: 150, Margin: 10, HeaderHeight: 20, FooterHeight: 10, LineHeight: 30}
	if got := g.ContentWidth(); got != 100 {
		t.Fatalf("ContentWidth() = %v, want 100", got)
	}
	if got := g.LinesPerPage(); got != 3 {
		t.Fatalf("LinesPerPage() = %d, want 3", got)
	}

	text := strings.Repeat("abcdefghij", 7)
	wrapped := Wrap(Lines(text), g.ContentWidth(), FixedMeasurer{Advance: 10})
	if len(wrapped) != 7 {
		t.Fatalf("len(wrapped) = %d, want 7", len(wrapped))
	}
	pages := Paginate(wrapped, g.LinesPerPage())
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}
	if n := len(pages[2].Lines); n != 1 {
		t.Errorf("last page has %d lines, want 1", n)
	}
}

func TestPaginateEmpty(t *testing.T) {
	pages := Paginate(nil, 5)
	if len(pages) != 1 || pages[0].Total != 1 || len(pages[0].Lines) != 0 {
		t.Errorf("Paginate(nil) = %+v, want one empty page", pages)
	}
	if pages := Paginate([]string{"a", "b"}, 0); len(pages) != 2 {
		t.Errorf("Paginate(perPage 0) = %d pages, want 2", len(pages))
	}
}

func TestPageGeometry(t *testing.T) {
	g := DefaultGeometry()
	if got := g.ContentWidth(); got != 1080 {
		t.Errorf("ContentWidth() = %v, want 1080", got)
	}
	if got := g.ContentHeight(); got != 1394 {
		t.Errorf("ContentHeight() = %v, want 1394", got)
	}
	if got := g.LinesPerPage(); got != 34 {
		t.Errorf("LinesPerPage() = %d, want 34", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := PageGeometry{Width: 100, Height: 100, Margin: 60, LineHeight: 10}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() error = nil, want error for negative content")
	}
	if got := bad.LinesPerPage(); got != 1 {
		t.Errorf("LinesPerPage() = %d, want minimum 1", got)
	}

	if got := (PageGeometry{Height: 400}).WithDefaults(); got.Width != 1240 || got.Height != 400 || got.Margin != 80 {
		t.Errorf("WithDefaults() = %+v, want default width and margin", got)
	}
}

func TestMeasureFunc(t *testing.T) {
	m := MeasureFunc(func(s string) float64 { return float64(len(s)) })
	if got := Wrap([]string{"abcd"}, 2, m); !slices.Equal(got, []string{"ab", "cd"}) {
		t.Errorf("Wrap() = %q, want [ab cd]", got)
	}
}
