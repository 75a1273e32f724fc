package textlayout

import (
	"fmt"
	"math"
)

// PageGeometry describes a text page in pixels.
type PageGeometry struct {
	Width        float64 `toml:"width" json:"width"`
	Height       float64 `toml:"height" json:"height"`
	Margin       float64 `toml:"margin" json:"margin"`
	HeaderHeight float64 `toml:"header_height" json:"header_height"`
	FooterHeight float64 `toml:"footer_height" json:"footer_height"`
	LineHeight   float64 `toml:"line_height" json:"line_height"`
	FontSize     float64 `toml:"font_size" json:"font_size"`
	TitleSize    float64 `toml:"title_size" json:"title_size"`
}

// DefaultGeometry returns an A4-proportioned page at 150 DPI.
func DefaultGeometry() PageGeometry {
	return PageGeometry{
		Width:        1240,
		Height:       1754,
		Margin:       80,
		HeaderHeight: 120,
		FooterHeight: 80,
		LineHeight:   40,
		FontSize:     24,
		TitleSize:    36,
	}
}

// WithDefaults returns g with every non-positive field taken from
// [DefaultGeometry].
func (g PageGeometry) WithDefaults() PageGeometry {
	d := DefaultGeometry()
	if g.Width <= 0 {
		g.Width = d.Width
	}
	if g.Height <= 0 {
		g.Height = d.Height
	}
	if g.Margin <= 0 {
		g.Margin = d.Margin
	}
	if g.HeaderHeight <= 0 {
		g.HeaderHeight = d.HeaderHeight
	}
	if g.FooterHeight <= 0 {
		g.FooterHeight = d.FooterHeight
	}
	if g.LineHeight <= 0 {
		g.LineHeight = d.LineHeight
	}
	if g.FontSize <= 0 {
		g.FontSize = d.FontSize
	}
	if g.TitleSize <= 0 {
		g.TitleSize = d.TitleSize
	}
	return g
}

// ContentWidth is the page width inside the margins.
func (g PageGeometry) ContentWidth() float64 { return g.Width - 2*g.Margin }

// ContentHeight is the page height inside the margins, header and footer.
func (g PageGeometry) ContentHeight() float64 {
	return g.Height - 2*g.Margin - g.HeaderHeight - g.FooterHeight
}

// LinesPerPage returns floor(contentHeight / lineHeight), at least 1.
func (g PageGeometry) LinesPerPage() int {
	if g.LineHeight <= 0 {
		return 1
	}
	return max(1, int(math.Floor(g.ContentHeight()/g.LineHeight)))
}

// Validate reports geometries that leave no room for content.
func (g PageGeometry) Validate() error {
	if g.ContentWidth() <= 0 {
		return fmt.Errorf("page content width %.0f is not positive", g.ContentWidth())
	}
	if g.ContentHeight() < g.LineHeight {
		return fmt.Errorf("page content height %.0f is below one line (%.0f)", g.ContentHeight(), g.LineHeight)
	}
	return nil
}

// Page is one page of wrapped lines. Index is 1-based.
type Page struct {
	Index int      `json:"index"`
	Total int      `json:"total"`
	Lines []string `json:"lines"`
}

// Paginate partitions lines into pages of perPage lines. The last page
// holds the remainder. No lines yield a single empty page.
func Paginate(lines []string, perPage int) []Page {
	perPage = max(perPage, 1)
	total := max(1, (len(lines)+perPage-1)/perPage)
	pages := make([]Page, total)
	for i := range pages {
		lo := min(i*perPage, len(lines))
		hi := min(lo+perPage, len(lines))
		pages[i] = Page{Index: i + 1, Total: total, Lines: lines[lo:hi:hi]}
	}
	return pages
}
