// Package pages draws paginated text onto raster pages.
//
// Every page is drawn on a fresh surface: white background, border frame,
// the title header, the page's lines and, for multi-page documents, a
// "page P / N" footer. Pages share nothing, so the caller decides ordering.
package pages

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/textlayout"
)

// Page colors.
const (
	BorderColor = "#CBD5E1"
	TitleColor  = "#111827"
	TextColor   = "#1F2937"
	FooterColor = "#6B7280"
)

// Faces holds the font faces for one export. A font.Face is not safe for
// concurrent use, so every export builds its own.
type Faces struct {
	Title  font.Face
	Body   font.Face
	Footer font.Face
}

// NewFaces builds faces sized for g.
func NewFaces(g textlayout.PageGeometry) (Faces, error) {
	title, err := fonts.Face(fonts.Bold, g.TitleSize)
	if err != nil {
		return Faces{}, err
	}
	body, err := fonts.Face(fonts.Regular, g.FontSize)
	if err != nil {
		return Faces{}, err
	}
	footer, err := fonts.Face(fonts.Regular, math.Max(g.FontSize*0.75, 8))
	if err != nil {
		return Faces{}, err
	}
	return Faces{Title: title, Body: body, Footer: footer}, nil
}

// Measurer returns a measurer matching the body face.
func (f Faces) Measurer() textlayout.Measurer {
	return textlayout.FaceMeasurer{Face: f.Body}
}

// Footer returns the footer text of p, or "" for single-page documents.
func Footer(p textlayout.Page) string {
	if p.Total <= 1 {
		return ""
	}
	return fmt.Sprintf("page %d / %d", p.Index, p.Total)
}

// Render draws page p of a document titled title.
func Render(g textlayout.PageGeometry, title string, p textlayout.Page, faces Faces) *image.RGBA {
	w, h := int(math.Ceil(g.Width)), int(math.Ceil(g.Height))
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	inset := g.Margin / 2
	dc.SetHexColor(BorderColor)
	dc.SetLineWidth(2)
	dc.DrawRectangle(inset, inset, g.Width-2*inset, g.Height-2*inset)
	dc.Stroke()

	if title != "" {
		dc.SetFontFace(faces.Title)
		dc.SetHexColor(TitleColor)
		dc.DrawStringAnchored(fit(title, g.ContentWidth(), faces.Title), g.Margin, g.Margin+g.HeaderHeight/2, 0, 0.5)
		dc.SetHexColor(BorderColor)
		dc.SetLineWidth(1)
		dc.DrawLine(g.Margin, g.Margin+g.HeaderHeight-1, g.Width-g.Margin, g.Margin+g.HeaderHeight-1)
		dc.Stroke()
	}

	dc.SetFontFace(faces.Body)
	dc.SetHexColor(TextColor)
	top := g.Margin + g.HeaderHeight
	for i, line := range p.Lines {
		dc.DrawStringAnchored(line, g.Margin, top+(float64(i)+0.5)*g.LineHeight, 0, 0.5)
	}

	if footer := Footer(p); footer != "" {
		dc.SetFontFace(faces.Footer)
		dc.SetHexColor(FooterColor)
		dc.DrawStringAnchored(footer, g.Width/2, g.Height-g.Margin-g.FooterHeight/2, 0.5, 0.5)
	}
	return dc.Image().(*image.RGBA)
}

// fit shortens s with an ellipsis until it measures at most width.
func fit(s string, width float64, face font.Face) string {
	m := textlayout.FaceMeasurer{Face: face}
	if m.Measure(s) <= width {
		return s
	}
	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	for n := len(clusters) - 1; n > 0; n-- {
		short := strings.Join(clusters[:n], "") + "…"
		if m.Measure(short) <= width {
			return short
		}
	}
	return "…"
}
