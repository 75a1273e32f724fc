package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/mindmap/pkg/fonts"
)

// defaultFontSize matches the SVG user agent default.
const defaultFontSize = 16.0

// svgText is a <text> element reduced to what the label overlay needs.
type svgText struct {
	X, Y   float64
	Size   float64
	Anchor float64 // 0 start, 0.5 middle, 1 end
	Bold   bool
	Fill   string
	Text   string
}

// parseText collects the <text> elements of an SVG document.
func parseText(svg []byte) ([]svgText, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	var out []svgText
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}
		var el struct {
			X      string `xml:"x,attr"`
			Y      string `xml:"y,attr"`
			Style  string `xml:"style,attr"`
			Size   string `xml:"font-size,attr"`
			Anchor string `xml:"text-anchor,attr"`
			Weight string `xml:"font-weight,attr"`
			Fill   string `xml:"fill,attr"`
			Body   string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&el, &start); err != nil {
			return nil, err
		}
		props := map[string]string{
			"font-size":   el.Size,
			"text-anchor": el.Anchor,
			"font-weight": el.Weight,
			"fill":        el.Fill,
		}
		for _, decl := range strings.Split(el.Style, ";") {
			k, v, ok := strings.Cut(decl, ":")
			if ok {
				props[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
		}

		t := svgText{
			X:    number(el.X, 0),
			Y:    number(el.Y, 0),
			Size: number(props["font-size"], defaultFontSize),
			Bold: props["font-weight"] == "bold" || number(props["font-weight"], 400) >= 600,
			Fill: props["fill"],
			Text: strings.TrimSpace(el.Body),
		}
		switch props["text-anchor"] {
		case "middle":
			t.Anchor = 0.5
		case "end":
			t.Anchor = 1
		}
		if t.Text != "" {
			out = append(out, t)
		}
	}
}

// number parses an SVG length, ignoring a px suffix.
func number(s string, def float64) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

// drawText draws labels in viewBox units scaled by scale. Faces are built at
// the scaled size because gg does not scale glyphs with its matrix.
func drawText(dc *gg.Context, labels []svgText, scale, originX, originY float64) error {
	faces := make(map[string]font.Face)
	for _, t := range labels {
		style := fonts.Regular
		if t.Bold {
			style = fonts.Bold
		}
		key := fmt.Sprintf("%s/%g", style, t.Size)
		face, ok := faces[key]
		if !ok {
			var err error
			if face, err = fonts.Face(style, t.Size*scale); err != nil {
				return err
			}
			faces[key] = face
		}
		dc.SetFontFace(face)
		if t.Fill == "" || t.Fill == "none" || !strings.HasPrefix(t.Fill, "#") {
			dc.SetRGB(0, 0, 0)
		} else {
			dc.SetHexColor(t.Fill)
		}
		dc.DrawStringAnchored(t.Text, (t.X-originX)*scale, (t.Y-originY)*scale, t.Anchor, 0)
	}
	return nil
}
