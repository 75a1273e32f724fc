// Package fonts provides the bundled fonts used for raster output.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so labels and text pages render identically on every machine
// without a system font lookup. Parsed fonts are cached after first use;
// faces are created per call because a font.Face is not safe for
// concurrent use.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects one of the bundled fonts.
type Style int

const (
	Regular Style = iota
	Bold
	Mono
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Mono:
		return "mono"
	default:
		return "regular"
	}
}

// FontFamily is the CSS font-family name written into SVG output.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for external SVG renderers without the Go fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

type parsed struct {
	once sync.Once
	font *truetype.Font
	err  error
}

var cache = map[Style]*parsed{
	Regular: {},
	Bold:    {},
	Mono:    {},
}

func ttf(s Style) []byte {
	switch s {
	case Bold:
		return gobold.TTF
	case Mono:
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

// Font returns the parsed TrueType font for s.
// The result is cached after first computation.
func Font(s Style) (*truetype.Font, error) {
	p, ok := cache[s]
	if !ok {
		p = cache[Regular]
		s = Regular
	}
	p.once.Do(func() {
		p.font, p.err = truetype.Parse(ttf(s))
		if p.err != nil {
			p.err = fmt.Errorf("parse %s font: %w", s, p.err)
		}
	})
	return p.font, p.err
}

// Face returns a new face of s at size points (72 DPI, so points equal pixels).
func Face(s Style, size float64) (font.Face, error) {
	f, err := Font(s)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
