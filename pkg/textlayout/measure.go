package textlayout

import (
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
)

// Measurer reports the rendered width of a string in pixels.
type Measurer interface {
	Measure(s string) float64
}

// FaceMeasurer measures with a font face.
// A font.Face is not safe for concurrent use; create one per export.
type FaceMeasurer struct {
	Face font.Face
}

// Measure returns the advance width of s.
func (m FaceMeasurer) Measure(s string) float64 {
	return float64(font.MeasureString(m.Face, s)) / 64
}

// FixedMeasurer gives every grapheme cluster the same advance.
type FixedMeasurer struct {
	Advance float64
}

// Measure returns the cluster count of s times the advance.
func (m FixedMeasurer) Measure(s string) float64 {
	return float64(uniseg.GraphemeClusterCount(s)) * m.Advance
}

// MeasureFunc adapts a function to [Measurer].
type MeasureFunc func(s string) float64

// Measure calls f(s).
func (f MeasureFunc) Measure(s string) float64 { return f(s) }
