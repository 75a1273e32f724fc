package viewport

import "math"

// Scale limits applied by default.
const (
	DefaultScaleMin = 0.2
	DefaultScaleMax = 4.0
)

// FitMargin under-fills the viewport so content never touches its border.
const FitMargin = 0.95

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Point is a position in either content or screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Transform maps content space to screen space.
type Transform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Identity is the 1:1 transform.
var Identity = Transform{Scale: 1}

// ToScreen maps a content point to screen space.
func (t Transform) ToScreen(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// ToContent maps a screen point back to content space.
func (t Transform) ToContent(p Point) Point {
	if t.Scale == 0 {
		return p
	}
	return Point{X: (p.X - t.OffsetX) / t.Scale, Y: (p.Y - t.OffsetY) / t.Scale}
}

// Limits bounds the scale of a transform.
type Limits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultLimits returns the default scale bounds.
func DefaultLimits() Limits {
	return Limits{Min: DefaultScaleMin, Max: DefaultScaleMax}
}

// Clamp bounds s to the limits.
func (l Limits) Clamp(s float64) float64 {
	return math.Min(math.Max(s, l.Min), l.Max)
}

// FitToView returns the transform that centers natural in viewport with a
// small margin, using the default limits.
func FitToView(viewport, natural Size) Transform {
	return DefaultLimits().Fit(viewport, natural)
}

// Fit returns the transform that centers natural in viewport:
// scale = clamp(min(vw/nw, vh/nh) * 0.95), offset centers the scaled content.
// A degenerate natural size yields the identity scale, centered.
func (l Limits) Fit(viewport, natural Size) Transform {
	if natural.W <= 0 || natural.H <= 0 {
		return Identity
	}
	s := l.Clamp(math.Min(viewport.W/natural.W, viewport.H/natural.H) * FitMargin)
	return Transform{
		Scale:   s,
		OffsetX: (viewport.W - natural.W*s) / 2,
		OffsetY: (viewport.H - natural.H*s) / 2,
	}
}

// Zoom returns t zoomed by factor around center so the content point under
// center stays under center. ok is false when the clamped scale does not
// change or factor is not positive.
func (l Limits) Zoom(t Transform, factor float64, center Point) (next Transform, ok bool) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return t, false
	}
	s := l.Clamp(t.Scale * factor)
	if s == t.Scale {
		return t, false
	}
	c := t.ToContent(center)
	return Transform{
		Scale:   s,
		OffsetX: center.X - c.X*s,
		OffsetY: center.Y - c.Y*s,
	}, true
}
