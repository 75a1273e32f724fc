package viewport

import (
	"math"
	"math/rand"
	"testing"
)

const tol = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) <= tol }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestFitToView(t *testing.T) {
	tests := []struct {
		name     string
		viewport Size
		natural  Size
		want     Transform
	}{
		{
			name:     "WidthBound",
			viewport: Size{W: 800, H: 600},
			natural:  Size{W: 400, H: 100},
			want:     Transform{Scale: 1.9, OffsetX: 20, OffsetY: 205},
		},
		{
			name:     "HeightBound",
			viewport: Size{W: 800, H: 600},
			natural:  Size{W: 100, H: 600},
			want:     Transform{Scale: 0.95, OffsetX: 352.5, OffsetY: 15},
		},
		{
			name:     "ClampedMax",
			viewport: Size{W: 800, H: 600},
			natural:  Size{W: 10, H: 10},
			want:     Transform{Scale: 4, OffsetX: 380, OffsetY: 280},
		},
		{
			name:     "ClampedMin",
			viewport: Size{W: 100, H: 100},
			natural:  Size{W: 10000, H: 1000},
			want:     Transform{Scale: 0.2, OffsetX: -950, OffsetY: -50},
		},
		{
			name:     "ZeroNatural",
			viewport: Size{W: 800, H: 600},
			natural:  Size{},
			want:     Identity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitToView(tt.viewport, tt.natural)
			if !near(got.Scale, tt.want.Scale) || !near(got.OffsetX, tt.want.OffsetX) || !near(got.OffsetY, tt.want.OffsetY) {
				t.Errorf("FitToView() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestZoomAnchor(t *testing.T) {
	c := New(Size{W: 100, H: 100}, WithTransform(Transform{Scale: 1, OffsetX: 350, OffsetY: 250}))
	center := Point{X: 400, Y: 300}

	if got := c.Transform().ToContent(center); !nearPoint(got, Point{X: 50, Y: 50}) {
		t.Fatalf("ToContent(center) = %+v, want (50,50)", got)
	}
	if !c.ZoomBy(2, center) {
		t.Fatal("ZoomBy(2) = false, want true")
	}
	if got := c.Transform().Scale; got != 2 {
		t.Errorf("Scale = %v, want 2", got)
	}
	if got := c.Transform().ToScreen(Point{X: 50, Y: 50}); !nearPoint(got, center) {
		t.Errorf("ToScreen(50,50) = %+v, want %+v", got, center)
	}
}

// TestZoomAnchorInvariance checks that the content point under the zoom
// center stays there for any unclamped factor.
func TestZoomAnchorInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		start := Transform{
			Scale:   0.5 + rng.Float64()*1.5,
			OffsetX: rng.Float64()*2000 - 1000,
			OffsetY: rng.Float64()*2000 - 1000,
		}
		factor := 0.5 + rng.Float64()*1.5
		center := Point{X: rng.Float64() * 1920, Y: rng.Float64() * 1080}

		c := New(Size{W: 500, H: 500}, WithTransform(start))
		before := start.ToContent(center)
		if !c.ZoomBy(factor, center) {
			continue
		}
		if got := c.Transform().ToScreen(before); !nearPoint(got, center) {
			t.Fatalf("zoom %v at %+v from %+v: anchor moved to %+v", factor, center, start, got)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	c := New(Size{W: 100, H: 100}, WithTransform(Transform{Scale: 4}))
	if c.ZoomBy(1.5, Point{}) {
		t.Error("ZoomBy past max = true, want false")
	}
	if c.Transform().Scale != 4 {
		t.Errorf("Scale = %v, want 4", c.Transform().Scale)
	}

	c = New(Size{W: 100, H: 100}, WithTransform(Transform{Scale: 3}))
	if !c.ZoomBy(10, Point{X: 10, Y: 10}) {
		t.Fatal("ZoomBy into clamp = false, want true")
	}
	if c.Transform().Scale != 4 {
		t.Errorf("Scale = %v, want clamped 4", c.Transform().Scale)
	}

	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if c.ZoomBy(f, Point{}) {
			t.Errorf("ZoomBy(%v) = true, want false", f)
		}
	}
}

func TestWithLimits(t *testing.T) {
	c := New(Size{W: 10, H: 10}, WithLimits(0.5, 1))
	if got := c.Fit(Size{W: 1000, H: 1000}); got.Scale != 1 {
		t.Errorf("Fit() scale = %v, want 1", got.Scale)
	}
	c = New(Size{W: 10, H: 10}, WithLimits(2, 1))
	if c.Limits() != DefaultLimits() {
		t.Errorf("Limits() = %+v, want defaults for invalid bounds", c.Limits())
	}
}

func TestPan(t *testing.T) {
	c := New(Size{W: 100, H: 100})
	c.Pan(-5000, 30)
	c.Pan(10, -10)
	if got := c.Transform(); got.OffsetX != -4990 || got.OffsetY != 20 || got.Scale != 1 {
		t.Errorf("Transform() = %+v, want offset (-4990,20)", got)
	}
}

func TestDrag(t *testing.T) {
	c := New(Size{W: 100, H: 100}, WithTransform(Transform{Scale: 2, OffsetX: 10, OffsetY: 20}))

	c.DragMove(Point{X: 500, Y: 500})
	if got := c.Transform(); got.OffsetX != 10 || got.OffsetY != 20 {
		t.Fatalf("DragMove without drag changed offset to %+v", got)
	}

	c.DragStart(Point{X: 100, Y: 100})
	if !c.Dragging() {
		t.Fatal("Dragging() = false after DragStart")
	}
	c.DragMove(Point{X: 130, Y: 90})
	c.DragMove(Point{X: 150, Y: 80})
	if got := c.Transform(); got.OffsetX != 60 || got.OffsetY != 0 || got.Scale != 2 {
		t.Errorf("after moves Transform() = %+v, want offset (60,0)", got)
	}

	c.DragEnd()
	c.DragMove(Point{X: 0, Y: 0})
	if got := c.Transform(); got.OffsetX != 60 || got.OffsetY != 0 {
		t.Errorf("DragMove after DragEnd changed offset to %+v", got)
	}
}

func TestSetNatural(t *testing.T) {
	vp := Size{W: 800, H: 600}
	c := New(Size{W: 400, H: 300})
	c.Fit(vp)
	c.Pan(100, 100)
	kept := c.Transform()

	if got := c.SetNatural(Size{W: 800, H: 300}, vp, true); got != kept {
		t.Errorf("SetNatural(preserve) = %+v, want %+v", got, kept)
	}
	if got, want := c.SetNatural(Size{W: 800, H: 300}, vp, false), FitToView(vp, Size{W: 800, H: 300}); got != want {
		t.Errorf("SetNatural(reset) = %+v, want %+v", got, want)
	}
	if c.Natural() != (Size{W: 800, H: 300}) {
		t.Errorf("Natural() = %+v", c.Natural())
	}
}

func TestReset(t *testing.T) {
	vp := Size{W: 800, H: 600}
	c := New(Size{W: 400, H: 300})
	c.DragStart(Point{})
	c.ZoomBy(2, Point{X: 3, Y: 4})
	got := c.Reset(vp)
	if c.Dragging() {
		t.Error("Dragging() = true after Reset")
	}
	if want := FitToView(vp, Size{W: 400, H: 300}); got != want {
		t.Errorf("Reset() = %+v, want %+v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tr := Transform{Scale: 1.7, OffsetX: -33, OffsetY: 12.5}
	p := Point{X: 123.4, Y: -56.7}
	if got := tr.ToContent(tr.ToScreen(p)); !nearPoint(got, p) {
		t.Errorf("ToContent(ToScreen(p)) = %+v, want %+v", got, p)
	}
}
