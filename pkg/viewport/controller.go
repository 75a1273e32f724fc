package viewport

// Controller holds the interactive transform of one view.
type Controller struct {
	t       Transform
	natural Size
	limits  Limits

	dragging   bool
	dragStart  Point
	dragOrigin Transform
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLimits sets the scale bounds. Invalid bounds are ignored.
func WithLimits(lo, hi float64) Option {
	return func(c *Controller) {
		if lo > 0 && hi >= lo {
			c.limits = Limits{Min: lo, Max: hi}
		}
	}
}

// WithTransform sets the initial transform.
func WithTransform(t Transform) Option {
	return func(c *Controller) { c.t = t }
}

// New returns a controller for a drawing of the given natural size. The
// transform starts at identity unless [WithTransform] is given; call
// [Controller.Fit] once the viewport size is known.
func New(natural Size, opts ...Option) *Controller {
	c := &Controller{t: Identity, natural: natural, limits: DefaultLimits()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.t }

// Natural returns the natural size of the drawing.
func (c *Controller) Natural() Size { return c.natural }

// Limits returns the scale bounds.
func (c *Controller) Limits() Limits { return c.limits }

// Dragging reports whether a drag is captured.
func (c *Controller) Dragging() bool { return c.dragging }

// Fit centers the drawing in viewport.
func (c *Controller) Fit(viewport Size) Transform {
	c.t = c.limits.Fit(viewport, c.natural)
	return c.t
}

// Reset re-fits the drawing and drops any captured drag.
func (c *Controller) Reset(viewport Size) Transform {
	c.dragging = false
	return c.Fit(viewport)
}

// SetNatural replaces the drawing size after a re-layout. The transform is
// kept when preserve is true, otherwise the drawing is fitted to viewport.
func (c *Controller) SetNatural(natural, viewport Size, preserve bool) Transform {
	c.natural = natural
	if !preserve {
		return c.Reset(viewport)
	}
	return c.t
}

// ZoomBy scales by factor keeping the content point under center fixed.
// It reports false and leaves the transform alone when the scale is already
// clamped at a bound in the requested direction.
func (c *Controller) ZoomBy(factor float64, center Point) bool {
	next, ok := c.limits.Zoom(c.t, factor, center)
	if ok {
		c.t = next
	}
	return ok
}

// Pan translates the offset. Content may leave the viewport entirely.
func (c *Controller) Pan(dx, dy float64) {
	c.t.OffsetX += dx
	c.t.OffsetY += dy
}

// DragStart captures the pointer at p.
func (c *Controller) DragStart(p Point) {
	c.dragging = true
	c.dragStart = p
	c.dragOrigin = c.t
}

// DragMove sets the offset to the drag origin plus the pointer travel.
// Moves without a captured drag are ignored.
func (c *Controller) DragMove(p Point) {
	if !c.dragging {
		return
	}
	c.t.OffsetX = c.dragOrigin.OffsetX + (p.X - c.dragStart.X)
	c.t.OffsetY = c.dragOrigin.OffsetY + (p.Y - c.dragStart.Y)
}

// DragEnd releases the pointer. There is no inertia.
func (c *Controller) DragEnd() {
	c.dragging = false
}
