package layout

// Default geometry constants, in pixels.
const (
	DefaultNodeWidth  = 180.0
	DefaultNodeHeight = 56.0
	DefaultGapX       = 28.0
	DefaultGapY       = 64.0
	DefaultPadX       = 32.0
	DefaultPadY       = 32.0
)

// Default label wrapping limits.
const (
	DefaultLabelLineChars = 18
	DefaultLabelMaxLines  = 2
)

// Ellipsis marks a truncated label.
const Ellipsis = "…"

// Color is a stroke/fill pair in any CSS color syntax understood by the
// renderers (hex is used throughout).
type Color struct {
	Stroke string `json:"stroke"`
	Fill   string `json:"fill"`
}

// Palette is an ordered list of colors indexed by depth modulo its length.
type Palette []Color

// DefaultPalette is the palette used when none is configured.
var DefaultPalette = Palette{
	{Stroke: "#4F46E5", Fill: "#EEF2FF"},
	{Stroke: "#0891B2", Fill: "#ECFEFF"},
	{Stroke: "#059669", Fill: "#ECFDF5"},
	{Stroke: "#D97706", Fill: "#FFFBEB"},
	{Stroke: "#DC2626", Fill: "#FEF2F2"},
	{Stroke: "#7C3AED", Fill: "#F5F3FF"},
}

// At returns the color for depth. An empty palette falls back to
// [DefaultPalette].
func (p Palette) At(depth int) Color {
	if len(p) == 0 {
		p = DefaultPalette
	}
	if depth < 0 {
		depth = -depth
	}
	return p[depth%len(p)]
}

// Options holds the fixed constants of a layout.
// The zero value of any field means "use the default"; see [Options.WithDefaults].
type Options struct {
	NodeWidth      float64 `toml:"node_width" json:"node_width,omitempty"`
	NodeHeight     float64 `toml:"node_height" json:"node_height,omitempty"`
	GapX           float64 `toml:"gap_x" json:"gap_x,omitempty"`
	GapY           float64 `toml:"gap_y" json:"gap_y,omitempty"`
	PadX           float64 `toml:"pad_x" json:"pad_x,omitempty"`
	PadY           float64 `toml:"pad_y" json:"pad_y,omitempty"`
	LabelLineChars int     `toml:"label_line_chars" json:"label_line_chars,omitempty"`
	LabelMaxLines  int     `toml:"label_max_lines" json:"label_max_lines,omitempty"`
	Palette        Palette `toml:"palette" json:"palette,omitempty"`
}

// DefaultOptions returns the default layout constants.
func DefaultOptions() Options {
	return Options{
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		GapX:           DefaultGapX,
		GapY:           DefaultGapY,
		PadX:           DefaultPadX,
		PadY:           DefaultPadY,
		LabelLineChars: DefaultLabelLineChars,
		LabelMaxLines:  DefaultLabelMaxLines,
		Palette:        DefaultPalette,
	}
}

// WithDefaults returns o with every unset field replaced by its default.
// A zero field counts as unset, so the zero Options is the default layout.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.GapX == 0 {
		o.GapX = d.GapX
	}
	if o.GapY == 0 {
		o.GapY = d.GapY
	}
	if o.PadX == 0 {
		o.PadX = d.PadX
	}
	if o.PadY == 0 {
		o.PadY = d.PadY
	}
	return o.sanitize()
}

// sanitize replaces values no layout can use: non-positive node sizes and
// label limits, negative gaps and padding, and an empty palette. Zero gaps
// and padding are kept.
func (o Options) sanitize() Options {
	d := DefaultOptions()
	if o.NodeWidth <= 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.GapX < 0 {
		o.GapX = d.GapX
	}
	if o.GapY < 0 {
		o.GapY = d.GapY
	}
	if o.PadX < 0 {
		o.PadX = d.PadX
	}
	if o.PadY < 0 {
		o.PadY = d.PadY
	}
	if o.LabelLineChars <= 0 {
		o.LabelLineChars = d.LabelLineChars
	}
	if o.LabelMaxLines <= 0 {
		o.LabelMaxLines = d.LabelMaxLines
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	return o
}

// Option configures [Build].
type Option func(*Options)

// WithOptions replaces all constants at once. Zero fields keep their
// defaults; use [WithGap] or [WithPadding] for an exact zero.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o.WithDefaults() }
}

// WithNodeSize sets the node footprint.
func WithNodeSize(w, h float64) Option {
	return func(o *Options) { o.NodeWidth, o.NodeHeight = w, h }
}

// WithGap sets the horizontal and vertical gaps between node footprints.
// Zero is kept; negative values fall back to the defaults.
func WithGap(x, y float64) Option {
	return func(o *Options) { o.GapX, o.GapY = x, y }
}

// WithPadding sets the canvas padding around the outermost nodes.
// Zero is kept; negative values fall back to the defaults.
func WithPadding(x, y float64) Option {
	return func(o *Options) { o.PadX, o.PadY = x, y }
}

// WithPalette sets the depth palette.
func WithPalette(p Palette) Option {
	return func(o *Options) { o.Palette = p }
}

// WithLabelLimit sets the characters per label line and the maximum number
// of label lines.
func WithLabelLimit(chars, lines int) Option {
	return func(o *Options) { o.LabelLineChars, o.LabelMaxLines = chars, lines }
}
