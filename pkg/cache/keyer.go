package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey addresses the layout of the graph with hash graphHash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses one rendered format of the layout with hash layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the layout options that change the computed layout.
type LayoutKeyOpts struct {
	NodeWidth    float64 `json:"node_width"`
	NodeHeight   float64 `json:"node_height"`
	GapX         float64 `json:"gap_x"`
	GapY         float64 `json:"gap_y"`
	PadX         float64 `json:"pad_x"`
	PadY         float64 `json:"pad_y"`
	CharsPerLine int     `json:"chars_per_line"`
	MaxLines     int     `json:"max_lines"`
	Palette      string  `json:"palette,omitempty"`
}

// ArtifactKeyOpts lists the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Background string  `json:"background,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Rasterizer string  `json:"rasterizer,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
