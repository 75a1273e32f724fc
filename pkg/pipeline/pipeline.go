// Package pipeline provides the diagram pipeline shared by the CLI and the
// HTTP API.
//
// The pipeline consists of three stages:
//
//  1. Reduce: turn the input graph into a tree (first parent wins)
//  2. Layout: compute node positions and edge routes
//  3. Render: serialize the layout to SVG, PNG, PDF, JSON or DOT
//
// Raster exports to named PNG files go through [Options.Exporter].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg", "png"}}
//	result, err := runner.Execute(ctx, g, opts)
//	if errors.Is(err, pipeline.ErrEmptyGraph) {
//	    return nil // nothing to show
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/export"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/sink"
	"github.com/matzehuels/mindmap/pkg/textlayout"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Visualization types.
const (
	// VizTypeTree draws the computed tree layout.
	VizTypeTree = "tree"

	// VizTypeNodelink lets Graphviz place the reduced tree.
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeTree

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTree:     true,
	VizTypeNodelink: true,
}

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// ErrEmptyGraph is returned when no node of the input graph survives
// reduction. Callers show nothing; it is not a failure of the input.
var ErrEmptyGraph = errors.New(errors.ErrCodeEmptyGraph, "graph has no valid nodes")

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// It decodes from a TOML config file and from JSON API requests.
type Options struct {
	// Layout options
	VizType string         `toml:"viz_type" json:"viz_type,omitempty"`
	Layout  layout.Options `toml:"layout" json:"layout,omitempty"`

	// Render options
	Formats    []string `toml:"formats" json:"formats,omitempty"`
	Background string   `toml:"background" json:"background,omitempty"`
	FontSize   float64  `toml:"font_size" json:"font_size,omitempty"`
	Scale      float64  `toml:"scale" json:"scale,omitempty"`
	Rasterizer string   `toml:"rasterizer" json:"rasterizer,omitempty"`
	Detailed   bool     `toml:"detailed" json:"detailed,omitempty"` // depth/column in nodelink labels

	// Text export options
	Page      textlayout.PageGeometry `toml:"page" json:"page,omitempty"`
	PlainText bool                    `toml:"plain_text" json:"plain_text,omitempty"` // skip markdown stripping

	// Cache options (CLI and server configuration only)
	Cache   CacheOptions `toml:"cache" json:"-"`
	Refresh bool         `toml:"-" json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// CacheOptions selects and configures the cache backend.
type CacheOptions struct {
	Backend string `toml:"backend"` // none, file or redis
	Dir     string `toml:"dir"`     // file backend directory (default: user cache dir)
	URL     string `toml:"url"`     // redis backend URL
	Prefix  string `toml:"prefix"`  // key prefix for shared backends
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the reduced tree.
	Tree *tree.Tree

	// Reduction reports what the reducer dropped and repaired.
	Reduction tree.Result

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Layout is the computed layout.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	TreeNodes  int
	LeafCount  int
	MaxDepth   int
	ReduceTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid viz_type: %q (must be one of: tree, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if err := o.ValidateForText(); err != nil {
		return err
	}
	if err := o.validateCache(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.FontSize <= 0 {
		o.FontSize = sink.DefaultFontSize
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Rasterizer == "" {
		o.Rasterizer = render.BackendNative
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	_, err := render.NewRasterizer(o.Rasterizer)
	return err
}

// ValidateForText validates and sets defaults for text export.
func (o *Options) ValidateForText() error {
	o.SetRenderDefaults()
	o.Page = o.Page.WithDefaults()
	if err := o.Page.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "page geometry")
	}
	return nil
}

func (o *Options) validateCache() error {
	switch o.Cache.Backend {
	case "", CacheNone, CacheFile:
		return nil
	case CacheRedis:
		if o.Cache.URL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.url is required for the redis backend")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: none, file, redis)", o.Cache.Backend)
	}
}

// IsNodelink returns true if this is a Graphviz visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// SVGOptions returns the SVG renderer options for these settings.
func (o *Options) SVGOptions() []sink.SVGOption {
	opts := []sink.SVGOption{sink.WithFontSize(o.FontSize)}
	if o.Background != "" {
		opts = append(opts, sink.WithBackground(o.Background))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	l := o.Layout.WithDefaults()
	var palette strings.Builder
	for _, c := range l.Palette {
		fmt.Fprintf(&palette, "%s/%s;", c.Stroke, c.Fill)
	}
	return cache.LayoutKeyOpts{
		NodeWidth:    l.NodeWidth,
		NodeHeight:   l.NodeHeight,
		GapX:         l.GapX,
		GapY:         l.GapY,
		PadX:         l.PadX,
		PadY:         l.PadY,
		CharsPerLine: l.LabelLineChars,
		MaxLines:     l.LabelMaxLines,
		Palette:      palette.String(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		FontSize:   o.FontSize,
		Detailed:   o.Detailed && o.IsNodelink(),
	}
	if o.IsNodelink() {
		k.Format = VizTypeNodelink + "/" + format
	}
	if format == FormatPNG {
		k.Scale = o.Scale
		k.Rasterizer = o.Rasterizer
	}
	return k
}

// Exporter builds a raster exporter for these settings that hands its files
// to saver.
func (o *Options) Exporter(saver export.Saver) (*export.Exporter, error) {
	if err := o.ValidateForText(); err != nil {
		return nil, err
	}
	rz, err := render.NewRasterizer(o.Rasterizer)
	if err != nil {
		return nil, err
	}
	return export.New(
		export.WithSaver(saver),
		export.WithRasterizer(rz),
		export.WithLogger(o.Logger),
		export.WithGeometry(o.Page),
		export.WithScale(o.Scale),
		export.WithSVGOptions(o.SVGOptions()...),
		export.WithMarkdown(!o.PlainText),
	), nil
}
