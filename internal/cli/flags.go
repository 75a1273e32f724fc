package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/sink"
	"github.com/matzehuels/mindmap/pkg/textlayout"
)

// Flag values only override the config file when set explicitly, so every
// apply method checks Changed before copying.

// cacheFlags control how a command uses the cache.
type cacheFlags struct {
	noCache bool
	refresh bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

func (f *cacheFlags) apply(o *pipeline.Options) {
	o.Refresh = f.refresh
}

// layoutFlags override the layout constants.
type layoutFlags struct {
	vizType    string
	nodeWidth  float64
	nodeHeight float64
	gapX       float64
	gapY       float64
	labelChars int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	d := layout.DefaultOptions()
	fs := cmd.Flags()
	fs.StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: tree (default), nodelink")
	fs.Float64Var(&f.nodeWidth, "node-width", d.NodeWidth, "node box width")
	fs.Float64Var(&f.nodeHeight, "node-height", d.NodeHeight, "node box height")
	fs.Float64Var(&f.gapX, "gap-x", d.GapX, "horizontal gap between sibling columns")
	fs.Float64Var(&f.gapY, "gap-y", d.GapY, "vertical gap between depth rows")
	fs.IntVar(&f.labelChars, "label-chars", d.LabelLineChars, "characters per label line")
}

func (f *layoutFlags) apply(cmd *cobra.Command, o *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("type") {
		o.VizType = f.vizType
	}
	if fs.Changed("node-width") {
		o.Layout.NodeWidth = f.nodeWidth
	}
	if fs.Changed("node-height") {
		o.Layout.NodeHeight = f.nodeHeight
	}
	if fs.Changed("gap-x") {
		o.Layout.GapX = f.gapX
	}
	if fs.Changed("gap-y") {
		o.Layout.GapY = f.gapY
	}
	if fs.Changed("label-chars") {
		o.Layout.LabelLineChars = f.labelChars
	}
}

// renderFlags override output formats and raster settings.
type renderFlags struct {
	formats    string
	background string
	fontSize   float64
	scale      float64
	rasterizer string
	detailed   bool
}

func (f *renderFlags) register(cmd *cobra.Command, withFormats bool) {
	fs := cmd.Flags()
	if withFormats {
		fs.StringVarP(&f.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json, dot (comma-separated)")
	}
	fs.StringVar(&f.background, "background", "", "SVG background color (default: transparent)")
	fs.Float64Var(&f.fontSize, "font-size", sink.DefaultFontSize, "label font size")
	fs.Float64Var(&f.scale, "scale", render.DefaultScale, "PNG scale factor")
	fs.StringVar(&f.rasterizer, "rasterizer", render.BackendNative, "PNG backend: native, rsvg")
	fs.BoolVar(&f.detailed, "detailed", false, "show depth and column in nodelink labels")
}

func (f *renderFlags) apply(cmd *cobra.Command, o *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("format") {
		o.Formats = pipeline.ParseFormats(f.formats)
	}
	if fs.Changed("background") {
		o.Background = f.background
	}
	if fs.Changed("font-size") {
		o.FontSize = f.fontSize
	}
	if fs.Changed("scale") {
		o.Scale = f.scale
	}
	if fs.Changed("rasterizer") {
		o.Rasterizer = f.rasterizer
	}
	if fs.Changed("detailed") {
		o.Detailed = f.detailed
	}
}

// pageFlags override the text page geometry.
type pageFlags struct {
	width      float64
	height     float64
	lineHeight float64
	plain      bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	d := textlayout.DefaultGeometry()
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "page-width", d.Width, "page width in pixels")
	fs.Float64Var(&f.height, "page-height", d.Height, "page height in pixels")
	fs.Float64Var(&f.lineHeight, "line-height", d.LineHeight, "line height in pixels")
	fs.BoolVar(&f.plain, "plain", false, "treat input as plain text instead of markdown")
}

func (f *pageFlags) apply(cmd *cobra.Command, o *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("page-width") {
		o.Page.Width = f.width
	}
	if fs.Changed("page-height") {
		o.Page.Height = f.height
	}
	if fs.Changed("line-height") {
		o.Page.LineHeight = f.lineHeight
	}
	if fs.Changed("plain") {
		o.PlainText = f.plain
	}
}
