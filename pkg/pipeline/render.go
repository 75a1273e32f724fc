package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	if l == nil {
		return nil, ErrEmptyGraph
	}
	if opts.IsNodelink() {
		return renderNodelink(ctx, l, opts)
	}
	return renderTree(ctx, l, opts)
}

// renderTree draws the computed layout.
func renderTree(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	rz, err := render.NewRasterizer(opts.Rasterizer)
	if err != nil {
		return nil, err
	}
	svgOpts := opts.SVGOptions()
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l,
				sink.WithPNGSVGOptions(svgOpts...),
				sink.WithScale(opts.Scale),
				sink.WithRasterizer(rz))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink lets Graphviz place the tree and renders its output.
func renderNodelink(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	rz, err := render.NewRasterizer(opts.Rasterizer)
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, rz, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
