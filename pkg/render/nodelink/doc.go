// Package nodelink renders mind-map layouts through Graphviz.
//
// # Overview
//
// This package is an alternative to the native drawing in [sink]: the
// reduced tree is handed to Graphviz, which computes its own positions while
// keeping the layout's wrapped labels, depth colors and child order.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For raster or PDF output:
//
//	png, err := nodelink.RenderPNG(ctx, dot, render.Native{}, 2.0)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
//
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
package nodelink
