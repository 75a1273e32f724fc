// Package sink provides output format renderers for mind-map layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: the natural-size vector drawing
//   - PNG: 2× raster on an opaque white background
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: layout data for the visualize command and external tools
//
// Every renderer draws the layout at its natural size. Pan and zoom never
// reach a sink.
//
// Basic usage:
//
//	svg := sink.RenderSVG(l)
//	png, err := sink.RenderPNG(ctx, l, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(ctx, l)
package sink
