// Package render turns mind-map drawings into vector and raster output.
//
// # Overview
//
// The diagram travels as SVG: [sink.RenderSVG] serializes a layout into a
// self-describing SVG document, and a [Rasterizer] decodes that document into
// a raster surface at a scale factor. This package provides:
//
//   - [Native]: in-process rasterization (oksvg/rasterx shapes, gg text)
//   - [RSVG]: rasterization through the external rsvg-convert tool
//   - [Flatten]: composite a surface over an opaque background
//   - [EncodePNG]: PNG encoding with coded errors
//   - [ToPDF]: vector PDF through rsvg-convert
//
// Typical flow:
//
//	svg := sink.RenderSVG(l)
//	img, err := render.Native{}.Rasterize(ctx, svg, 2.0)
//	data, err := render.EncodePNG(render.Flatten(img, color.White))
//
// # Subpackages
//
//   - [sink]: SVG, PNG, PDF and JSON output for layouts
//   - [nodelink]: Graphviz rendering of the reduced tree
//   - [pages]: raster pages for paginated text export
//
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
// [pages]: github.com/matzehuels/mindmap/pkg/render/pages
package render
