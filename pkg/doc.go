// Package pkg provides the core libraries for mindmap diagrams.
//
// # Overview
//
// Mindmap turns a concept graph into a rooted tree, lays the tree out
// top-down at a natural pixel size, and exports it as a picture. Long
// notes that accompany a diagram are exported as paginated PNG pages.
//
// # Architecture
//
// The typical data flow:
//
//	Graph (nodes + edges, untrusted)
//	         ↓
//	    [tree] package (first parent wins, orphans attached to the root)
//	         ↓
//	    [layout] package (columns from leaves, orthogonal edges, palette)
//	         ↓
//	    [viewport] package (pan/zoom)   [render] + [export] packages (SVG, PNG pages)
//
// # Quick Start
//
// Reduce, lay out and export a diagram:
//
//	g, _ := graph.ReadGraphFile("idea.json")
//	t := tree.Reduce(g)
//	if t == nil {
//	    return // nothing to show
//	}
//	l := layout.Build(t)
//	e := export.New(export.WithSaver(export.DirSaver{Dir: "out"}))
//	f, _ := e.ExportDiagram(ctx, l, "idea") // out/idea-<ms>.png at 2x
//
// # Main Packages
//
// ## Diagram core
//
// [graph] - The untrusted input model and its JSON and YAML codecs.
//
// [tree] - Graph to tree reduction with counters for what was dropped.
//
// [layout] - Deterministic tree layout and label wrapping.
//
// [viewport] - Affine pan/zoom transform with anchor-preserving zoom and drag.
//
// ## Output
//
// [render/sink] - SVG, PNG, PDF and JSON serialization of a layout.
//
// [render] - Rasterizer backends (native and rsvg-convert) and label overlay.
//
// [render/nodelink] - Graphviz rendering of the same tree.
//
// [render/pages] - Drawing of paginated text pages.
//
// [textlayout] - Text measurement, wrapping and pagination.
//
// [markdown] - Markdown to plain text for page export.
//
// [export] - Timestamped PNG export of diagrams and text pages.
//
// ## Infrastructure
//
// [pipeline] - Reduce → layout → render orchestration shared by the CLI and
// the HTTP API, with caching and TOML configuration.
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [server] - JSON HTTP API over the pipeline.
//
// [observability] - Pipeline, cache and HTTP hooks with OpenTelemetry
// implementations.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./...               # All tests
//	go test ./pkg/tree/...      # Specific package
//	go test -run Example ./...  # Examples only
package pkg
