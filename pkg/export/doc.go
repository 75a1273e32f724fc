// Package export turns diagrams and text documents into PNG files.
//
// Two exports are supported:
//
//   - [Exporter.ExportDiagram] rasterizes a layout at its natural size, scaled
//     by 2 on an opaque white background, and saves one file named
//     <prefix>-<unixMillis>.png. The on-screen viewport plays no part.
//   - [Exporter.ExportText] strips markdown, wraps the text to the page's
//     content width, paginates it and saves one PNG per page. Every page
//     shares the timestamp of the export; multi-page documents append the
//     1-based page number (<prefix>-<unixMillis>-<n>.png) and carry a
//     "page P / N" footer.
//
// Pages are drawn one at a time on fresh surfaces. The first failing page
// aborts the export; pages already saved stay saved.
//
// Files are handed to a [Saver]. [DirSaver] writes them into a directory and
// [MemorySaver] keeps them in memory for tests and HTTP responses.
package export
