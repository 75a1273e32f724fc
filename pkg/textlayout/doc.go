// Package textlayout provides the measurement, wrapping and pagination
// primitives behind paginated text export.
//
// Text is wrapped at character granularity: each raw line is filled greedily
// with user-perceived characters (grapheme clusters) until the measured width
// of the accumulated string would exceed the content width. This is correct
// for scripts without word-break conventions and is a deliberate
// simplification for the rest.
//
// Pagination is pure arithmetic over a [PageGeometry]:
//
//	linesPerPage = floor(contentHeight / lineHeight)
//	totalPages   = ceil(wrappedLines / linesPerPage)
package textlayout
