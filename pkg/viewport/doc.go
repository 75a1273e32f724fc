// Package viewport implements pan and zoom over a natural-size drawing.
//
// A viewport is an affine map from content space (the layout's natural-size
// pixels) to screen space: screen = content*Scale + Offset. The drawing
// itself is never touched; only the [Transform] changes.
//
// [Controller] holds the transform for one interactive view and applies the
// three primitive pointer callbacks (drag start, move, end) plus discrete
// zoom triggers. It is meant to be driven from a single goroutine (an event
// loop) and is not safe for concurrent mutation.
package viewport
