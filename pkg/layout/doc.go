// Package layout computes a deterministic, pixel-accurate drawing of a tree.
//
// [Build] assigns every node of a [tree.Tree] a column and a depth in a single
// depth-first post-order pass, converts them to pixel centers with fixed node,
// gap and padding constants, routes every parent→child edge as a four-point
// orthogonal connector and picks node colors from a palette by depth.
//
// # Geometry
//
// Leaves get consecutive integer columns in depth-first order. An internal
// node's column is the midpoint of the smallest and largest leaf column in
// its subtree. With node size NW×NH, gaps GX/GY and padding PX/PY:
//
//	cx = PX + NW/2 + column*(NW+GX)
//	cy = PY + NH/2 + depth*(NH+GY)
//	width  = 2*PX + leaves*NW + (leaves-1)*GX
//	height = 2*PY + (maxDepth+1)*NH + maxDepth*GY
//
// The canvas depends only on the tree's shape, never on label content. All
// geometry stays in float64; [Layout.Size] applies the single ceiling
// rounding used for pixel emission.
//
// The resulting [Layout] is the "natural size" drawing. It is never mutated
// by viewing or exporting and is safe for concurrent reads.
package layout
