// Package tree reduces an arbitrary [graph.Graph] into a rooted, acyclic tree.
//
// Mind-map graphs come from untrusted producers and may contain duplicates,
// self-loops, dangling edges, cycles, nodes with several parents and nodes
// that are not connected to anything. [Reduce] never fails on such input:
// it always degrades to "everything under one root".
//
// # Reduction Rules
//
//  1. Nodes with a blank id or label are dropped. Duplicate ids keep the
//     label of the last occurrence and the position of the first.
//  2. Edges that loop on one node or reference a dropped node are discarded.
//  3. Edges are scanned in input order. The first edge targeting a node
//     assigns its parent (first-parent-wins); later edges into the same
//     node are ignored.
//  4. The root is the first node without a parent, or the first surviving
//     node when every node has one (a pure cycle). In that case the root's
//     own parent link is cut.
//  5. Nodes not reachable from the root are attached as its direct children,
//     in input order, until every node is reachable.
//
// The resulting [Tree] is immutable and safe for concurrent reads.
package tree
