// Package graph provides the input data model for mind-map diagrams.
//
// A [Graph] is a flat node-link description supplied by an untrusted producer
// (a user, a file, an HTTP client, a generator). It may contain duplicates,
// self-loops, dangling edges, cycles and nodes with several parents. This
// package performs no validation: it is a plain data contract. The tree
// reducer in pkg/tree turns any Graph into a well-formed rooted tree.
//
// # Wire Format
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "root", "label": "Project"}, {"id": "a", "label": "Design"}],
//	  "edges": [{"from": "root", "to": "a"}]
//	}
//
// The same shape is accepted as YAML. Edge labels are carried through but
// ignored by the layout.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("map.yaml")     // File → Graph (.json, .yaml, .yml)
//	g, _ := graph.ReadGraph(r)                  // JSON reader → Graph
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	graph.WriteGraphFile(g, "out.json")         // Graph → File
//
// # Concurrency
//
// Graph values are plain data; they are safe for concurrent reads.
package graph
