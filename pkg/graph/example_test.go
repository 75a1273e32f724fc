package graph_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/mindmap/pkg/graph"
)

func ExampleReadGraph() {
	jsonData := `{
		"nodes": [
			{"id": "root", "label": "Project"},
			{"id": "a", "label": "Design"}
		],
		"edges": [
			{"from": "root", "to": "a"}
		]
	}`

	g, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("First:", g.Nodes[0].Label)
	// Output:
	// Nodes: 2
	// Edges: 1
	// First: Project
}

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "r", Label: "Root"}, {ID: "a", Label: "A"}},
		Edges: []graph.Edge{{From: "r", To: "a"}},
	}

	if err := graph.WriteGraph(g, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "r",
	//       "label": "Root"
	//     },
	//     {
	//       "id": "a",
	//       "label": "A"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "r",
	//       "to": "a"
	//     }
	//   ]
	// }
}
