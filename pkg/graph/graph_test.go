package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges int
		wantErr   bool
	}{
		{
			name:      "Simple",
			input:     `{"nodes":[{"id":"r","label":"Root"},{"id":"a","label":"A"}],"edges":[{"from":"r","to":"a"}]}`,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:      "EdgeLabel",
			input:     `{"nodes":[],"edges":[{"from":"r","to":"a","label":"uses"}]}`,
			wantNodes: 0,
			wantEdges: 1,
		},
		{
			name:      "MissingEdges",
			input:     `{"nodes":[{"id":"r","label":"Root"}]}`,
			wantNodes: 1,
		},
		{
			name:      "Degenerate",
			input:     `{"nodes":[{"id":"","label":""},{"id":"x","label":" "}],"edges":[{"from":"x","to":"x"}]}`,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:    "Malformed",
			input:   `{"nodes":[`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadGraph() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if g.NodeCount() != tt.wantNodes {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.wantNodes)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
		})
	}
}

func TestReadGraphYAML(t *testing.T) {
	input := `
nodes:
  - id: root
    label: Project
  - id: a
    label: Design
edges:
  - from: root
    to: a
    label: covers
`
	g, err := ReadGraphYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadGraphYAML() error = %v", err)
	}
	if len(g.Nodes) != 2 || g.Nodes[1].Label != "Design" {
		t.Errorf("Nodes = %+v, want root and a", g.Nodes)
	}
	if len(g.Edges) != 1 || g.Edges[0].Label != "covers" {
		t.Errorf("Edges = %+v, want one labeled edge", g.Edges)
	}
}

func TestReadGraphYAMLEmpty(t *testing.T) {
	g, err := ReadGraphYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadGraphYAML() error = %v", err)
	}
	if !g.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
}

func TestRoundTrip(t *testing.T) {
	orig := Graph{
		Nodes: []Node{{ID: "r", Label: "Root"}, {ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
		Edges: []Edge{{From: "r", To: "b"}, {From: "r", To: "a", Label: "first"}},
	}
	data, err := MarshalGraph(orig)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error = %v", err)
	}
	for i := range orig.Nodes {
		if got.Nodes[i] != orig.Nodes[i] {
			t.Errorf("Nodes[%d] = %+v, want %+v", i, got.Nodes[i], orig.Nodes[i])
		}
	}
	for i := range orig.Edges {
		if got.Edges[i] != orig.Edges[i] {
			t.Errorf("Edges[%d] = %+v, want %+v", i, got.Edges[i], orig.Edges[i])
		}
	}
}

func TestMarshalGraphEmpty(t *testing.T) {
	data, err := MarshalGraph(Graph{})
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`"nodes": []`)) || !bytes.Contains(data, []byte(`"edges": []`)) {
		t.Errorf("MarshalGraph(empty) = %s, want empty arrays", data)
	}
}

func TestReadGraphFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "map.json")
	if err := WriteGraphFile(Graph{Nodes: []Node{{ID: "r", Label: "Root"}}}, jsonPath); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	yamlPath := filepath.Join(dir, "map.yml")
	if err := os.WriteFile(yamlPath, []byte("nodes:\n  - id: r\n    label: Root\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		g, err := ReadGraphFile(path)
		if err != nil {
			t.Fatalf("ReadGraphFile(%s) error = %v", path, err)
		}
		if len(g.Nodes) != 1 || g.Nodes[0].Label != "Root" {
			t.Errorf("ReadGraphFile(%s) = %+v, want single Root node", path, g)
		}
	}

	if _, err := ReadGraphFile(badPath); err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("ReadGraphFile(bad) error = %v, want error naming the path", err)
	}
	if _, err := ReadGraphFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ReadGraphFile(missing) error = nil, want error")
	}
}
