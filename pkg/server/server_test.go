package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/textlayout"
	"github.com/matzehuels/mindmap/pkg/viewport"
)

const sampleGraph = `{
  "nodes": [
    {"id": "a", "label": "Topic"},
    {"id": "b", "label": "Sub1"},
    {"id": "c", "label": "Sub2"}
  ],
  "edges": [
    {"from": "a", "to": "b"},
    {"from": "a", "to": "c"}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(nil, pipeline.Options{}, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)
	const id = "3f8e3c1e-6a8b-4c1e-9f0a-1b2c3d4e5f60"

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed request id should be replaced, got %q", got)
	}
}

func TestTreeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/tree", `{
		"nodes": [{"id": "a", "label": "A"}, {"id": "b", "label": "B"}, {"id": "c", "label": "C"}],
		"edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "a"}]
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Tree struct {
			Root  string `json:"root"`
			Nodes []struct {
				ID       string   `json:"id"`
				Children []string `json:"children"`
			} `json:"nodes"`
		} `json:"tree"`
		Stats struct {
			OrphansAttached int  `json:"orphans_attached"`
			RootFallback    bool `json:"root_fallback"`
		} `json:"stats"`
	}
	decodeBody(t, resp, &body)

	// c has no parent and becomes root; a and b are attached to it.
	if body.Tree.Root != "c" {
		t.Errorf("root = %q, want c", body.Tree.Root)
	}
	if len(body.Tree.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(body.Tree.Nodes))
	}
	if body.Stats.RootFallback {
		t.Error("root_fallback should be false")
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/layout", sampleGraph)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	l, err := layout.Unmarshal(data)
	if err != nil {
		t.Fatalf("layout does not decode: %v", err)
	}
	if l.Width != 452 || l.Height != 240 {
		t.Errorf("canvas = %vx%v, want 452x240", l.Width, l.Height)
	}
}

func TestDiagramEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<?xml"},
		{"?format=svg", "image/svg+xml", "<?xml"},
		{"?format=json", "application/json", "{"},
		{"?format=dot", "text/vnd.graphviz; charset=utf-8", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, srv, "/v1/diagram"+tt.query, sampleGraph)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("content type = %q, want %q", got, tt.contentType)
			}
			data, _ := io.ReadAll(resp.Body)
			if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(tt.prefix)) {
				t.Errorf("body starts with %.20q, want %q", data, tt.prefix)
			}
		})
	}
}

func TestDiagramEndpointPNG(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/diagram?format=png&prefix=notes", sampleGraph)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, `filename="notes-`) || !strings.Contains(cd, `.png"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 904 || b.Dy() != 480 {
		t.Errorf("size = %dx%d, want 904x480", b.Dx(), b.Dy())
	}
}

func TestDiagramEndpointErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad format", "/v1/diagram?format=gif", sampleGraph, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad viz", "/v1/diagram?viz=tower", sampleGraph, http.StatusBadRequest, "INVALID_CONFIG"},
		{"bad scale", "/v1/diagram?format=png&scale=0", sampleGraph, http.StatusBadRequest, "INVALID_CONFIG"},
		{"bad prefix", "/v1/diagram?format=png&prefix=../x", sampleGraph, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad json", "/v1/diagram", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/diagram", `{"vertices": []}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"empty graph", "/v1/diagram", `{"nodes": [], "edges": []}`, http.StatusUnprocessableEntity, "EMPTY_GRAPH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorResponse
			decodeBody(t, resp, &body)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Error)
			}
			if body.RequestID == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestUnsupportedContentType(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/v1/tree", "text/plain", strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestTextEndpoint(t *testing.T) {
	opts := pipeline.Options{Page: textlayout.PageGeometry{
		Width: 200, Height: 200, Margin: 10, HeaderHeight: 20, FooterHeight: 20, LineHeight: 20,
		FontSize: 12, TitleSize: 14,
	}}
	srv := httptest.NewServer(New(nil, opts, nil).Handler())
	defer srv.Close()

	// 10 short lines on 6-line pages give two pages.
	text := strings.Repeat("line\n\n", 5)
	body, _ := json.Marshal(textRequest{Title: "Notes", Text: strings.TrimSpace(text), Prefix: "notes"})
	resp := post(t, srv, "/v1/text", string(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Pages []struct {
			Name  string `json:"name"`
			Page  int    `json:"page"`
			Total int    `json:"total"`
			Data  []byte `json:"data"`
		} `json:"pages"`
	}
	decodeBody(t, resp, &out)
	if len(out.Pages) < 2 {
		t.Fatalf("pages = %d, want at least 2", len(out.Pages))
	}
	for i, p := range out.Pages {
		if p.Page != i+1 || p.Total != len(out.Pages) {
			t.Errorf("page %d = %d/%d", i, p.Page, p.Total)
		}
		if !strings.HasPrefix(p.Name, "notes-") || !strings.HasSuffix(p.Name, "-"+strconv.Itoa(i+1)+".png") {
			t.Errorf("page %d name = %q", i, p.Name)
		}
		if _, err := png.Decode(bytes.NewReader(p.Data)); err != nil {
			t.Errorf("page %d is not a PNG: %v", i, err)
		}
	}
}

func TestViewportFitEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/viewport/fit", `{"natural": {"w": 400, "h": 200}, "viewport": {"w": 800, "h": 600}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var tr viewport.Transform
	decodeBody(t, resp, &tr)
	if math.Abs(tr.Scale-1.9) > 1e-9 {
		t.Errorf("scale = %v, want 1.9", tr.Scale)
	}
	if math.Abs(tr.OffsetX-20) > 1e-9 || math.Abs(tr.OffsetY-110) > 1e-9 {
		t.Errorf("offset = (%v, %v), want (20, 110)", tr.OffsetX, tr.OffsetY)
	}
}

func TestViewportZoomEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/viewport/zoom", `{
		"transform": {"scale": 1, "offset_x": 350, "offset_y": 250},
		"factor": 2,
		"focus": {"x": 400, "y": 300}
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out zoomResponse
	decodeBody(t, resp, &out)
	if !out.Changed || out.Transform.Scale != 2 {
		t.Errorf("zoom = %+v", out)
	}
	// Content point (50, 50) stays under the focus.
	if p := out.Transform.ToScreen(viewport.Point{X: 50, Y: 50}); p.X != 400 || p.Y != 300 {
		t.Errorf("focus moved to %+v", p)
	}

	resp = post(t, srv, "/v1/viewport/zoom", `{"transform": {"scale": 4}, "factor": 2, "focus": {"x": 0, "y": 0}}`)
	decodeBody(t, resp, &out)
	if out.Changed {
		t.Error("zoom past the maximum should not change the transform")
	}

	resp = post(t, srv, "/v1/viewport/zoom", `{"transform": {"scale": 1}, "factor": 2, "limits": {"min": 2, "max": 1}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid limits status = %d, want 400", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(pipeline.ErrEmptyGraph); got != http.StatusUnprocessableEntity {
		t.Errorf("empty graph status = %d", got)
	}
	if got := statusFor(io.ErrUnexpectedEOF); got != http.StatusInternalServerError {
		t.Errorf("plain error status = %d", got)
	}
}
