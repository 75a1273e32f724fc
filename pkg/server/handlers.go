package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/export"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/tree"
	"github.com/matzehuels/mindmap/pkg/viewport"
)

// DefaultPrefix names exported files when the request gives no prefix.
const DefaultPrefix = "mindmap"

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

type treeResponse struct {
	Tree  *tree.Tree  `json:"tree"`
	Stats tree.Result `json:"stats"`
}

type textRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Prefix string `json:"prefix"`
}

type textResponse struct {
	Pages []export.File `json:"pages"`
}

type fitRequest struct {
	Natural  viewport.Size    `json:"natural"`
	Viewport viewport.Size    `json:"viewport"`
	Limits   *viewport.Limits `json:"limits,omitempty"`
}

type zoomRequest struct {
	Transform viewport.Transform `json:"transform"`
	Factor    float64            `json:"factor"`
	Focus     viewport.Point     `json:"focus"`
	Limits    *viewport.Limits   `json:"limits,omitempty"`
}

type zoomResponse struct {
	Transform viewport.Transform `json:"transform"`
	Changed   bool               `json:"changed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	if err := decode(w, r, &g); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, res, err := pipeline.Reduce(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, treeResponse{Tree: t, Stats: res})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	if err := decode(w, r, &g); err != nil {
		s.writeError(w, r, err)
		return
	}
	_, l, _, err := s.runner.Layout(r.Context(), g, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := layout.Marshal(l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	_, _ = w.Write(data)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	opts, err := s.diagramOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var g graph.Graph
	if err := decode(w, r, &g); err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]

	_, l, _, err := s.runner.Layout(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == pipeline.FormatPNG && !opts.IsNodelink() {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = DefaultPrefix
		}
		e, err := opts.Exporter(&export.MemorySaver{})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		f, err := e.ExportDiagram(r.Context(), l, prefix)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", f.Name))
		w.Header().Set("Content-Type", contentTypes[format])
		_, _ = w.Write(f.Data)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(artifacts[format])
}

// diagramOptions applies the query parameters to the server's options.
func (s *Server) diagramOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.opts
	opts.Formats = []string{pipeline.FormatSVG}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	if v := q.Get("viz"); v != "" {
		if err := pipeline.ValidateVizType(v); err != nil {
			return opts, err
		}
		opts.VizType = v
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale: %q", v)
		}
		if err := errors.ValidateScale(scale); err != nil {
			return opts, err
		}
		opts.Scale = scale
	}
	return opts, nil
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Prefix == "" {
		req.Prefix = DefaultPrefix
	}
	files, err := s.runner.ExportText(r.Context(), req.Title, req.Text, req.Prefix, &export.MemorySaver{}, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Pages: files})
}

func (s *Server) handleViewportFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	limits, err := limitsOrDefault(req.Limits)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, limits.Fit(req.Viewport, req.Natural))
}

func (s *Server) handleViewportZoom(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	limits, err := limitsOrDefault(req.Limits)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Transform.Scale <= 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "transform scale must be positive"))
		return
	}
	next, changed := limits.Zoom(req.Transform, req.Factor, req.Focus)
	writeJSON(w, http.StatusOK, zoomResponse{Transform: next, Changed: changed})
}

func limitsOrDefault(l *viewport.Limits) (viewport.Limits, error) {
	if l == nil {
		return viewport.DefaultLimits(), nil
	}
	if l.Min <= 0 || l.Max < l.Min {
		return viewport.Limits{}, errors.New(errors.ErrCodeInvalidInput, "invalid scale limits [%g, %g]", l.Min, l.Max)
	}
	return *l, nil
}
