package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/export"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete reduce → layout → render pipeline with caching.
// It returns [ErrEmptyGraph] when nothing survives reduction.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	// Stages 1 and 2: Reduce and Layout
	layoutStart := time.Now()
	t, l, res, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.Reduction = res
	result.Layout = l
	result.Stats.TreeNodes = t.Len()
	result.Stats.LeafCount = l.LeafCount
	result.Stats.MaxDepth = l.MaxDepth
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", t.Len(),
		"leaves", l.LeafCount,
		"depth", l.MaxDepth,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo reduces g and lays out the tree, reusing a cached
// layout of an identical graph. Reduction always runs: it is cheap and the
// tree is needed by callers.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (*tree.Tree, *layout.Layout, tree.Result, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if err := ValidateVizType(opts.VizType); err != nil {
		return nil, nil, tree.Result{}, false, err
	}
	hooks := observability.Pipeline()

	reduceStart := time.Now()
	t, res, err := Reduce(g)
	hooks.OnReduce(ctx, t.Len(), res.OrphansAttached, time.Since(reduceStart))
	if err != nil {
		return nil, nil, res, false, err
	}
	r.Logger.Debug("reduced graph",
		"nodes", t.Len(),
		"dropped_nodes", res.DroppedNodes,
		"dropped_edges", res.DroppedEdges,
		"ignored_edges", res.IgnoredEdges,
		"orphans", res.OrphansAttached,
		"root_fallback", res.RootFallback)

	graphData, _ := graph.MarshalGraph(g)
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				return t, cached, res, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	start := time.Now()
	hooks.OnLayoutStart(ctx, t.Len())
	l, err := GenerateLayout(t, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, time.Since(start), err)
		return nil, nil, res, false, err
	}
	hooks.OnLayoutComplete(ctx, l.LeafCount, l.MaxDepth, time.Since(start), nil)

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		}
	}
	return t, l, res, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g graph.Graph, opts Options) (*tree.Tree, *layout.Layout, tree.Result, error) {
	t, l, res, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return t, l, res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if l == nil {
		return nil, false, ErrEmptyGraph
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts = make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// ExportDiagram lays out g and saves it as one PNG through saver.
func (r *Runner) ExportDiagram(ctx context.Context, g graph.Graph, prefix string, saver export.Saver, opts Options) (export.File, error) {
	r.applyLogger(&opts)
	_, l, _, err := r.Layout(ctx, g, opts)
	if err != nil {
		return export.File{}, err
	}
	e, err := opts.Exporter(saver)
	if err != nil {
		return export.File{}, err
	}
	return e.ExportDiagram(ctx, l, prefix)
}

// ExportText paginates text and saves one PNG per page through saver.
func (r *Runner) ExportText(ctx context.Context, title, text, prefix string, saver export.Saver, opts Options) ([]export.File, error) {
	r.applyLogger(&opts)
	e, err := opts.Exporter(saver)
	if err != nil {
		return nil, err
	}
	return e.ExportText(ctx, title, text, prefix)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
