package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/observability"
)

// logHooks reports pipeline stages and cache traffic at debug level.
type logHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

// installLogHooks routes pipeline and cache events to the CLI logger.
func (c *CLI) installLogHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnReduce(_ context.Context, nodes, orphans int, d time.Duration) {
	h.logger.Debug("reduce", "nodes", nodes, "orphans", orphans, "duration", d)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, leaves, depth int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "error", err)
		return
	}
	h.logger.Debug("layout", "leaves", leaves, "depth", depth, "duration", d)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render", "formats", formats, "duration", d)
}

func (h *logHooks) OnExportComplete(_ context.Context, kind string, files int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "kind", kind, "saved", files, "error", err)
		return
	}
	h.logger.Debug("export", "kind", kind, "files", files, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
