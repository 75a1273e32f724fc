package export

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/markdown"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/pages"
	"github.com/matzehuels/mindmap/pkg/render/sink"
	"github.com/matzehuels/mindmap/pkg/textlayout"
)

// Export kinds reported to observability hooks.
const (
	KindDiagram = "diagram"
	KindText    = "text"
)

// ErrNothingToExport is returned when there is no diagram to draw.
var ErrNothingToExport = errors.New(errors.ErrCodeEmptyGraph, "nothing to export")

// Clock returns the current time.
type Clock func() time.Time

// Exporter renders and saves PNG exports. It holds no per-call state and is
// safe for concurrent use when its Saver is.
type Exporter struct {
	saver      Saver
	rasterizer render.Rasterizer
	clock      Clock
	logger     *log.Logger
	geometry   textlayout.PageGeometry
	scale      float64
	svgOpts    []sink.SVGOption
	measurer   textlayout.Measurer
	markdown   bool
}

// Option configures an [Exporter].
type Option func(*Exporter)

// WithSaver sets the destination of exported files (default: current directory).
func WithSaver(s Saver) Option { return func(e *Exporter) { e.saver = s } }

// WithRasterizer selects the SVG rasterizer for diagram exports.
func WithRasterizer(rz render.Rasterizer) Option { return func(e *Exporter) { e.rasterizer = rz } }

// WithClock sets the time source used for file names.
func WithClock(c Clock) Option { return func(e *Exporter) { e.clock = c } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(e *Exporter) { e.logger = l } }

// WithGeometry sets the text page geometry. Unset fields take defaults.
func WithGeometry(g textlayout.PageGeometry) Option {
	return func(e *Exporter) { e.geometry = g.WithDefaults() }
}

// WithScale sets the diagram raster scale (default 2).
func WithScale(s float64) Option { return func(e *Exporter) { e.scale = s } }

// WithSVGOptions passes options to the diagram SVG renderer.
func WithSVGOptions(opts ...sink.SVGOption) Option {
	return func(e *Exporter) { e.svgOpts = opts }
}

// WithMeasurer overrides the measurer used to wrap text. By default text is
// measured with the body font of the page.
func WithMeasurer(m textlayout.Measurer) Option { return func(e *Exporter) { e.measurer = m } }

// WithMarkdown controls whether text is stripped of markdown before
// wrapping (default true).
func WithMarkdown(enabled bool) Option { return func(e *Exporter) { e.markdown = enabled } }

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		saver:      DirSaver{Dir: "."},
		rasterizer: render.Native{},
		clock:      time.Now,
		geometry:   textlayout.DefaultGeometry(),
		scale:      render.DefaultScale,
		markdown:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// FileName returns the name of page page of total for prefix at ms.
// Single-page exports carry no page suffix.
func FileName(prefix string, ms int64, page, total int) string {
	if total > 1 {
		return fmt.Sprintf("%s-%d-%d.png", prefix, ms, page)
	}
	return fmt.Sprintf("%s-%d.png", prefix, ms)
}

// ExportDiagram renders l at natural size, scales it by the export scale
// onto a white background and saves it as <prefix>-<unixMillis>.png.
func (e *Exporter) ExportDiagram(ctx context.Context, l *layout.Layout, prefix string) (f File, err error) {
	if l == nil {
		return File{}, ErrNothingToExport
	}
	if err := errors.ValidatePrefix(prefix); err != nil {
		return File{}, err
	}
	if err := errors.ValidateScale(e.scale); err != nil {
		return File{}, err
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, KindDiagram, prefix)
	defer func() {
		n := 0
		if err == nil {
			n = 1
		}
		hooks.OnExportComplete(ctx, KindDiagram, n, time.Since(start), err)
	}()

	data, err := sink.RenderPNG(ctx, l,
		sink.WithPNGSVGOptions(e.svgOpts...),
		sink.WithScale(e.scale),
		sink.WithRasterizer(e.rasterizer),
	)
	if err != nil {
		return File{}, err
	}

	f = File{Name: FileName(prefix, e.clock().UnixMilli(), 1, 1), Data: data, Page: 1, Total: 1}
	if err := save(ctx, e.saver, f); err != nil {
		return File{}, err
	}
	e.logger.Debug("exported diagram", "file", f.Name, "bytes", len(f.Data), "duration", time.Since(start))
	return f, nil
}

// ExportText paginates text under title and saves one PNG per page. Pages
// are rendered and saved in order; the first failure stops the export and
// the files saved so far are returned along with the error.
func (e *Exporter) ExportText(ctx context.Context, title, text, prefix string) (files []File, err error) {
	if err := errors.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	g := e.geometry
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "page geometry")
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, KindText, prefix)
	defer func() {
		hooks.OnExportComplete(ctx, KindText, len(files), time.Since(start), err)
	}()

	faces, err := pages.NewFaces(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load fonts")
	}
	m := e.measurer
	if m == nil {
		m = faces.Measurer()
	}
	if e.markdown {
		text = markdown.Plain(text)
	}

	wrapped := textlayout.Wrap(textlayout.Lines(text), g.ContentWidth(), m)
	doc := textlayout.Paginate(wrapped, g.LinesPerPage())
	ms := e.clock().UnixMilli()
	e.logger.Debug("paginated text", "lines", len(wrapped), "pages", len(doc), "per_page", g.LinesPerPage())

	for _, p := range doc {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		data, err := render.EncodePNG(pages.Render(g, title, p, faces))
		if err != nil {
			return files, err
		}
		f := File{Name: FileName(prefix, ms, p.Index, p.Total), Data: data, Page: p.Index, Total: p.Total}
		if err := save(ctx, e.saver, f); err != nil {
			return files, err
		}
		files = append(files, f)
	}
	e.logger.Debug("exported text", "files", len(files), "duration", time.Since(start))
	return files, nil
}
