package sink

import (
	"context"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts    []SVGOption
	scale      float64
	rasterizer render.Rasterizer
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRasterizer selects the rasterization backend (default [render.Native]).
func WithRasterizer(rz render.Rasterizer) PNGOption {
	return func(r *pngRenderer) { r.rasterizer = rz }
}

// RenderPNG renders the layout as a PNG with an opaque white background.
// Decode failures carry [errors.ErrCodeDecode], encode failures
// [errors.ErrCodeEncode].
func RenderPNG(ctx context.Context, l *layout.Layout, opts ...PNGOption) ([]byte, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "nothing to render")
	}
	r := pngRenderer{scale: render.DefaultScale, rasterizer: render.Native{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = render.DefaultScale
	}

	img, err := r.rasterizer.Rasterize(ctx, RenderSVG(l, r.svgOpts...), r.scale)
	if err != nil {
		if ctx.Err() != nil || errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "rasterize diagram")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return render.EncodePNG(render.Flatten(img, render.Background))
}
