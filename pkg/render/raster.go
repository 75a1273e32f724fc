package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Rasterizer backend names.
const (
	BackendNative = "native"
	BackendRSVG   = "rsvg"
)

// DefaultScale is the export scale factor.
const DefaultScale = 2.0

// Background is the opaque fill behind exported rasters.
var Background color.Color = color.White

// Rasterizer decodes an SVG document into a raster surface at scale.
// The returned surface may be transparent; see [Flatten].
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, scale float64) (*image.RGBA, error)
}

// NewRasterizer returns the backend registered under name. An empty name
// selects [Native].
func NewRasterizer(name string) (Rasterizer, error) {
	switch strings.ToLower(name) {
	case "", BackendNative:
		return Native{}, nil
	case BackendRSVG:
		return RSVG{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown rasterizer %q (valid: %s, %s)", name, BackendNative, BackendRSVG)
	}
}

// Native rasterizes in-process. Shapes are drawn by oksvg/rasterx; text,
// which oksvg does not render, is drawn by gg with the bundled fonts.
type Native struct{}

// Name returns "native".
func (Native) Name() string { return BackendNative }

// Rasterize decodes svg and draws it at scale onto a transparent surface.
func (Native) Rasterize(ctx context.Context, svg []byte, scale float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode diagram")
	}
	w := int(math.Ceil(icon.ViewBox.W * scale))
	h := int(math.Ceil(icon.ViewBox.H * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeDecode, "decode diagram: empty canvas")
	}

	labels, err := parseText(svg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode diagram text")
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	if err := drawText(gg.NewContextForRGBA(img), labels, scale, icon.ViewBox.X, icon.ViewBox.Y); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "draw diagram text")
	}
	return img, nil
}

// Flatten composites img over an opaque bg and returns the result.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(bg)
	dc.Clear()
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image().(*image.RGBA)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return buf.Bytes(), nil
}
