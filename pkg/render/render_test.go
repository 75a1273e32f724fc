package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="10" viewBox="0 0 20 10">
<rect x="0" y="0" width="10" height="10" style="fill:#FF0000"/>
<text x="15" y="8" style="font-size:8px;fill:#000000;text-anchor:middle">x</text>
</svg>`

func TestNativeRasterize(t *testing.T) {
	img, err := Native{}.Rasterize(context.Background(), []byte(square), 2)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("bounds = %v, want 40x20", b)
	}
	if got := img.RGBAAt(5, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("rect pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(25, 2); got.A != 0 {
		t.Errorf("empty pixel = %v, want transparent", got)
	}

	var inked bool
	for x := 20; x < 40; x++ {
		for y := 0; y < 20; y++ {
			if img.RGBAAt(x, y).A > 0 {
				inked = true
			}
		}
	}
	if !inked {
		t.Error("text was not drawn")
	}
}

func TestNativeRasterizeErrors(t *testing.T) {
	tests := []struct {
		name string
		svg  string
	}{
		{"Truncated", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect`},
		{"NotSVG", `hello`},
		{"EmptyViewBox", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 0 0"></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Native{}.Rasterize(context.Background(), []byte(tt.svg), 2)
			if errors.GetCode(err) != errors.ErrCodeDecode {
				t.Errorf("Rasterize() error = %v, want code %v", err, errors.ErrCodeDecode)
			}
		})
	}
}

func TestRasterizeErrorsKeepCause(t *testing.T) {
	_, err := Native{}.Rasterize(context.Background(), []byte(`<svg viewBox="0 0 10 10"><rect`), 1)
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("Rasterize() error = %T, want *errors.Error", err)
	}
	if e.Cause == nil || e.Message != "decode diagram" {
		t.Errorf("Rasterize() error = %+v, want message %q with a cause", e, "decode diagram")
	}

	_, err = EncodePNG(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if e, ok := err.(*errors.Error); !ok || e.Cause == nil || e.Message != "encode png" {
		t.Errorf("EncodePNG(empty) error = %v, want wrapped encode error", err)
	}
}

func TestNativeRasterizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Native{}).Rasterize(ctx, []byte(square), 1); err != context.Canceled {
		t.Errorf("Rasterize() error = %v, want context.Canceled", err)
	}
}

func TestFlatten(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	out := Flatten(src, color.White)
	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("transparent pixel = %v, want white", got)
	}
	if got := out.RGBAAt(1, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("opaque pixel = %v, want blue", got)
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if string(data[1:4]) != "PNG" {
		t.Errorf("EncodePNG() header = %q", data[:8])
	}

	if _, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 0, 0))); errors.GetCode(err) != errors.ErrCodeEncode {
		t.Errorf("EncodePNG(empty) code = %v, want %v", errors.GetCode(err), errors.ErrCodeEncode)
	}
}

func TestNewRasterizer(t *testing.T) {
	for _, name := range []string{"", "native", "NATIVE"} {
		if r, err := NewRasterizer(name); err != nil || r != (Native{}) {
			t.Errorf("NewRasterizer(%q) = %v, %v, want Native", name, r, err)
		}
	}
	if r, err := NewRasterizer("rsvg"); err != nil || r != (RSVG{}) {
		t.Errorf("NewRasterizer(rsvg) = %v, %v", r, err)
	}
	if _, err := NewRasterizer("cairo"); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("NewRasterizer(cairo) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestParseText(t *testing.T) {
	labels, err := parseText([]byte(`<svg><text x="10" y="20" font-size="12" text-anchor="end" font-weight="700" fill="#123456">a &amp; b</text><text x="1" y="2">  </text></svg>`))
	if err != nil {
		t.Fatalf("parseText() error = %v", err)
	}
	if len(labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(labels))
	}
	want := svgText{X: 10, Y: 20, Size: 12, Anchor: 1, Bold: true, Fill: "#123456", Text: "a & b"}
	if labels[0] != want {
		t.Errorf("parseText() = %+v, want %+v", labels[0], want)
	}
}
