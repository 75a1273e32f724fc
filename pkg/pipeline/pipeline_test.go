package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/sink"
	"github.com/matzehuels/mindmap/pkg/textlayout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"tree", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg, PNG ,json", []string{"svg", "png", "json"}},
		{"svg,,svg", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsIsNodelink(t *testing.T) {
	opts := Options{}
	if opts.IsNodelink() {
		t.Error("Empty VizType should not be nodelink")
	}

	opts.VizType = "nodelink"
	if !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalVizType := opts.VizType
	originalFormats := opts.Formats
	originalPage := opts.Page

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if !reflect.DeepEqual(opts.Formats, originalFormats) {
		t.Error("Formats changed on second call")
	}
	if opts.Page != originalPage {
		t.Error("Page changed on second call")
	}
}

func TestOptionsValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad viz type", Options{VizType: "tower"}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad scale", Options{Scale: 20}, errors.ErrCodeInvalidConfig},
		{"bad rasterizer", Options{Rasterizer: "cairo"}, errors.ErrCodeInvalidConfig},
		{"bad page", Options{Page: textlayout.PageGeometry{Width: 100, Margin: 60}}, errors.ErrCodeInvalidConfig},
		{"bad cache backend", Options{Cache: CacheOptions{Backend: "memcached"}}, errors.ErrCodeInvalidConfig},
		{"redis without url", Options{Cache: CacheOptions{Backend: "redis"}}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Layout.NodeWidth != layout.DefaultNodeWidth {
		t.Errorf("NodeWidth should be %v, got %v", layout.DefaultNodeWidth, opts.Layout.NodeWidth)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != render.DefaultScale {
		t.Errorf("Scale should be %v, got %v", render.DefaultScale, opts.Scale)
	}
	if opts.FontSize != sink.DefaultFontSize {
		t.Errorf("FontSize should be %v, got %v", sink.DefaultFontSize, opts.FontSize)
	}
	if opts.Rasterizer != render.BackendNative {
		t.Errorf("Rasterizer should be %s, got %s", render.BackendNative, opts.Rasterizer)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{}
	b := Options{Layout: layout.Options{NodeWidth: 240}}
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("different node widths should produce different key options")
	}
	explicit := Options{Layout: layout.DefaultOptions()}
	if a.LayoutKeyOpts() != explicit.LayoutKeyOpts() {
		t.Error("zero options and explicit defaults should share a key")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 2, Rasterizer: "native"}
	if opts.ArtifactKeyOpts("svg").Scale != 0 {
		t.Error("scale should only key PNG artifacts")
	}
	if opts.ArtifactKeyOpts("png").Scale != 2 {
		t.Error("PNG artifacts should be keyed by scale")
	}

	nodelink := Options{VizType: VizTypeNodelink}
	if nodelink.ArtifactKeyOpts("svg") == opts.ArtifactKeyOpts("svg") {
		t.Error("nodelink and tree artifacts should not share keys")
	}
}

func TestOptionsExporter(t *testing.T) {
	opts := Options{Rasterizer: "bogus"}
	if _, err := opts.Exporter(nil); err == nil {
		t.Error("unknown rasterizer should fail")
	}

	opts = Options{}
	if _, err := opts.Exporter(nil); err != nil {
		t.Errorf("default options should build an exporter: %v", err)
	}
}
