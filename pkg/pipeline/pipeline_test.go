package pipeline

import (
	"testing"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"pdf", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantFormat string
		wantErr    bool
	}{
		{name: "Missing", opts: Options{}, wantErr: true},
		{name: "TOMLPath", opts: Options{Path: "web.toml"}, wantFormat: "toml"},
		{name: "JSONPath", opts: Options{Path: "web.json"}, wantFormat: "json"},
		{name: "DataDefaultsToJSON", opts: Options{Data: []byte("{}")}, wantFormat: "json"},
		{name: "ExplicitFormat", opts: Options{Data: []byte("x"), Format: "toml"}, wantFormat: "toml"},
		{name: "BadFormat", opts: Options{Path: "web.json", Format: "yaml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateForParse()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && opts.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", opts.Format, tt.wantFormat)
			}
			if !tt.wantErr && opts.Logger == nil {
				t.Error("Logger default not set")
			}
		})
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{Layout: diagram.LayoutOptions{Algorithm: "spiral"}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeUnknownAlgorithm) {
		t.Errorf("err = %v, want UNKNOWN_ALGORITHM", err)
	}
	opts = Options{Layout: diagram.LayoutOptions{Margin: -1}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("err = %v, want INVALID_LAYOUT", err)
	}
	opts = Options{}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("empty overrides should pass: %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Path: "web.toml", Formats: []string{"dot"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Format = "yaml"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op: %v", err)
	}
}
