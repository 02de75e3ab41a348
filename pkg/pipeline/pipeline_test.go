package pipeline

import (
	"testing"

	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"TEXT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) should carry INVALID_FORMAT, got %v", tt.format, err)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"text", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateForBuild(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Kmers", Options{Kmers: []string{"GAGG"}}, false},
		{"Sequence", Options{Sequence: "GAGGCAGG", K: 4}, false},
		{"NeitherInput", Options{}, true},
		{"BothInputs", Options{Kmers: []string{"GAGG"}, Sequence: "GAGG", K: 4}, true},
		{"SequenceWithoutK", Options{Sequence: "GAGG"}, true},
		{"SequenceKTooSmall", Options{Sequence: "GAGG", K: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForBuild()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForBuild() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("ValidateForBuild() should carry INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("default Formats = %v, want [text]", opts.Formats)
	}
	if opts.Rankdir != DefaultRankdir {
		t.Errorf("default Rankdir = %q, want %q", opts.Rankdir, DefaultRankdir)
	}
	if opts.Logger == nil {
		t.Error("default Logger should be set")
	}

	// Explicit values are preserved
	opts = Options{Formats: []string{"dot"}, Rankdir: "TB"}
	opts.SetRenderDefaults()
	if opts.Formats[0] != "dot" || opts.Rankdir != "TB" {
		t.Errorf("explicit options overwritten: %+v", opts)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Kmers: []string{"GAGG", "CAGG"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults error: %v", err)
	}

	opts = Options{Kmers: []string{"GAGG"}, Formats: []string{"bogus"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should fail validation")
	}
}

func TestKeyOpts(t *testing.T) {
	opts := Options{Permissive: true, Rankdir: "TB"}

	if !opts.GraphKeyOpts().Permissive {
		t.Error("GraphKeyOpts should carry Permissive")
	}

	ak := opts.ArtifactKeyOpts("svg")
	if ak.Format != "svg" || ak.Rankdir != "TB" {
		t.Errorf("ArtifactKeyOpts = %+v", ak)
	}
}

func TestBuildOptions(t *testing.T) {
	if got := (&Options{}).BuildOptions(); len(got) != 0 {
		t.Errorf("strict options should add no build options, got %d", len(got))
	}
	if got := (&Options{Permissive: true}).BuildOptions(); len(got) != 1 {
		t.Errorf("permissive options should add one build option, got %d", len(got))
	}
}
