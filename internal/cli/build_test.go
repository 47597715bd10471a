package cli

import (
	"testing"

	"github.com/terracarta/terraviz/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"svg", "png", "dot", "json"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) = %v, want nil", format, err)
		}
	}

	err := validateFormat("pdf")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("validateFormat(pdf) = %v, want INVALID_FORMAT", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		format string
		want   string
	}{
		{"explicit output wins", "map.json", "custom.svg", "svg", "custom.svg"},
		{"derived from input", "map.json", "", "svg", "map.svg"},
		{"strips directories", "exports/river.json", "", "png", "river.png"},
		{"no input extension", "rivers", "", "dot", "rivers.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, tt.output, tt.format); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q",
					tt.input, tt.output, tt.format, got, tt.want)
			}
		})
	}
}
