package errors

import (
	"math"
	"testing"
)

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
		wantMsg string
	}{
		{"min ok", ValidateMin("width", 1, 1), false, ""},
		{"min fail", ValidateMin("width", 0.5, 1), true, "value given for settings.width must be >= 1"},
		{"min nan", ValidateMin("width", math.NaN(), 1), true, "value given for settings.width must be >= 1"},
		{"max ok", ValidateMax("height", 8092, 8092), false, ""},
		{"max fail", ValidateMax("height", 9000, 8092), true, "value given for settings.height must be <= 8092"},
		{"above ok", ValidateAbove("line.strokeWidth", 0.001, 0), false, ""},
		{"above fail", ValidateAbove("line.strokeWidth", 0, 0), true, "value given for settings.line.strokeWidth must be > 0"},
		{"range fraction", ValidateRange("opacity", 1.5, 0.01, 1), true, "value given for settings.opacity must be <= 1"},
		{"range low", ValidateRange("opacity", 0.001, 0.01, 1), true, "value given for settings.opacity must be >= 0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err == nil {
				return
			}
			if !Is(tt.err, ErrCodeConfiguration) {
				t.Errorf("code = %v, want %v", GetCode(tt.err), ErrCodeConfiguration)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf("showUndefinedValuesAs", "missing", "missing", "unchanged"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateOneOf("showUndefinedValuesAs", "zero", "missing", "unchanged"); err == nil {
		t.Error("expected error for unknown value")
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/chart.svg", false},
		{"absolute", "/tmp/chart.svg", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
