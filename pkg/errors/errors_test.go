package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidInput, "no values given"), "INVALID_INPUT: no values given"},
		{"formatted", Value("value %s (%s)", "wed", "abc"), "INVALID_VALUE: value wed (abc)"},
		{"with cause", Wrap(ErrCodeConfiguration, errors.New("eof"), "malformed settings"), "INVALID_CONFIGURATION: malformed settings: eof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeConfiguration, cause, "malformed settings document")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
	if UserMessage(err) != "malformed settings document" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   Code
		render bool
		kind   string
	}{
		{"configuration", Configuration("width must be at least 1"), ErrCodeConfiguration, true, "ConfigurationError"},
		{"value", Value("bad"), ErrCodeValue, true, "ValueError"},
		{"geometry", Geometry("viewBox is not finite"), ErrCodeGeometry, true, "GeometryError"},
		{"fmt wrapped", fmt.Errorf("render cpu: %w", Geometry("x")), ErrCodeGeometry, true, "GeometryError"},
		{"outermost wins", Wrap(ErrCodeInvalidInput, Value("inner"), "outer"), ErrCodeInvalidInput, false, ""},
		{"cli code", New(ErrCodeInvalidFormat, "gif"), ErrCodeInvalidFormat, false, ""},
		{"plain", errors.New("x"), "", false, ""},
		{"nil", nil, "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode = %q, want %q", got, tt.code)
			}
			if got := IsRender(tt.err); got != tt.render {
				t.Errorf("IsRender = %v, want %v", got, tt.render)
			}
			if got := Kind(tt.err); got != tt.kind {
				t.Errorf("Kind = %q, want %q", got, tt.kind)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %q) = false", tt.code)
			}
		})
	}
	if Is(nil, "") {
		t.Error("Is(nil, \"\") should be false")
	}
}

func TestUserMessagePlain(t *testing.T) {
	if got := UserMessage(errors.New("disk full")); got != "disk full" {
		t.Errorf("UserMessage = %q", got)
	}
}
