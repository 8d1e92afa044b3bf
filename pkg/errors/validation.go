package errors

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ValidateMin checks that a settings field is at least min.
// NaN never passes.
func ValidateMin(field string, v, min float64) error {
	if math.IsNaN(v) || v < min {
		return Configuration("value given for settings.%s must be >= %s", field, formatBound(min))
	}
	return nil
}

// ValidateMax checks that a settings field is at most max.
func ValidateMax(field string, v, max float64) error {
	if math.IsNaN(v) || v > max {
		return Configuration("value given for settings.%s must be <= %s", field, formatBound(max))
	}
	return nil
}

// ValidateAbove checks that a settings field is strictly greater than min.
func ValidateAbove(field string, v, min float64) error {
	if math.IsNaN(v) || v <= min {
		return Configuration("value given for settings.%s must be > %s", field, formatBound(min))
	}
	return nil
}

// ValidateRange checks min <= v <= max.
func ValidateRange(field string, v, min, max float64) error {
	if err := ValidateMin(field, v, min); err != nil {
		return err
	}
	return ValidateMax(field, v, max)
}

// ValidateOneOf checks that a settings field holds one of the allowed values.
func ValidateOneOf(field, v string, allowed ...string) error {
	if !slices.Contains(allowed, v) {
		return Configuration("value given for settings.%s must be one of %s, got %q",
			field, strings.Join(allowed, ", "), v)
	}
	return nil
}

// ValidateOutputPath validates a file path supplied for writing artifacts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
