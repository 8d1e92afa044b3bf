// Package value models the raw input datums of a sparkline and converts
// them into finite numbers.
//
// A datum is a tagged variant: missing, a number, or a numeric-looking
// string, optionally carrying an x-axis label. Mixed shapes are accepted
// within one series; each element is resolved on its own.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sparklines/pkg/errors"
)

// Kind identifies the shape of a Scalar.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "missing"
	}
}

// Scalar is a single unconverted datum. The zero value is missing.
type Scalar struct {
	kind Kind
	num  float64
	str  string
}

// None returns the missing scalar.
func None() Scalar { return Scalar{} }

// Num wraps a number. NaN and infinities are kept and rejected by ToNumber.
func Num(f float64) Scalar { return Scalar{kind: KindNumber, num: f} }

// Str wraps a string to be parsed as a number.
func Str(s string) Scalar { return Scalar{kind: KindString, str: s} }

// Kind reports the scalar's shape.
func (s Scalar) Kind() Kind { return s.kind }

// String renders the scalar as given by the caller.
func (s Scalar) String() string {
	switch s.kind {
	case KindNumber:
		return strconv.FormatFloat(s.num, 'g', -1, 64)
	case KindString:
		return s.str
	default:
		return "undefined"
	}
}

// Value is one element of an input series.
type Value struct {
	Label   string
	Labeled bool
	Scalar  Scalar
}

// Of returns an unlabeled value.
func Of(s Scalar) Value { return Value{Scalar: s} }

// WithLabel returns a labeled value. A labeled value may wrap a missing scalar.
func WithLabel(label string, s Scalar) Value {
	return Value{Label: label, Labeled: true, Scalar: s}
}

// Floats converts a slice of numbers into values.
func Floats(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Of(Num(f))
	}
	return out
}

// ToNumber resolves a scalar to a finite number. The boolean is false when
// the scalar is missing, including strings that are empty after trimming.
// name identifies the datum in error messages.
func ToNumber(s Scalar, name string) (float64, bool, error) {
	switch s.kind {
	case KindMissing:
		return 0, false, nil
	case KindNumber:
		return checkFinite(s.num, name, s.String())
	case KindString:
		trimmed := strings.TrimSpace(s.str)
		if trimmed == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return 0, false, errors.Value("invalid infinite number for value %s (%s)", name, s.str)
			}
			return 0, false, errors.Value("invalid non numeric value for value %s (%s)", name, s.str)
		}
		return checkFinite(f, name, s.str)
	}
	return 0, false, errors.Value("unsupported value kind %d for value %s", s.kind, name)
}

// Name returns the identifier used for the value at index i in messages:
// its label when present, its 1-based position otherwise.
func (v Value) Name(i int) string {
	if v.Labeled && v.Label != "" {
		return v.Label
	}
	return strconv.Itoa(i + 1)
}

func checkFinite(f float64, name, raw string) (float64, bool, error) {
	if math.IsNaN(f) {
		return 0, false, errors.Value("invalid non numeric value for value %s (%s)", name, raw)
	}
	if math.IsInf(f, 0) {
		return 0, false, errors.Value("invalid infinite number for value %s (%s)", name, raw)
	}
	return f, true, nil
}

// FromAny converts native Go datums into values. Accepted element types are
// nil, all integer and float types, string, Value, Scalar and maps with a
// "label" key and an optional "value" key.
func FromAny(items []any) ([]Value, error) {
	out := make([]Value, len(items))
	for i, item := range items {
		v, err := fromAny(item)
		if err != nil {
			return nil, errors.Value("value at index %d: %s", i, errors.UserMessage(err))
		}
		out[i] = v
	}
	return out, nil
}

func fromAny(item any) (Value, error) {
	switch x := item.(type) {
	case Value:
		return x, nil
	case map[string]any:
		label, ok := x["label"].(string)
		if !ok {
			return Value{}, errors.Value("value object must have a label")
		}
		s, err := scalarFromAny(x["value"])
		if err != nil {
			return Value{}, err
		}
		return WithLabel(label, s), nil
	default:
		s, err := scalarFromAny(item)
		if err != nil {
			return Value{}, err
		}
		return Of(s), nil
	}
}

func scalarFromAny(item any) (Scalar, error) {
	switch x := item.(type) {
	case nil:
		return None(), nil
	case Scalar:
		return x, nil
	case string:
		return Str(x), nil
	case float64:
		return Num(x), nil
	case float32:
		return Num(float64(x)), nil
	case int:
		return Num(float64(x)), nil
	case int8:
		return Num(float64(x)), nil
	case int16:
		return Num(float64(x)), nil
	case int32:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case uint:
		return Num(float64(x)), nil
	case uint8:
		return Num(float64(x)), nil
	case uint16:
		return Num(float64(x)), nil
	case uint32:
		return Num(float64(x)), nil
	case uint64:
		return Num(float64(x)), nil
	}
	return Scalar{}, errors.Value("unsupported value type %T", item)
}

// ParseList parses a comma separated series such as "1,3,,-4" or
// "mon:3,tue:,wed:7". Empty elements are missing.
func ParseList(s string) []Value {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]Value, len(parts))
	for i, p := range parts {
		label, raw, labeled := splitLabel(p)
		sc := None()
		if strings.TrimSpace(raw) != "" {
			sc = Str(raw)
		}
		if labeled {
			out[i] = WithLabel(label, sc)
		} else {
			out[i] = Of(sc)
		}
	}
	return out
}

// splitLabel splits "label:value" at the last colon.
func splitLabel(p string) (label, raw string, ok bool) {
	idx := strings.LastIndex(p, ":")
	if idx <= 0 {
		return "", p, false
	}
	return strings.TrimSpace(p[:idx]), p[idx+1:], true
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	if v.Labeled {
		return fmt.Sprintf("value.WithLabel(%q, %s)", v.Label, v.Scalar)
	}
	return fmt.Sprintf("value.Of(%s)", v.Scalar)
}
