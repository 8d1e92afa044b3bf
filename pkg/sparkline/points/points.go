// Package points maps raw values onto the positioned points every chart
// is drawn from.
package points

import (
	"math"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

const (
	Win  = 1
	Loss = -1

	// LargeValueThreshold is the value range above which y values are
	// divided down. Renderers lose precision on very large coordinates.
	LargeValueThreshold = 5000
)

// Point is one positioned datum. X is the 1-based index in the series.
// Y is only meaningful when Defined is true; Value holds the number
// before win/loss collapsing and rescaling.
type Point struct {
	X       float64
	Label   string
	Y       float64
	Defined bool
	Value   float64
}

// ScreenY returns Y flipped for a y-down coordinate system.
func (p Point) ScreenY() float64 {
	return Flip(p.Y)
}

// Flip negates y without producing a negative zero.
func Flip(y float64) float64 {
	if y == 0 {
		return 0
	}
	return -y
}

// Options controls how values become points.
type Options struct {
	// CarryForward repeats the previous value for missing ones.
	CarryForward bool
	// WinLoss collapses every nonzero value to Win or Loss.
	WinLoss bool
}

// OptionsFor derives mapping options from resolved settings.
func OptionsFor(s *settings.Settings) Options {
	return Options{
		CarryForward: s.ShowUndefinedValuesAs == settings.ShowUnchanged,
		WinLoss:      s.IsWinLoss(),
	}
}

// Map converts values into points with dense X values 1..n.
func Map(values []value.Value, opts Options) ([]Point, error) {
	if len(values) == 0 {
		return nil, nil
	}
	pts := make([]Point, len(values))
	var last float64
	var haveLast bool
	for i, v := range values {
		n, ok, err := value.ToNumber(v.Scalar, v.Name(i))
		if err != nil {
			return nil, err
		}
		if !ok && opts.CarryForward {
			n, ok = last, haveLast
		}
		p := Point{X: float64(i + 1), Label: v.Label}
		if ok {
			p.Defined = true
			p.Value = n
			p.Y = collapse(n, opts.WinLoss)
		}
		last, haveLast = n, ok
		pts[i] = p
	}
	return pts, nil
}

func collapse(n float64, winLoss bool) float64 {
	if !winLoss {
		return n
	}
	switch {
	case n > 0:
		return Win
	case n < 0:
		return Loss
	}
	return n
}

// Extent returns the smallest and largest defined y, or 0, 0 when no
// point is defined.
func Extent(pts []Point) (min, max float64) {
	first := true
	for _, p := range pts {
		if !p.Defined {
			continue
		}
		if first {
			min, max = p.Y, p.Y
			first = false
			continue
		}
		min = math.Min(min, p.Y)
		max = math.Max(max, p.Y)
	}
	return min, max
}

// Range returns max-min of the defined y values, floored at 1.
func Range(pts []Point) float64 {
	min, max := Extent(pts)
	return math.Max(max-min, 1)
}

// Factor is the multiplier or divisor applied by Rescale.
type Factor struct {
	V      float64
	Divide bool
}

// Apply scales y by the factor.
func (f Factor) Apply(y float64) float64 {
	if f.Divide {
		return y / f.V
	}
	return y * f.V
}

// ScaleFactor picks the rescale factor for a value range drawn at the
// given height. Amplification of small ranges takes precedence over
// division of large ones.
func ScaleFactor(valueRange, height float64) Factor {
	f := Factor{V: 1}
	if valueRange > LargeValueThreshold {
		f = Factor{V: math.Floor(valueRange / height), Divide: true}
	}
	if height > valueRange {
		f = Factor{V: math.Ceil(height / valueRange)}
	}
	return f
}

// Rescale returns a copy of pts with y values scaled to suit height.
// A value range that overflows float64 is a value error.
// The input is not modified, so rescaling freshly mapped points always
// yields the same result.
func Rescale(pts []Point, height float64) ([]Point, error) {
	rng := Range(pts)
	if math.IsInf(rng, 0) {
		return nil, errors.Value("sparkline cannot be rendered as the range of the given values is infinite")
	}
	f := ScaleFactor(rng, height)
	out := make([]Point, len(pts))
	for i, p := range pts {
		if p.Defined {
			p.Y = f.Apply(p.Y)
			if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				return nil, errors.Value("sparkline cannot be rendered as it will contain infinite numbers, please check settings like height and given values")
			}
		}
		out[i] = p
	}
	return out, nil
}
