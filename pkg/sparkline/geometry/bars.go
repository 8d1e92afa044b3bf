package geometry

import (
	"math"

	"github.com/matzehuels/sparklines/pkg/sparkline/layout"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

// BarMargin is the inset on each side of a slot.
func BarMargin(d layout.Dimensions, b *settings.Bars) float64 {
	return b.MarginPercentage / 100 * d.StepWidth / 2
}

// Bars builds one rectangle per defined point. Zero values produce a
// zero-height bar on the axis.
func Bars(d layout.Dimensions, pts []points.Point, b *settings.Bars) Drawing {
	g := &surface.Group{Class: ClassBars, Transform: surface.Translate(d.MarginX, d.MarginY)}
	margin := BarMargin(d, b)
	for _, p := range pts {
		if !p.Defined {
			continue
		}
		r := BarRect(p.Y, (p.X-1)*d.StepWidth+margin, d.StepWidth-2*margin)
		r.Fill = signPaint(b.Fill, p.Y)
		r.Data = datum(p)
		g.Add(r)
	}
	return Drawing{Group: g}
}

// BarRect returns a bar for y starting at x. Positive bars grow up from
// the axis, negative ones down.
func BarRect(y, x, width float64) *surface.Rect {
	top := points.Flip(y)
	if y < 0 {
		top = 0
	}
	return &surface.Rect{X: x, Y: top, Width: width, Height: math.Abs(y)}
}
