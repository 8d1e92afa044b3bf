package geometry

import (
	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/layout"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

// Warnings raised while building geometry.
const (
	WarnCluttered = "strokes and dots can look cluttered because the number of values exceeds the width of the sparkline"
)

// Group classes.
const (
	ClassLines = "sparkline-lines"
	ClassDots  = "sparkline-dots"
	ClassBars  = "sparkline-bars"
)

// Drawing is a built primitive group plus the warnings raised on the way.
type Drawing struct {
	Group    *surface.Group
	Warnings []string
}

// XFunc maps a 1-based point index onto a viewport x coordinate.
type XFunc func(x float64) float64

// LineX returns the x placement for lines: slot-centered when drawn
// together with bars, step-aligned otherwise.
func LineX(d layout.Dimensions, centerAlign bool) XFunc {
	if centerAlign {
		return d.SlotX
	}
	return d.StepX
}

// Lines builds the stroke, optional fill and optional dots for pts.
// Fills are painted first, then strokes, then dots.
func Lines(d layout.Dimensions, pts []points.Point, l *settings.Line, centerAlign bool) (Drawing, error) {
	xAt := LineX(d, centerAlign)
	g := &surface.Group{Class: ClassLines, Transform: surface.Translate(d.MarginX, d.MarginY)}
	var dr Drawing

	if d.StepWidth < 1 {
		dr.Warnings = append(dr.Warnings, WarnCluttered)
	}

	segs := Segments(pts)
	if l.Fill != nil {
		for _, seg := range segs {
			vs, err := FillPath(seg, xAt)
			if err != nil {
				return Drawing{}, err
			}
			fill := paint(*l.Fill, segmentColor(*l.Fill, seg))
			g.Add(&surface.Path{Points: vs, Fill: &fill})
		}
	}
	for _, seg := range segs {
		g.Add(&surface.Path{
			Points: StrokePath(seg, xAt),
			Stroke: &surface.Stroke{
				Paint: paint(l.Stroke, segmentColor(l.Stroke, seg)),
				Width: d.Px(l.StrokeWidth),
			},
		})
	}
	if l.Dots != nil {
		g.Add(Dots(d, pts, l.Dots, xAt))
	}

	dr.Group = g
	return dr, nil
}

func segmentColor(c settings.Color, seg Segment) string {
	if seg.Negative() {
		return c.Negative()
	}
	return c.Positive()
}

// StrokePath returns the outline vertices of a segment.
func StrokePath(seg Segment, xAt XFunc) []surface.Vertex {
	vs := make([]surface.Vertex, len(seg))
	for i, p := range seg {
		vs[i] = surface.Vertex{X: xAt(p.X), Y: p.ScreenY()}
	}
	return vs
}

// FillPath returns the area vertices of a segment, closed against the
// axis with zero points at the first and last x.
func FillPath(seg Segment, xAt XFunc) ([]surface.Vertex, error) {
	if len(seg) == 0 {
		return nil, errors.Geometry("cannot create a path for lines without points")
	}
	vs := make([]surface.Vertex, 0, len(seg)+2)
	vs = append(vs, surface.Vertex{X: xAt(seg[0].X)})
	vs = append(vs, StrokePath(seg, xAt)...)
	vs = append(vs, surface.Vertex{X: xAt(seg[len(seg)-1].X)})
	return vs, nil
}

// Dots builds one circle per defined point.
func Dots(d layout.Dimensions, pts []points.Point, dots *settings.Dots, xAt XFunc) *surface.Group {
	g := &surface.Group{Class: ClassDots}
	for _, p := range pts {
		if !p.Defined {
			continue
		}
		g.Add(Dot(d, p, dots, xAt(p.X), p.ScreenY()))
	}
	return g
}

// Dot builds a single marker for p centered at cx, cy.
func Dot(d layout.Dimensions, p points.Point, dots *settings.Dots, cx, cy float64) *surface.Circle {
	c := &surface.Circle{
		CX:   cx,
		CY:   cy,
		R:    d.Px(dots.Size) / 2,
		Fill: dotPaint(dots.Fill, p.Y),
		Data: datum(p),
	}
	if dots.HasStroke() {
		c.Stroke = &surface.Stroke{
			Paint: dotPaint(*dots.Stroke, p.Y),
			Width: d.Px(dots.StrokeWidth),
		}
	}
	return c
}

func datum(p points.Point) *surface.Datum {
	return &surface.Datum{Value: p.Value, Label: p.Label, X: p.X, Y: p.Y}
}
