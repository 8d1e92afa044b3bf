// Package geometry turns positioned points into drawing primitives.
//
// All functions are pure: they read resolved settings and dimensions and
// return a primitive tree plus any warnings worth logging.
package geometry

import (
	"math"

	"github.com/matzehuels/sparklines/pkg/sparkline/points"
)

// Segment is a run of points that never crosses zero and has no gaps.
type Segment []points.Point

// Negative reports whether any point of the segment lies below zero.
func (s Segment) Negative() bool {
	for _, p := range s {
		if p.Defined && p.Y < 0 {
			return true
		}
	}
	return false
}

// Segments splits pts at gaps and zero crossings. At every crossing a
// synthetic zero point ends one segment and starts the next, so adjacent
// segments touch at the axis.
func Segments(pts []points.Point) []Segment {
	var out []Segment
	var cur Segment
	var prev points.Point
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for i, p := range pts {
		if !p.Defined {
			flush()
			prev = p
			continue
		}
		if i > 0 && prev.Defined && crosses(prev.Y, p.Y) {
			zero := points.Point{X: prev.X + intercept(prev, p), Defined: true}
			cur = append(cur, zero)
			flush()
			cur = Segment{zero}
		}
		cur = append(cur, p)
		prev = p
	}
	flush()
	return out
}

func crosses(prev, cur float64) bool {
	return (prev > 0 && cur <= 0) || (prev < 0 && cur > 0)
}

// intercept is the x distance from prev to where the line prev-cur meets
// zero.
func intercept(prev, cur points.Point) float64 {
	return math.Abs(prev.Y) * (cur.X - prev.X) / math.Abs(prev.Y-cur.Y)
}
