// Package hover maps pointer positions onto points and drives the hover
// markers.
package hover

import (
	"sort"

	"github.com/matzehuels/sparklines/pkg/sparkline/layout"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
)

// Zone is the horizontal hit area of one point. Marker is where the
// hover marker is drawn.
type Zone struct {
	Marker   float64
	From, To float64
	Point    points.Point
}

// Contains reports whether x lies within the zone, bounds included.
func (z Zone) Contains(x float64) bool {
	return z.From <= x && x <= z.To
}

// Index is a list of zones ordered by descending point x.
type Index []Zone

// Build returns the hover index for a chart made of lines, bars or both.
func Build(d layout.Dimensions, pts []points.Point, hasLines, hasBars bool) Index {
	w := d.XStep
	if hasBars {
		w = d.StepWidth
	}
	idx := make(Index, 0, len(pts))
	for _, p := range pts {
		var z Zone
		switch {
		case hasLines && hasBars:
			z.Marker = (p.X-1)*w + w/2
			z.From, z.To = z.Marker-w/2, z.Marker+w/2
		case hasBars:
			z.Marker = (p.X - 1) * w
			z.From, z.To = z.Marker, z.Marker+w
		default:
			z.Marker = (p.X - 1) * w
			z.From, z.To = z.Marker-w/2, z.Marker+w/2
		}
		z.Point = p
		idx = append(idx, z)
	}
	sort.SliceStable(idx, func(i, j int) bool { return idx[i].Point.X > idx[j].Point.X })
	return idx
}

// Lookup returns the zone containing x. On shared bounds the point with
// the larger x wins.
func (idx Index) Lookup(x float64) (Zone, bool) {
	for _, z := range idx {
		if z.Contains(x) {
			return z, true
		}
	}
	return Zone{}, false
}
