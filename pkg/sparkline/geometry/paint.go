package geometry

import (
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

func paint(c settings.Color, color string) surface.Paint {
	p := surface.Paint{Color: color}
	if c.Opacity != nil {
		p.Opacity = *c.Opacity
	}
	return p
}

// signPaint picks the sign color of c for y.
func signPaint(c settings.Color, y float64) surface.Paint {
	return paint(c, c.ForSign(y))
}

// dotPaint is like signPaint but uses the base color for zero.
func dotPaint(c settings.Color, y float64) surface.Paint {
	if y == 0 {
		return paint(c, c.Color)
	}
	return signPaint(c, y)
}
