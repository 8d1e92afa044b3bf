package hover

import (
	"github.com/matzehuels/sparklines/pkg/sparkline/geometry"
	"github.com/matzehuels/sparklines/pkg/sparkline/layout"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

// Group ids of the hover primitives.
const (
	IDHover    = "sparkline-hover"
	IDLineMark = "sparkline-hover-dot"
	IDBarMark  = "sparkline-hover-bar"
)

// Tracker translates pointer events into marker updates and hover
// callbacks. It holds no state besides marker position and visibility,
// so repeated events with the same position are idempotent.
type Tracker struct {
	dims     layout.Dimensions
	settings *settings.Settings
	index    Index
	surface  surface.Surface

	group   *surface.Group
	lineDot *settings.Dots
	barFill *settings.Color
	lineMk  *surface.Group
	barMk   *surface.Group
}

// NewTracker builds the hover index and marker groups for one render.
func NewTracker(d layout.Dimensions, s *settings.Settings, pts []points.Point, surf surface.Surface) *Tracker {
	t := &Tracker{
		dims:     d,
		settings: s,
		index:    Build(d, pts, s.HasLine(), s.HasBars()),
		surface:  surf,
		group:    &surface.Group{ID: IDHover, Transform: surface.Translate(d.MarginX, d.MarginY)},
	}
	if s.HasBars() {
		if fill := s.Bars.HoverFill(); fill != nil {
			t.barFill = fill
			t.barMk = &surface.Group{ID: IDBarMark, Hidden: true}
			t.group.Add(t.barMk)
		}
	}
	if s.HasLine() {
		if dot := s.Line.HoverDot(); dot != nil {
			t.lineDot = dot
			t.lineMk = &surface.Group{ID: IDLineMark, Hidden: true}
			t.group.Add(t.lineMk)
		}
	}
	return t
}

// Group returns the hover layer to be painted on top of the chart.
func (t *Tracker) Group() *surface.Group { return t.group }

// Index returns the hover index.
func (t *Tracker) Index() Index { return t.index }

// ViewportX converts a client x coordinate into the chart's drawing
// coordinates. ok is false when the surface reports no size.
func (t *Tracker) ViewportX(clientX float64) (x float64, ok bool) {
	bb := t.surface.BoundingBox()
	if bb.Width <= 0 {
		return 0, false
	}
	return (clientX-bb.Left)*(t.dims.Box.Width/bb.Width) - t.dims.MarginX, true
}

// Move handles a pointer move. It returns the hovered point when one
// with a value was found.
func (t *Tracker) Move(clientX, _ float64) (points.Point, bool) {
	x, ok := t.ViewportX(clientX)
	if !ok {
		t.Leave()
		return points.Point{}, false
	}
	z, ok := t.index.Lookup(x)
	if !ok || !z.Point.Defined {
		t.Leave()
		return points.Point{}, false
	}
	t.show(z)
	if t.settings.OnHover != nil {
		t.settings.OnHover(z.Point.Value, z.Point.Label)
	}
	return z.Point, true
}

// Leave hides all markers.
func (t *Tracker) Leave() {
	for _, g := range []*surface.Group{t.lineMk, t.barMk} {
		if g != nil && !g.Hidden {
			g.Hidden = true
			t.surface.Update(g)
		}
	}
}

func (t *Tracker) show(z Zone) {
	p := z.Point
	if t.barMk != nil {
		r := geometry.BarRect(p.Y, z.From, t.dims.StepWidth)
		r.Fill = surface.Paint{Color: t.barFill.ForSign(p.Y)}
		if t.barFill.Opacity != nil {
			r.Fill.Opacity = *t.barFill.Opacity
		}
		t.barMk.Children = []surface.Node{r}
		t.barMk.Hidden = false
		t.surface.Update(t.barMk)
	}
	if t.lineMk != nil {
		t.lineMk.Transform = surface.Translate(z.Marker, p.ScreenY())
		t.lineMk.Children = []surface.Node{geometry.Dot(t.dims, p, t.lineDot, 0, 0)}
		t.lineMk.Hidden = false
		t.surface.Update(t.lineMk)
	}
}
