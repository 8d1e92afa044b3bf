// Package surface defines the abstract primitives a sparkline is built
// from and the drawing surface that renders them.
//
// Geometry code produces a tree of Nodes. A Surface maps each node 1:1
// onto a rendered shape and forwards pointer events back to the chart.
package surface

// Node is one drawing primitive.
type Node interface {
	node()
}

// Paint is a color with an optional opacity. An Opacity of 0 means the
// renderer default (fully opaque).
type Paint struct {
	Color   string
	Opacity float64
}

// Stroke is an outline paint with width in viewport units.
type Stroke struct {
	Paint
	Width float64
}

// Transform translates, then scales. A zero scale component is treated
// as 1.
type Transform struct {
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
}

// Translate returns a translation-only transform.
func Translate(x, y float64) *Transform {
	return &Transform{TranslateX: x, TranslateY: y, ScaleX: 1, ScaleY: 1}
}

// Scale returns the effective scale factors.
func (t Transform) Scale() (x, y float64) {
	x, y = t.ScaleX, t.ScaleY
	if x == 0 {
		x = 1
	}
	if y == 0 {
		y = 1
	}
	return x, y
}

// Datum annotates a primitive with the point it represents.
type Datum struct {
	Value float64
	Label string
	X, Y  float64
}

// Group is a container with an optional transform. Hidden groups keep
// their children but are not visible.
type Group struct {
	ID        string
	Class     string
	Transform *Transform
	Hidden    bool
	Children  []Node
}

// Add appends children and returns the group.
func (g *Group) Add(children ...Node) *Group {
	g.Children = append(g.Children, children...)
	return g
}

// Rect is an axis-aligned rectangle. Renderers draw it at least one unit
// high so zero-height bars stay visible.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          Paint
	Stroke        *Stroke
	Data          *Datum
}

// Circle is a disc. With a stroke the border is drawn inside the radius.
type Circle struct {
	CX, CY float64
	R      float64
	Fill   Paint
	Stroke *Stroke
	Data   *Datum
}

// Vertex is one point of a path. Gap vertices break the path.
type Vertex struct {
	X, Y float64
	Gap  bool
}

// Path is an open polyline. A nil Fill or Stroke is not painted.
type Path struct {
	Points []Vertex
	Fill   *Paint
	Stroke *Stroke
}

// Line is a straight segment, used for crosshairs.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Stroke
	Dashed         bool
}

func (*Group) node()  {}
func (*Rect) node()   {}
func (*Circle) node() {}
func (*Path) node()   {}
func (*Line) node()   {}

// Walk calls fn for n and all of its descendants in paint order. If fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			Walk(c, fn)
		}
	}
}

// Find returns the first group with the given id below root.
func Find(root Node, id string) *Group {
	var found *Group
	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}
		if g, ok := n.(*Group); ok && g.ID == id {
			found = g
			return false
		}
		return true
	})
	return found
}

// Count returns how many nodes below root satisfy match.
func Count(root Node, match func(Node) bool) int {
	var n int
	Walk(root, func(node Node) bool {
		if match(node) {
			n++
		}
		return true
	})
	return n
}

// IsDatum matches rects and circles that represent a point.
func IsDatum(n Node) bool {
	switch v := n.(type) {
	case *Rect:
		return v.Data != nil
	case *Circle:
		return v.Data != nil
	}
	return false
}
