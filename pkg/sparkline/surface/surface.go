package surface

import "github.com/matzehuels/sparklines/pkg/sparkline/layout"

// View is a complete chart ready to be mounted.
type View struct {
	// Box frames the whole chart in viewport units.
	Box layout.Box
	// Width and Height are the requested on-screen size in pixels.
	Width, Height float64
	Root          *Group
}

// BBox is the on-screen bounding box of a mounted surface in client
// coordinates.
type BBox struct {
	Left, Top     float64
	Width, Height float64
}

// PointerHandler receives pointer events from a mounted surface.
type PointerHandler interface {
	PointerMove(clientX, clientY float64)
	PointerLeave()
}

// Surface is the drawing collaborator. Mount replaces anything previously
// shown. Update is called after a mounted group was mutated in place,
// which only happens for hover markers.
type Surface interface {
	Mount(v *View, h PointerHandler) error
	ShowError(message string) error
	Update(g *Group)
	Clear()
	BoundingBox() BBox
}
