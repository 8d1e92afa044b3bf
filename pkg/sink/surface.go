package sink

import (
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

// SVGSurface is a drawing surface that keeps the mounted chart as an SVG
// document. Marker updates re-render the document, so a pointer event
// followed by Bytes yields a snapshot with the hover marker shown.
type SVGSurface struct {
	r       svgRenderer
	view    *surface.View
	handler surface.PointerHandler
	doc     []byte
}

// NewSVGSurface returns an empty surface. Hover script options are
// ignored; use RenderSVG for interactive documents.
func NewSVGSurface(opts ...SVGOption) *SVGSurface {
	r := newSVGRenderer(opts...)
	r.hoverScript = false
	return &SVGSurface{r: r}
}

func (s *SVGSurface) Mount(v *surface.View, h surface.PointerHandler) error {
	s.view = v
	s.handler = h
	s.doc = s.r.renderView(v, nil)
	return nil
}

func (s *SVGSurface) ShowError(message string) error {
	w, h := float64(settings.DefaultWidth), float64(settings.DefaultHeight)
	if s.view != nil {
		w, h = s.view.Width, s.view.Height
	}
	s.view = nil
	s.handler = nil
	s.doc = renderPlaceholder(message, w, h, s.r)
	return nil
}

func (s *SVGSurface) Update(*surface.Group) {
	if s.view != nil {
		s.doc = s.r.renderView(s.view, nil)
	}
}

func (s *SVGSurface) Clear() {
	s.view = nil
	s.handler = nil
	s.doc = nil
}

// BoundingBox reports the view drawn at its requested pixel size.
func (s *SVGSurface) BoundingBox() surface.BBox {
	if s.view == nil {
		return surface.BBox{}
	}
	return surface.BBox{Width: s.view.Width, Height: s.view.Height}
}

// Bytes returns the current document, or nil before anything was shown.
func (s *SVGSurface) Bytes() []byte { return s.doc }

// PointerMove forwards a move in document pixel coordinates to the
// mounted chart.
func (s *SVGSurface) PointerMove(x, y float64) {
	if s.handler != nil {
		s.handler.PointerMove(x, y)
	}
}

// PointerLeave forwards a pointer leave to the mounted chart.
func (s *SVGSurface) PointerLeave() {
	if s.handler != nil {
		s.handler.PointerLeave()
	}
}
