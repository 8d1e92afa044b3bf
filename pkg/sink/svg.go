package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/sparklines/pkg/sparkline"
	"github.com/matzehuels/sparklines/pkg/sparkline/geometry"
	"github.com/matzehuels/sparklines/pkg/sparkline/hover"
	"github.com/matzehuels/sparklines/pkg/sparkline/layout"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

const hoverIndexClass = "sparkline-index"

const hoverCSS = `
    .sparkline-index { display: none; }
    svg { touch-action: none; }`

const hoverJS = `
    (function () {
      var root = document.getElementById(%s);
      if (!root) return;
      var svg = root.ownerSVGElement;
      var idx = svg.querySelector('.sparkline-index');
      var marginX = parseFloat(idx.dataset.marginX), boxWidth = parseFloat(idx.dataset.boxWidth);
      var zones = Array.prototype.map.call(idx.children, function (z) { return z.dataset; });
      var dot = svg.getElementById('sparkline-hover-dot'), bar = svg.getElementById('sparkline-hover-bar');
      function hide() {
        [dot, bar].forEach(function (m) { if (m) m.style.visibility = 'hidden'; });
      }
      svg.addEventListener('pointermove', function (e) {
        var bb = svg.getBoundingClientRect();
        if (!bb.width) { hide(); return; }
        var x = (e.clientX - bb.left) * (boxWidth / bb.width) - marginX;
        var z = zones.find(function (z) { return parseFloat(z.xFrom) <= x && x <= parseFloat(z.xTo); });
        if (!z || z.y === undefined) { hide(); return; }
        var y = parseFloat(z.y);
        if (dot) {
          dot.setAttribute('transform', 'translate(' + z.markerX + ' ' + (-y) + ')');
          dot.style.visibility = 'visible';
        }
        if (bar) {
          var r = bar.firstElementChild;
          r.setAttribute('x', z.xFrom);
          r.setAttribute('y', y < 0 ? 0 : -y);
          r.setAttribute('height', Math.max(Math.abs(y), 1));
          bar.style.visibility = 'visible';
        }
        svg.dispatchEvent(new CustomEvent('sparkline-hover', { detail: { value: parseFloat(z.value), label: z.xLabel } }));
      });
      svg.addEventListener('pointerleave', hide);
    })();`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	sized       bool
	hoverScript bool
	templates   map[string]surface.Node
}

// WithSize writes the requested pixel size as width and height
// attributes. Without it the document scales to its container.
func WithSize() SVGOption { return func(r *svgRenderer) { r.sized = true } }

// WithHoverScript embeds the hover index and a script that moves the
// hover markers. The script dispatches a "sparkline-hover" event with
// the hovered value and label.
func WithHoverScript() SVGOption { return func(r *svgRenderer) { r.hoverScript = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders a chart output as a standalone SVG document. Outputs
// in the error state render the placeholder text.
func RenderSVG(out *sparkline.Output, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	if out.View == nil {
		w, h := float64(settings.DefaultWidth), float64(settings.DefaultHeight)
		if out.Settings != nil {
			w, h = out.Settings.Width, out.Settings.Height
		}
		return renderPlaceholder(out.Placeholder, w, h, r)
	}
	if !r.hoverScript {
		return r.renderView(out.View, nil)
	}
	r.templates = markerTemplates(out)
	return r.renderView(out.View, func(buf *bytes.Buffer) {
		renderHoverIndex(buf, out.Dimensions, out.Index)
		renderHoverScript(buf, out.View.Root.ID)
	})
}

func (r *svgRenderer) renderView(v *surface.View, extra func(*bytes.Buffer)) []byte {
	var buf bytes.Buffer
	openSVG(&buf, v.Box, v.Width, v.Height, *r)
	r.renderNode(&buf, v.Root, 1)
	if extra != nil {
		extra(&buf)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func openSVG(buf *bytes.Buffer, box layout.Box, width, height float64, r svgRenderer) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="%s"`, box.ViewBox())
	if r.sized {
		fmt.Fprintf(buf, ` width="%s" height="%s"`, num(width), num(height))
	}
	buf.WriteString(">\n")
}

func renderPlaceholder(msg string, width, height float64, r svgRenderer) []byte {
	var buf bytes.Buffer
	openSVG(&buf, layout.Box{Width: width, Height: height}, width, height, r)
	fmt.Fprintf(&buf, `  <text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" fill="%s">%s</text>`+"\n",
		settings.DefaultColor, escape(msg))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// markerTemplates returns shapes for hover marker groups that have not
// been shown yet, so the embedded script has something to move.
func markerTemplates(out *sparkline.Output) map[string]surface.Node {
	s := out.Settings
	t := make(map[string]surface.Node)
	if s == nil {
		return t
	}
	if s.HasLine() {
		if dot := s.Line.HoverDot(); dot != nil {
			t[hover.IDLineMark] = geometry.Dot(out.Dimensions, points.Point{Y: 1}, dot, 0, 0)
		}
	}
	if s.HasBars() {
		if fill := s.Bars.HoverFill(); fill != nil {
			r := geometry.BarRect(0, 0, out.Dimensions.StepWidth)
			r.Fill = surface.Paint{Color: fill.Positive()}
			if fill.Opacity != nil {
				r.Fill.Opacity = *fill.Opacity
			}
			t[hover.IDBarMark] = r
		}
	}
	return t
}

func renderHoverIndex(buf *bytes.Buffer, d layout.Dimensions, idx hover.Index) {
	fmt.Fprintf(buf, `  <g class="%s" data-margin-x="%s" data-box-width="%s">`+"\n",
		hoverIndexClass, num(d.MarginX), num(d.Box.Width))
	for _, z := range idx {
		fmt.Fprintf(buf, `    <g data-x-from="%s" data-x-to="%s" data-marker-x="%s" data-x="%s"`,
			num(z.From), num(z.To), num(z.Marker), num(z.Point.X))
		if z.Point.Defined {
			fmt.Fprintf(buf, ` data-y="%s" data-value="%s"`, num(z.Point.Y), num(z.Point.Value))
		}
		if z.Point.Label != "" {
			fmt.Fprintf(buf, ` data-x-label="%s"`, escape(z.Point.Label))
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("  </g>\n")
}

// renderHoverScript embeds the script inside CDATA. The root id is a JSON
// string literal; json escapes '<', '>' and '&', so no id can close the
// CDATA section early.
func renderHoverScript(buf *bytes.Buffer, rootID string) {
	quoted, _ := json.Marshal(rootID)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", hoverCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(hoverJS, quoted))
}

// =============================================================================
// Primitives
// =============================================================================

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n surface.Node, depth int) {
	switch v := n.(type) {
	case *surface.Group:
		r.renderGroup(buf, v, depth)
	case *surface.Rect:
		renderRect(buf, v, depth)
	case *surface.Circle:
		renderCircle(buf, v, depth)
	case *surface.Path:
		renderPath(buf, v, depth)
	case *surface.Line:
		renderLine(buf, v, depth)
	}
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func (r *svgRenderer) renderGroup(buf *bytes.Buffer, g *surface.Group, depth int) {
	indent(buf, depth)
	buf.WriteString("<g")
	attr(buf, "id", g.ID)
	attr(buf, "class", g.Class)
	if g.Transform != nil {
		sx, sy := g.Transform.Scale()
		fmt.Fprintf(buf, ` transform="translate(%s %s) scale(%s %s)"`,
			num(g.Transform.TranslateX), num(g.Transform.TranslateY), num(sx), num(sy))
	}
	if g.Hidden {
		buf.WriteString(` style="visibility: hidden"`)
	}
	children := g.Children
	if tmpl, ok := r.templates[g.ID]; ok && len(children) == 0 {
		children = []surface.Node{tmpl}
	}
	if len(children) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">\n")
	for _, c := range children {
		r.renderNode(buf, c, depth+1)
	}
	indent(buf, depth)
	buf.WriteString("</g>\n")
}

// renderRect draws at least one unit high so zero bars stay visible.
func renderRect(buf *bytes.Buffer, r *surface.Rect, depth int) {
	indent(buf, depth)
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" shape-rendering="crispEdges"`,
		num(r.X), num(r.Y), num(r.Width), num(math.Max(r.Height, 1)))
	fill(buf, &r.Fill)
	stroke(buf, r.Stroke)
	data(buf, r.Data)
	buf.WriteString("/>\n")
}

// renderCircle draws a disc as two arcs. A stroked circle is an outer
// disc in the stroke color with an inner disc in the fill color, so the
// border stays inside the radius.
func renderCircle(buf *bytes.Buffer, c *surface.Circle, depth int) {
	if c.Stroke == nil {
		indent(buf, depth)
		fmt.Fprintf(buf, `<path d="%s"`, discPath(c.CX, c.CY, c.R))
		fill(buf, &c.Fill)
		data(buf, c.Data)
		buf.WriteString("/>\n")
		return
	}
	indent(buf, depth)
	buf.WriteString("<g")
	data(buf, c.Data)
	buf.WriteString(">\n")
	indent(buf, depth+1)
	fmt.Fprintf(buf, `<path d="%s"`, discPath(c.CX, c.CY, c.R))
	fill(buf, &c.Stroke.Paint)
	buf.WriteString("/>\n")
	if inner := c.R - c.Stroke.Width; inner > 0 {
		indent(buf, depth+1)
		fmt.Fprintf(buf, `<path d="%s"`, discPath(c.CX, c.CY, inner))
		fill(buf, &c.Fill)
		buf.WriteString("/>\n")
	}
	indent(buf, depth)
	buf.WriteString("</g>\n")
}

func discPath(cx, cy, r float64) string {
	return fmt.Sprintf("M %s %s a %s %s 0 1 0 %s 0 a %s %s 0 1 0 %s 0",
		num(cx-r), num(cy), num(r), num(r), num(2*r), num(r), num(r), num(-2*r))
}

func renderPath(buf *bytes.Buffer, p *surface.Path, depth int) {
	indent(buf, depth)
	fmt.Fprintf(buf, `<path d="%s"`, pathData(p.Points))
	if p.Fill != nil {
		fill(buf, p.Fill)
	} else {
		buf.WriteString(` fill="none"`)
	}
	if p.Stroke != nil {
		stroke(buf, p.Stroke)
		buf.WriteString(` stroke-linejoin="round" stroke-linecap="round"`)
	} else {
		buf.WriteString(` stroke="none"`)
	}
	buf.WriteString("/>\n")
}

// pathData joins vertices into move/line commands. A gap vertex ends the
// current subpath.
func pathData(vs []surface.Vertex) string {
	var b bytes.Buffer
	move := true
	for _, v := range vs {
		if v.Gap {
			move = true
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if move {
			b.WriteString("M ")
			move = false
		} else {
			b.WriteString("L ")
		}
		b.WriteString(num(v.X))
		b.WriteByte(' ')
		b.WriteString(num(v.Y))
	}
	return b.String()
}

func renderLine(buf *bytes.Buffer, l *surface.Line, depth int) {
	indent(buf, depth)
	fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2))
	stroke(buf, &l.Stroke)
	if l.Dashed {
		buf.WriteString(` stroke-dasharray="2"`)
	}
	buf.WriteString("/>\n")
}

// =============================================================================
// Attributes
// =============================================================================

func attr(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, ` %s="%s"`, name, escape(value))
}

func fill(buf *bytes.Buffer, p *surface.Paint) {
	attr(buf, "fill", p.Color)
	if p.Opacity > 0 && p.Opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, num(p.Opacity))
	}
}

func stroke(buf *bytes.Buffer, s *surface.Stroke) {
	if s == nil {
		return
	}
	attr(buf, "stroke", s.Color)
	fmt.Fprintf(buf, ` stroke-width="%s"`, num(s.Width))
	if s.Opacity > 0 && s.Opacity < 1 {
		fmt.Fprintf(buf, ` stroke-opacity="%s"`, num(s.Opacity))
	}
}

func data(buf *bytes.Buffer, d *surface.Datum) {
	if d == nil {
		return
	}
	fmt.Fprintf(buf, ` data-value="%s" data-x="%s" data-y="%s"`, num(d.Value), num(d.X), num(d.Y))
	attr(buf, "data-x-label", d.Label)
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// num formats coordinates with at most four decimals and never as -0.
func num(f float64) string {
	r := math.Round(f*1e4) / 1e4
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
