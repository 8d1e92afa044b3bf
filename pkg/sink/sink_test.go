package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/sparklines/pkg/sparkline"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

func render(t *testing.T, p settings.Props, vals []value.Value, opts ...sparkline.Option) *sparkline.Output {
	t.Helper()
	c := sparkline.New(append([]sparkline.Option{sparkline.WithID("t"), sparkline.WithoutLogging()}, opts...)...)
	if err := c.SetSettings(p); err != nil {
		t.Fatalf("SetSettings: %v", err)
	}
	if err := c.SetValues(vals); err != nil {
		t.Fatalf("SetValues: %v", err)
	}
	out, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestRenderSVG(t *testing.T) {
	out := render(t, settings.Props{
		Width:  settings.Ptr(100.0),
		Height: settings.Ptr(50.0),
		Line:   &settings.LineProps{Dots: &settings.DotsProps{StrokeWidth: settings.Ptr(1.0)}},
		Bars:   &settings.BarsProps{},
	}, []value.Value{value.WithLabel("a<b", value.Num(1)), value.Of(value.Num(-2)), value.Of(value.Num(0))})

	svg := string(RenderSVG(out, WithSize()))
	checks := []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="` + out.Dimensions.Box.ViewBox() + `"`,
		`width="100" height="50"`,
		`shape-rendering="crispEdges"`,
		`data-x-label="a&lt;b"`,
		`data-value="-2"`,
		`id="sparkline-t"`,
		`class="sparkline-bars"`,
		`class="sparkline-lines"`,
		`fill="none"`,
		` a `,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, "<script") {
		t.Error("script embedded without WithHoverScript")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
	if strings.Index(svg, "sparkline-bars") > strings.Index(svg, "sparkline-lines") {
		t.Error("bars must be painted before lines")
	}
}

func TestRenderSVGWithoutSize(t *testing.T) {
	out := render(t, settings.Props{}, value.Floats(1, 2))
	open := strings.SplitN(string(RenderSVG(out)), "\n", 2)[0]
	if strings.Contains(open, "width=") || strings.Contains(open, "height=") {
		t.Errorf("size attributes written without WithSize: %s", open)
	}
}

func TestRenderSVGHoverScript(t *testing.T) {
	out := render(t, settings.Props{
		Line: &settings.LineProps{Hover: &settings.LineHoverProps{Dot: &settings.DotsProps{}}},
	}, []value.Value{value.Of(value.Num(1)), value.Of(value.None()), value.WithLabel("x", value.Num(3))})

	svg := string(RenderSVG(out, WithHoverScript()))
	for _, want := range []string{"<script", "CDATA", `class="sparkline-index"`, `data-x-from=`, `data-x-label="x"`, `id="sparkline-hover-dot"`, `"sparkline-t"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if n := strings.Count(svg, "data-marker-x="); n != 3 {
		t.Errorf("index entries = %d, want 3", n)
	}
	if n := strings.Count(svg, `data-y="`); n < 2 {
		t.Errorf("defined index entries = %d", n)
	}
	if surface.Find(out.View.Root, "sparkline-hover-dot").Children != nil {
		t.Error("rendering modified the marker group")
	}
}

func TestRenderSVGHoverScriptEscapesID(t *testing.T) {
	out := render(t, settings.Props{Line: &settings.LineProps{}},
		value.Floats(1, 2, 3), sparkline.WithID(`]]><script>alert("x")</script>`))

	svg := RenderSVG(out, WithHoverScript())
	if n := bytes.Count(svg, []byte("]]>")); n != 1 {
		t.Errorf("CDATA terminators = %d, want 1", n)
	}
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("document is not well-formed XML: %v", err)
		}
	}
}

func TestRenderRaster(t *testing.T) {
	out := render(t, settings.Props{Width: settings.Ptr(60.0), Height: settings.Ptr(20.0), Line: &settings.LineProps{}},
		value.Floats(1, -2, 3))
	ctx := context.Background()
	_, lookErr := exec.LookPath("rsvg-convert")

	tests := []struct {
		name   string
		render func() ([]byte, error)
		magic  string
	}{
		{"png", func() ([]byte, error) { return RenderPNG(ctx, out, WithScale(1)) }, "\x89PNG"},
		{"png default scale", func() ([]byte, error) { return RenderPNG(ctx, out) }, "\x89PNG"},
		{"pdf", func() ([]byte, error) { return RenderPDF(ctx, out) }, "%PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.render()
			if lookErr != nil {
				if err == nil || !strings.Contains(err.Error(), "librsvg") {
					t.Errorf("err = %v, want missing librsvg error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(tt.magic)) {
				t.Errorf("output starts with %q, want %q", data[:min(len(data), 8)], tt.magic)
			}
		})
	}
}

func TestRenderSVGPlaceholder(t *testing.T) {
	out := render(t, settings.Props{Width: settings.Ptr(80.0), Height: settings.Ptr(20.0)},
		[]value.Value{value.Of(value.Str("nope"))})
	if out.State != sparkline.StateError {
		t.Fatalf("state = %v", out.State)
	}
	svg := string(RenderSVG(out, WithSize()))
	if !strings.Contains(svg, sparkline.PlaceholderSilent+"</text>") || !strings.Contains(svg, `viewBox="0 0 80 20"`) {
		t.Errorf("placeholder svg = %s", svg)
	}
}

func TestPathData(t *testing.T) {
	tests := []struct {
		name string
		vs   []surface.Vertex
		want string
	}{
		{"empty", nil, ""},
		{"line", []surface.Vertex{{X: 0, Y: 0}, {X: 1.5, Y: -2}}, "M 0 0 L 1.5 -2"},
		{"gap", []surface.Vertex{{X: 0, Y: 1}, {Gap: true}, {X: 2, Y: 3}, {X: 3, Y: 4}}, "M 0 1 M 2 3 L 3 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathData(tt.vs); got != tt.want {
				t.Errorf("pathData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.00001, "0"},
		{1.23456789, "1.2346"},
		{-3, "-3"},
		{1e6, "1000000"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiscPath(t *testing.T) {
	if got, want := discPath(5, 2, 1), "M 4 2 a 1 1 0 1 0 2 0 a 1 1 0 1 0 -2 0"; got != want {
		t.Errorf("discPath() = %q, want %q", got, want)
	}
}

func TestStrokedCircle(t *testing.T) {
	var r svgRenderer
	var b bytes.Buffer
	r.renderNode(&b, &surface.Circle{
		R:      2,
		Fill:   surface.Paint{Color: "white"},
		Stroke: &surface.Stroke{Paint: surface.Paint{Color: "black"}, Width: 0.5},
	}, 0)
	got := b.String()
	if strings.Count(got, "<path") != 2 {
		t.Fatalf("stroked circle = %s", got)
	}
	if strings.Index(got, `fill="black"`) > strings.Index(got, `fill="white"`) {
		t.Error("outer stroke disc must come first")
	}
	if !strings.Contains(got, "a 1.5 1.5") {
		t.Error("inner disc radius should be r - strokeWidth")
	}
}

func TestZeroBarIsVisible(t *testing.T) {
	var r svgRenderer
	var b bytes.Buffer
	r.renderNode(&b, &surface.Rect{Width: 3}, 0)
	if !strings.Contains(b.String(), `height="1"`) {
		t.Errorf("rect = %s", b.String())
	}
}

func TestSVGSurface(t *testing.T) {
	surf := NewSVGSurface(WithSize())
	render(t, settings.Props{
		Width:  settings.Ptr(100.0),
		Height: settings.Ptr(50.0),
		Bars:   &settings.BarsProps{Hover: &settings.BarsHoverProps{Fill: &settings.ColorProps{Color: settings.Ptr("orange")}}},
	}, value.Floats(1, 2, 3, 4), sparkline.WithSurface(surf))

	before := string(surf.Bytes())
	if !strings.Contains(before, `id="sparkline-hover-bar"`) || !strings.Contains(before, "visibility: hidden") {
		t.Fatalf("mounted document = %s", before)
	}
	if bb := surf.BoundingBox(); bb.Width != 100 || bb.Height != 50 {
		t.Errorf("BoundingBox() = %+v", bb)
	}

	surf.PointerMove(60, 10)
	after := string(surf.Bytes())
	if !strings.Contains(after, `fill="orange"`) {
		t.Errorf("hover marker not rendered after pointer move")
	}
	surf.PointerLeave()
	if !strings.Contains(string(surf.Bytes()), `id="sparkline-hover-bar" style="visibility: hidden"`) {
		t.Error("marker still visible after leave")
	}

	if err := surf.ShowError("broken"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(surf.Bytes()), "broken</text>") {
		t.Error("placeholder not rendered")
	}
	surf.Clear()
	if surf.Bytes() != nil {
		t.Error("Clear kept the document")
	}
}

func TestRenderJSON(t *testing.T) {
	out := render(t, settings.Props{Bars: &settings.BarsProps{}},
		[]value.Value{value.WithLabel("mon", value.Num(2)), value.Of(value.None())})
	data, err := RenderJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonOutput
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.State != "rendered" || got.ViewBox == "" || got.Dimensions == nil {
		t.Errorf("header = %+v", got)
	}
	if len(got.Points) != 2 || got.Points[0].Label != "mon" || got.Points[1].Y != nil {
		t.Errorf("points = %+v", got.Points)
	}
	if *got.Points[0].Value != 2 {
		t.Errorf("value = %v", *got.Points[0].Value)
	}
	if len(got.Zones) != 2 {
		t.Errorf("zones = %+v", got.Zones)
	}
	if got.Primitives == nil || got.Primitives.Type != "group" || len(got.Primitives.Children) == 0 {
		t.Errorf("primitives = %+v", got.Primitives)
	}
}

func TestRenderJSONError(t *testing.T) {
	out := render(t, settings.Props{}, []value.Value{value.Of(value.Str("x"))})
	data, err := RenderJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	var got jsonOutput
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.State != "error" || got.Error == nil || got.Error.Code != "INVALID_VALUE" || got.Primitives != nil {
		t.Errorf("error output = %+v", got)
	}
}
