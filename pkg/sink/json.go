package sink

import (
	"encoding/json"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
)

type jsonOutput struct {
	ID          string          `json:"id"`
	State       string          `json:"state"`
	ViewBox     string          `json:"view_box,omitempty"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Dimensions  *jsonDimensions `json:"dimensions,omitempty"`
	Points      []jsonPoint     `json:"points,omitempty"`
	Zones       []jsonZone      `json:"zones,omitempty"`
	Primitives  *jsonNode       `json:"primitives,omitempty"`
	Error       *jsonError      `json:"error,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

type jsonDimensions struct {
	MarginX   float64 `json:"margin_x"`
	MarginY   float64 `json:"margin_y"`
	PixelSize float64 `json:"pixel_size"`
	XStep     float64 `json:"x_step"`
	StepWidth float64 `json:"step_width"`
}

type jsonPoint struct {
	X     float64  `json:"x"`
	Label string   `json:"label,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

type jsonZone struct {
	X      float64 `json:"x"`
	From   float64 `json:"from"`
	To     float64 `json:"to"`
	Marker float64 `json:"marker"`
}

type jsonError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonNode struct {
	Type      string       `json:"type"`
	ID        string       `json:"id,omitempty"`
	Class     string       `json:"class,omitempty"`
	Transform []float64    `json:"transform,omitempty"`
	Hidden    bool         `json:"hidden,omitempty"`
	Children  []*jsonNode  `json:"children,omitempty"`
	X         *float64     `json:"x,omitempty"`
	Y         *float64     `json:"y,omitempty"`
	Width     *float64     `json:"width,omitempty"`
	Height    *float64     `json:"height,omitempty"`
	R         *float64     `json:"r,omitempty"`
	Points    [][2]float64 `json:"points,omitempty"`
	Fill      string       `json:"fill,omitempty"`
	Stroke    string       `json:"stroke,omitempty"`
	StrokeW   float64      `json:"stroke_width,omitempty"`
	Value     *float64     `json:"value,omitempty"`
	Label     string       `json:"label,omitempty"`
}

// RenderJSON exports a chart output: viewport, points, hover zones and
// the primitive tree. Outputs in the error state carry the error code and
// message instead of geometry.
func RenderJSON(out *sparkline.Output) ([]byte, error) {
	j := jsonOutput{
		ID:          out.ID,
		State:       out.State.String(),
		Placeholder: out.Placeholder,
	}
	if out.Settings != nil {
		j.Width, j.Height = out.Settings.Width, out.Settings.Height
	}
	if out.Err != nil {
		j.Error = &jsonError{Code: string(errors.GetCode(out.Err)), Message: errors.UserMessage(out.Err)}
	}
	if out.View != nil {
		d := out.Dimensions
		j.ViewBox = d.Box.ViewBox()
		j.Dimensions = &jsonDimensions{
			MarginX:   d.MarginX,
			MarginY:   d.MarginY,
			PixelSize: d.PixelSize,
			XStep:     d.XStep,
			StepWidth: d.StepWidth,
		}
		j.Primitives = buildJSONNode(out.View.Root)
	}
	for _, p := range out.Points {
		jp := jsonPoint{X: p.X, Label: p.Label}
		if p.Defined {
			y, v := p.Y, p.Value
			jp.Y, jp.Value = &y, &v
		}
		j.Points = append(j.Points, jp)
	}
	for _, z := range out.Index {
		j.Zones = append(j.Zones, jsonZone{X: z.Point.X, From: z.From, To: z.To, Marker: z.Marker})
	}
	return json.MarshalIndent(j, "", "  ")
}

func buildJSONNode(n surface.Node) *jsonNode {
	switch v := n.(type) {
	case *surface.Group:
		j := &jsonNode{Type: "group", ID: v.ID, Class: v.Class, Hidden: v.Hidden}
		if t := v.Transform; t != nil {
			sx, sy := t.Scale()
			j.Transform = []float64{t.TranslateX, t.TranslateY, sx, sy}
		}
		for _, c := range v.Children {
			if cj := buildJSONNode(c); cj != nil {
				j.Children = append(j.Children, cj)
			}
		}
		return j
	case *surface.Rect:
		j := &jsonNode{Type: "rect", X: f(v.X), Y: f(v.Y), Width: f(v.Width), Height: f(v.Height), Fill: v.Fill.Color}
		strokeJSON(j, v.Stroke)
		datumJSON(j, v.Data)
		return j
	case *surface.Circle:
		j := &jsonNode{Type: "circle", X: f(v.CX), Y: f(v.CY), R: f(v.R), Fill: v.Fill.Color}
		strokeJSON(j, v.Stroke)
		datumJSON(j, v.Data)
		return j
	case *surface.Path:
		j := &jsonNode{Type: "path"}
		for _, vx := range v.Points {
			if !vx.Gap {
				j.Points = append(j.Points, [2]float64{vx.X, vx.Y})
			}
		}
		if v.Fill != nil {
			j.Fill = v.Fill.Color
		}
		strokeJSON(j, v.Stroke)
		return j
	case *surface.Line:
		j := &jsonNode{Type: "line", Points: [][2]float64{{v.X1, v.Y1}, {v.X2, v.Y2}}}
		strokeJSON(j, &v.Stroke)
		return j
	}
	return nil
}

func strokeJSON(j *jsonNode, s *surface.Stroke) {
	if s != nil {
		j.Stroke, j.StrokeW = s.Color, s.Width
	}
}

func datumJSON(j *jsonNode, d *surface.Datum) {
	if d != nil {
		j.Value, j.Label = f(d.Value), d.Label
	}
}

func f(v float64) *float64 { return &v }
