// Package settings resolves partial chart configuration into a complete,
// validated snapshot.
//
// A Settings value is immutable once returned by New or Update: Update
// produces a new snapshot and leaves its receiver untouched, so a render
// always observes a self-consistent configuration.
package settings

import "math"

// Defaults applied to omitted fields.
const (
	DefaultColor       = "currentColor"
	DefaultWidth       = 200
	DefaultHeight      = 100
	DefaultStrokeWidth = 1.67
	DefaultDotSize     = 3.67
)

// Bounds enforced by validation.
const (
	MinDimension = 1
	MaxDimension = 8092
	MaxOpacity   = 1
	MaxMargin    = 100
)

// Mode selects how missing values are drawn.
type Mode string

const (
	// ShowMissing leaves a gap for missing values.
	ShowMissing Mode = "missing"
	// ShowUnchanged repeats the previous value.
	ShowUnchanged Mode = "unchanged"
)

// HoverFunc receives the original value and x label of the hovered point.
type HoverFunc func(value float64, label string)

// Color is a resolved color group. Empty sign colors fall back to Color.
type Color struct {
	Color                  string   `json:"color"`
	ColorForPositiveValues string   `json:"colorForPositiveValues,omitempty"`
	ColorForNegativeValues string   `json:"colorForNegativeValues,omitempty"`
	Opacity                *float64 `json:"opacity,omitempty"`
}

// Positive returns the color for values >= 0.
func (c Color) Positive() string {
	if c.ColorForPositiveValues != "" {
		return c.ColorForPositiveValues
	}
	return c.Color
}

// Negative returns the color for values < 0.
func (c Color) Negative() string {
	if c.ColorForNegativeValues != "" {
		return c.ColorForNegativeValues
	}
	return c.Color
}

// ForSign picks Positive or Negative by the sign of y.
func (c Color) ForSign(y float64) string {
	if y < 0 {
		return c.Negative()
	}
	return c.Positive()
}

// Dots configures point markers. Stroke and StrokeWidth are set together.
type Dots struct {
	Size        float64 `json:"size"`
	Stroke      *Color  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Fill        Color   `json:"fill"`
}

// HasStroke reports whether markers get an outline.
func (d *Dots) HasStroke() bool {
	return d.Stroke != nil && d.StrokeWidth > 0
}

// LineHover configures the marker drawn over the hovered point.
type LineHover struct {
	Dot *Dots `json:"dot,omitempty"`
}

// Line configures the stroke, the optional fill under it and point markers.
type Line struct {
	StrokeWidth float64    `json:"strokeWidth"`
	Stroke      Color      `json:"stroke"`
	Fill        *Color     `json:"fill,omitempty"`
	Dots        *Dots      `json:"dots,omitempty"`
	Hover       *LineHover `json:"hover,omitempty"`
}

// HoverDot returns the hover marker settings, or nil.
func (l *Line) HoverDot() *Dots {
	if l.Hover == nil {
		return nil
	}
	return l.Hover.Dot
}

// BarsHover configures the highlight of the hovered bar.
type BarsHover struct {
	Fill *Color `json:"fill,omitempty"`
}

// Bars configures column and win/loss bars.
type Bars struct {
	IsWinLoss        bool       `json:"isWinLoss"`
	MarginPercentage float64    `json:"marginPercentage"`
	Fill             Color      `json:"fill"`
	Hover            *BarsHover `json:"hover,omitempty"`
}

// HoverFill returns the hover marker fill, or nil.
func (b *Bars) HoverFill() *Color {
	if b.Hover == nil {
		return nil
	}
	return b.Hover.Fill
}

// Settings is a fully resolved configuration. At least one of Line and
// Bars is set, and a win/loss Bars never coexists with a Line.
type Settings struct {
	Width                 float64   `json:"width"`
	Height                float64   `json:"height"`
	ShowUndefinedValuesAs Mode      `json:"showUndefinedValuesAs"`
	OnHover               HoverFunc `json:"-"`
	Line                  *Line     `json:"line,omitempty"`
	Bars                  *Bars     `json:"bars,omitempty"`
}

// HasLine reports whether a line is drawn.
func (s *Settings) HasLine() bool { return s.Line != nil }

// HasBars reports whether bars are drawn.
func (s *Settings) HasBars() bool { return s.Bars != nil }

// IsWinLoss reports whether values collapse to +1/-1.
func (s *Settings) IsWinLoss() bool {
	return s.Bars != nil && s.Bars.IsWinLoss
}

// DotSize returns the plain marker size, or 0 without dots.
func (s *Settings) DotSize() float64 {
	if s.Line == nil || s.Line.Dots == nil {
		return 0
	}
	return s.Line.Dots.Size
}

// MarkerSize returns the largest marker that may be drawn (dots or the
// hover dot), or 0 when the chart has none.
func (s *Settings) MarkerSize() float64 {
	size := s.DotSize()
	if s.Line != nil {
		if hd := s.Line.HoverDot(); hd != nil {
			size = math.Max(size, hd.Size)
		}
	}
	return size
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	if s.Line != nil {
		l := *s.Line
		l.Stroke = s.Line.Stroke.clone()
		l.Fill = s.Line.Fill.clonePtr()
		l.Dots = s.Line.Dots.clone()
		if s.Line.Hover != nil {
			l.Hover = &LineHover{Dot: s.Line.Hover.Dot.clone()}
		}
		c.Line = &l
	}
	if s.Bars != nil {
		b := *s.Bars
		b.Fill = s.Bars.Fill.clone()
		if s.Bars.Hover != nil {
			b.Hover = &BarsHover{Fill: s.Bars.Hover.Fill.clonePtr()}
		}
		c.Bars = &b
	}
	return &c
}

func (c Color) clone() Color {
	if c.Opacity != nil {
		o := *c.Opacity
		c.Opacity = &o
	}
	return c
}

func (c *Color) clonePtr() *Color {
	if c == nil {
		return nil
	}
	cc := c.clone()
	return &cc
}

func (d *Dots) clone() *Dots {
	if d == nil {
		return nil
	}
	dd := *d
	dd.Stroke = d.Stroke.clonePtr()
	dd.Fill = d.Fill.clone()
	return &dd
}
