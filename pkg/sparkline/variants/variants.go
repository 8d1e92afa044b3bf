// Package variants provides preconfigured chart kinds.
package variants

import (
	"sort"
	"strings"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

// DefaultBarMargin is the slot inset used by column and win/loss charts.
const DefaultBarMargin = 15

// Default win/loss colors.
const (
	ColorWin  = "green"
	ColorLoss = "red"
)

// Variant produces settings for one chart kind.
type Variant interface {
	Props() settings.Props
}

// Markers adds dots to a Graph.
type Markers struct {
	Color string
	Size  float64
}

// Graph is a line chart. Zero fields take the settings defaults.
type Graph struct {
	Width, Height float64
	Color         string
	LineWidth     float64
	Markers       *Markers
}

func (g Graph) Props() settings.Props {
	color := orDefault(g.Color)
	line := &settings.LineProps{
		Stroke:      &settings.ColorProps{Color: &color},
		StrokeWidth: positive(g.LineWidth),
	}
	if g.Markers != nil {
		mc := color
		if g.Markers.Color != "" {
			mc = g.Markers.Color
		}
		line.Dots = &settings.DotsProps{
			Fill: &settings.ColorProps{Color: &mc},
			Size: positive(g.Markers.Size),
		}
	}
	return settings.Props{Width: positive(g.Width), Height: positive(g.Height), Line: line}
}

// ColumnChart is a bar chart.
type ColumnChart struct {
	Width, Height float64
	Color         string
}

func (c ColumnChart) Props() settings.Props {
	color := orDefault(c.Color)
	return settings.Props{
		Width:  positive(c.Width),
		Height: positive(c.Height),
		Bars: &settings.BarsProps{
			MarginPercentage: settings.Ptr(float64(DefaultBarMargin)),
			Fill:             &settings.ColorProps{Color: &color},
		},
	}
}

// WinLoss is a bar chart of fixed-height wins and losses.
type WinLoss struct {
	Width, Height       float64
	ColorWin, ColorLoss string
}

func (w WinLoss) Props() settings.Props {
	win, loss := w.ColorWin, w.ColorLoss
	if win == "" {
		win = ColorWin
	}
	if loss == "" {
		loss = ColorLoss
	}
	return settings.Props{
		Width:  positive(w.Width),
		Height: positive(w.Height),
		Bars: &settings.BarsProps{
			IsWinLoss:        settings.Ptr(true),
			MarginPercentage: settings.Ptr(float64(DefaultBarMargin)),
			Fill: &settings.ColorProps{
				ColorForPositiveValues: &win,
				ColorForNegativeValues: &loss,
			},
		},
	}
}

// New creates a chart for v with values already set.
func New(v Variant, values []value.Value, opts ...sparkline.Option) (*sparkline.SparkLines, error) {
	c := sparkline.New(opts...)
	if err := c.SetSettings(v.Props()); err != nil {
		return nil, err
	}
	if err := c.SetValues(values); err != nil {
		return nil, err
	}
	return c, nil
}

var presets = map[string]func(width, height float64) Variant{
	"graph":   func(w, h float64) Variant { return Graph{Width: w, Height: h} },
	"column":  func(w, h float64) Variant { return ColumnChart{Width: w, Height: h} },
	"winloss": func(w, h float64) Variant { return WinLoss{Width: w, Height: h} },
}

// Names lists the preset names accepted by Preset.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset returns the named variant. Zero width or height take defaults.
func Preset(name string, width, height float64) (Variant, error) {
	f, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown preset %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return f(width, height), nil
}

func orDefault(color string) string {
	if color == "" {
		return settings.DefaultColor
	}
	return color
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}
