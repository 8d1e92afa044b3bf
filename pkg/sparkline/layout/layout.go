// Package layout computes the viewport a sparkline is drawn into.
//
// Coordinates are in viewport units. Y values grow upward in point space
// and are flipped when drawn, so the box starts at -maxY.
package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
)

// Pad is the fixed extra space above and below the value range. Some
// renderers round circle edges outward and would otherwise clip them.
const Pad = 1

// Box is a rectangle in viewport units.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// ViewBox formats the box as an SVG viewBox attribute value.
func (b Box) ViewBox() string {
	return strings.Join([]string{num(b.X), num(b.Y), num(b.Width), num(b.Height)}, " ")
}

// Dimensions is the immutable viewport derived for one render.
type Dimensions struct {
	MarginX   float64
	MarginY   float64
	PixelSize float64
	XStep     float64
	StepWidth float64
	Box       Box
	Count     int
}

// New derives dimensions for pts drawn at width x height pixels.
// markerSize is the largest marker diameter in pixels; values <= 0 count
// as 1.
func New(width, height float64, pts []points.Point, markerSize float64) (Dimensions, error) {
	if markerSize <= 0 {
		markerSize = 1
	}
	var valueRange, min, max float64
	if len(pts) > 0 {
		min, max = points.Extent(pts)
		valueRange = points.Range(pts)
	}

	scale := valueRange / height
	if !finite(scale) {
		return Dimensions{}, infinite("height")
	}
	enlarge := scale * markerSize
	minY := min - enlarge/2 - Pad
	maxY := max + enlarge/2 + Pad

	svgHeight := math.Max(maxY-minY, 1)
	svgWidth := svgHeight * (width / height)
	if !finite(svgHeight) || !finite(svgWidth) || !finite(maxY) {
		return Dimensions{}, infinite("dimensions")
	}

	pixelSize := svgHeight / height
	if !finite(pixelSize) {
		return Dimensions{}, infinite("pixels")
	}

	marginX := pixelSize * markerSize / 2
	if !finite(marginX) {
		return Dimensions{}, infinite("margins")
	}

	n := len(pts)
	inner := svgWidth - 2*marginX
	xStep, stepWidth := svgWidth, svgWidth
	if n > 1 {
		xStep = inner / float64(n-1)
	}
	if n > 0 {
		stepWidth = inner / float64(n)
	}
	if !finite(xStep) || !finite(stepWidth) {
		return Dimensions{}, infinite("intervals")
	}

	return Dimensions{
		MarginX:   marginX,
		PixelSize: pixelSize,
		XStep:     xStep,
		StepWidth: stepWidth,
		Box:       Box{X: 0, Y: points.Flip(maxY), Width: svgWidth, Height: svgHeight},
		Count:     n,
	}, nil
}

// StepX is the x coordinate of the 1-based index x with point-to-point
// spacing.
func (d Dimensions) StepX(x float64) float64 {
	return (x - 1) * d.XStep
}

// SlotX is the x coordinate of the center of the slot for the 1-based
// index x.
func (d Dimensions) SlotX(x float64) float64 {
	return (x-1)*d.StepWidth + d.StepWidth/2
}

// Px converts a size in pixels into viewport units.
func (d Dimensions) Px(v float64) float64 {
	return v * d.PixelSize
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func infinite(what string) error {
	return errors.Geometry("sparkline cannot be rendered as it will contain infinite %s, please check settings like width, height and given values", what)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
