package sink

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/sparklines/pkg/sparkline"
)

// DefaultPNGScale renders PNGs at twice the requested size.
const DefaultPNGScale = 2.0

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// PNGOption configures RenderPNG.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor. Values <= 0 select DefaultPNGScale.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes a chart output. The intermediate SVG is always
// sized so rsvg-convert knows the pixel dimensions.
func RenderPNG(ctx context.Context, out *sparkline.Output, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	return ToPNG(ctx, RenderSVG(out, WithSize()), r.scale)
}

// RenderPDF converts a chart output to a single-page PDF.
func RenderPDF(ctx context.Context, out *sparkline.Output) ([]byte, error) {
	return ToPDF(ctx, RenderSVG(out, WithSize()))
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
