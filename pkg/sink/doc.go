// Package sink renders sparkline outputs into files.
//
// # Overview
//
// A "sink" transforms a rendered [sparkline.Output] into a final format:
//
//   - SVG: standalone vector document, optionally with a hover script
//   - JSON: viewport, points, hover zones and primitives for external tools
//   - PDF and PNG: via rsvg-convert
//
// [SVGSurface] is also a drawing surface in its own right. Mount it on a
// chart with [sparkline.WithSurface] and every render, placeholder and
// hover marker update is reflected in [SVGSurface.Bytes].
//
// # SVG Output
//
//	svg := sink.RenderSVG(out, sink.WithSize(), sink.WithHoverScript())
//
// Primitives map 1:1 onto SVG elements. Circles become two-arc paths,
// rectangles are at least one unit high and drawn with crisp edges, and
// point primitives carry data-value, data-x, data-y and data-x-label
// attributes.
//
// # PDF and PNG Output
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
