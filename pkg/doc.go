// Package pkg provides the libraries behind the sparklines tool.
//
// # Overview
//
// A sparkline is a word-sized chart: a line, columns or win/loss bars drawn
// from a short series of values, with an optional hover marker. The pkg
// directory is organized into three areas:
//
//  1. [sparkline] - Chart model and geometry (values, settings, points,
//     layout, primitives, hover)
//  2. [sink] - Output formats (SVG, JSON, PNG, PDF)
//  3. [pipeline] - Orchestration with caching, used by the CLI and server
//
// # Architecture
//
// The data flow through one render:
//
//	values + settings
//	         ↓
//	    [sparkline/points] (map to coordinates, rescale)
//	         ↓
//	    [sparkline/layout] (viewBox, margins, steps)
//	         ↓
//	    [sparkline/geometry] (segments, lines, bars, dots)
//	         ↓
//	    [sparkline/surface] (primitive tree mounted on a surface)
//	         ↓
//	    [sink] SVG/JSON/PNG/PDF output
//
// # Quick Start
//
//	chart := sparkline.New(sparkline.WithID("cpu"))
//	_ = chart.SetSettings(settings.Props{Line: &settings.LineProps{}})
//	_ = chart.SetValues(value.Floats(3, 5, 2, -1, 4))
//	out, _ := chart.Render()
//	svg := sink.RenderSVG(out, sink.WithSize())
//
// Presets cover the common chart kinds:
//
//	chart, _ := variants.New(variants.WinLoss{Width: 80}, value.Floats(1, -1, 1, 1))
//
// # Main Packages
//
// [sparkline] - The chart orchestrator. Holds settings and values, renders
// on change once mounted, and enters an error state with a placeholder on
// configuration, value or geometry errors.
//
// [sparkline/settings] - Partial props, resolved settings, JSON and TOML
// loading, copy-on-write updates.
//
// [sparkline/geometry] - Zero-crossing segmentation, line and fill paths,
// dots, bars.
//
// [sparkline/hover] - Hover zones and the marker tracker.
//
// [sparkline/variants] - Graph, column chart and win/loss presets.
//
// [cache] - Artifact cache with null, file and redis backends.
//
// [observability] - Render and cache hooks with a Prometheus implementation.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
//	go test ./...            # All tests
//	go test -run Example ./pkg/...  # Examples only
//
// PNG and PDF conversion shell out to rsvg-convert and are not covered by
// the unit tests.
//
// [sparkline]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline
// [sparkline/points]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/points
// [sparkline/layout]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/layout
// [sparkline/geometry]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/geometry
// [sparkline/surface]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/surface
// [sparkline/settings]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/settings
// [sparkline/hover]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/hover
// [sparkline/variants]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sparkline/variants
// [sink]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sparklines/pkg/errors
package pkg
