// Package sparkline renders a single value series as a small inline chart.
//
// A [SparkLines] instance owns resolved settings, the current values and
// the last render. Render maps values to points, computes the viewport,
// builds line, bar and hover primitives and mounts them on a
// [surface.Surface]:
//
//	chart := sparkline.New(sparkline.WithSurface(surf))
//	if err := chart.SetSettings(settings.Props{Width: settings.Ptr(100.0)}); err != nil {
//	    return err
//	}
//	chart.SetValues(value.Floats(1, 3, 9, -4, 7))
//	out, err := chart.Render()
//
// Invalid settings, unconvertible values and degenerate geometry do not
// fail Render. They move the chart into [StateError], which shows a
// placeholder and logs the cause. Only unexpected errors are returned.
//
// Subpackages hold the individual stages: value, settings, points,
// layout, geometry, hover and surface.
package sparkline
