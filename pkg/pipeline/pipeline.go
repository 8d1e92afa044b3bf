// Package pipeline turns a series and its settings into rendered
// artifacts.
//
// The CLI and the HTTP server share this code path, so both render,
// cache and report errors the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Values:   value.Floats(1, 2, -1, 4),
//	    Settings: settings.Props{Line: &settings.LineProps{}},
//	    Formats:  []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sparklines/pkg/cache"
	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// ID names the chart in logs and in the SVG root group. When empty it
	// is derived from the input hash, so identical input renders identically.
	ID       string         `json:"id,omitempty"`
	Values   []value.Value  `json:"values"`
	Settings settings.Props `json:"settings"`

	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// HoverScript embeds the interactive hover script into SVG output.
	HoverScript bool `json:"hover_script,omitempty"`
	// HoverAt, when set, renders a snapshot with the pointer at this
	// x offset in pixels from the chart's left edge.
	HoverAt *float64 `json:"hover_at,omitempty"`
	// Scale is the PNG scale factor.
	Scale float64 `json:"scale,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Points are the mapped points of the chart. Nil when every
	// artifact came from the cache.
	Points []points.Point

	// Hovered is the point under HoverAt, if any.
	Hovered *points.Point

	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount int
	RenderTime time.Duration
	Sizes      map[string]int
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks
// and duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.HoverAt != nil && (math.IsNaN(*o.HoverAt) || math.IsInf(*o.HoverAt, 0)) {
		return errors.New(errors.ErrCodeInvalidInput, "hover position must be finite")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatSVG || format == FormatPNG || format == FormatPDF {
		k.HoverScript = o.HoverScript && format == FormatSVG
		k.HoverAt = o.HoverAt
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
