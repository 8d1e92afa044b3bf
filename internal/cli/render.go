package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparklines/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input       inputOpts
	cache       cacheOpts
	id          string
	formats     string
	output      string
	hoverScript bool
	hoverAt     float64
	scale       float64
	refresh     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [values-file|-]",
		Short: "Render a series to SVG, JSON, PNG or PDF",
		Long: `Render a series of values as a sparkline.

Values come from --values, a file argument or stdin ("-"). Files may hold a
JSON array or a comma/newline separated list; "label:value" elements set
x labels and empty elements are missing.`,
		Example: `  sparklines render --values "1,3,,-4,2" -o trend.svg
  sparklines render data.json --preset column --format svg,png
  sparklines render - --settings chart.toml -o - < data.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, opts)
		},
	}

	opts.input.register(cmd)
	opts.cache.register(cmd)
	f := cmd.Flags()
	f.StringVar(&opts.id, "id", "", "chart id used in logs and the SVG root group")
	f.StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output formats (svg,json,png,pdf)")
	f.StringVarP(&opts.output, "output", "o", "", `output path, or "-" for stdout (default: sparkline.<format>)`)
	f.BoolVar(&opts.hoverScript, "hover-script", false, "embed the interactive hover script into SVG output")
	f.Float64Var(&opts.hoverAt, "hover-at", 0, "render with the pointer at this x offset in pixels")
	f.Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 2)")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	values, err := loadValues(opts.input.values, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	props, err := opts.input.loadSettings()
	if err != nil {
		return err
	}
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	paths, err := outputPaths(opts.output, formats)
	if err != nil {
		return err
	}

	p := pipeline.Options{
		ID:          opts.id,
		Values:      values,
		Settings:    props,
		Formats:     formats,
		Refresh:     opts.refresh,
		HoverScript: opts.hoverScript,
		Scale:       opts.scale,
		Logger:      logger,
	}
	if cmd.Flags().Changed("hover-at") {
		p.HoverAt = &opts.hoverAt
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	watch := startStopwatch(logger)
	result, err := runner.Execute(ctx, p)
	if err != nil {
		return err
	}
	watch.stop("rendered sparkline", "formats", formats)

	if paths == nil {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[formats[0]])
		return err
	}

	for _, format := range formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}
	out := newStatus(cmd.OutOrStdout())
	out.success("Rendered %d artifact(s)", len(formats))
	for _, format := range formats {
		out.file(paths[format], len(result.Artifacts[format]))
	}
	out.stats(result.Stats.PointCount, result.Stats.RenderTime, result.CacheHit)
	switch {
	case result.Hovered != nil:
		out.detail("hover: %s", formatHovered(result.Hovered.Label, result.Hovered.Value))
	case p.HoverAt != nil:
		out.warn("no value under x=%gpx", *p.HoverAt)
	}
	return nil
}

// outputPaths maps each format to its output file. A nil map means
// stdout, which takes exactly one format. An output with an extension
// names the file of a single format; otherwise it is the base name.
func outputPaths(output string, formats []string) (map[string]string, error) {
	if output == "-" {
		if len(formats) != 1 {
			return nil, fmt.Errorf("stdout output takes exactly one format, got %s", strings.Join(formats, ","))
		}
		return nil, nil
	}
	if output == "" {
		output = "sparkline"
	}

	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && ext != "" {
		paths[formats[0]] = output
		return paths, nil
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

func formatHovered(label string, v float64) string {
	s := fmt.Sprintf("%g", v)
	if label != "" {
		return label + " = " + s
	}
	return s
}
