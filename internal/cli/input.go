package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
	"github.com/matzehuels/sparklines/pkg/sparkline/variants"
)

// inputOpts are the flags describing one chart: where its values come
// from and how it is configured.
type inputOpts struct {
	values   string
	settings string
	preset   string
	width    float64
	height   float64
	color    string
	missing  string
}

func (o *inputOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.values, "values", "", `inline series, e.g. "1,3,,-4" or "mon:3,tue:5"`)
	f.StringVarP(&o.settings, "settings", "s", "", "settings file (.json or .toml)")
	f.StringVarP(&o.preset, "preset", "p", "", "chart preset: graph, column or winloss")
	f.Float64Var(&o.width, "width", 0, "chart width in pixels")
	f.Float64Var(&o.height, "height", 0, "chart height in pixels")
	f.StringVar(&o.color, "color", "", "main chart color")
	f.StringVar(&o.missing, "missing", "", "how to show missing values: missing or unchanged")
	cmd.MarkFlagsMutuallyExclusive("settings", "preset")
	_ = cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return variants.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

// loadValues reads the series from --values, a file argument or stdin
// ("-"). Files holding a JSON array are decoded as JSON, anything else
// as a comma separated list.
func loadValues(inline string, args []string, stdin io.Reader) ([]value.Value, error) {
	if inline != "" {
		return value.ParseList(inline), nil
	}
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no values given (pass a file, - for stdin, or --values)")
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read values %s", args[0])
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return value.ParseJSON(data)
	}
	return value.ParseList(string(bytes.ReplaceAll(data, []byte("\n"), []byte(",")))), nil
}

// loadSettings builds the chart settings from a preset or a settings
// file, then applies the flag overrides.
func (o *inputOpts) loadSettings() (settings.Props, error) {
	var p settings.Props
	switch {
	case o.preset != "":
		v, err := variants.Preset(o.preset, o.width, o.height)
		if err != nil {
			return p, err
		}
		p = v.Props()
	case o.settings != "":
		var err error
		if p, err = settings.LoadFile(o.settings); err != nil {
			return p, err
		}
	}
	o.applyOverrides(&p)
	return p, nil
}

func (o *inputOpts) applyOverrides(p *settings.Props) {
	if o.width > 0 {
		p.Width = settings.Ptr(o.width)
	}
	if o.height > 0 {
		p.Height = settings.Ptr(o.height)
	}
	if o.missing != "" {
		p.ShowUndefinedValuesAs = settings.Ptr(settings.Mode(o.missing))
	}
	if o.color == "" {
		return
	}
	if p.Line == nil && p.Bars == nil {
		p.Line = &settings.LineProps{}
	}
	if p.Line != nil {
		if p.Line.Stroke == nil {
			p.Line.Stroke = &settings.ColorProps{}
		}
		p.Line.Stroke.Color = settings.Ptr(o.color)
	}
	if p.Bars != nil && (p.Bars.IsWinLoss == nil || !*p.Bars.IsWinLoss) {
		if p.Bars.Fill == nil {
			p.Bars.Fill = &settings.ColorProps{}
		}
		p.Bars.Fill.Color = settings.Ptr(o.color)
	}
}
