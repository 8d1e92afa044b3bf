package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
)

func TestLoadValues(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	jsonFile := write("values.json", `[1, null, {"label": "wed", "value": 3}]`)
	listFile := write("values.txt", "1\n2\n\n4\n")

	tests := []struct {
		name   string
		inline string
		args   []string
		stdin  string
		want   int
		labels string
	}{
		{name: "inline", inline: "1,3,,-4", want: 4},
		{name: "inline labels", inline: "mon:1,tue:2", want: 2, labels: "mon"},
		{name: "json file", args: []string{jsonFile}, want: 3, labels: "wed"},
		{name: "list file", args: []string{listFile}, want: 4},
		{name: "stdin", args: []string{"-"}, stdin: "5,6,7", want: 3},
		{name: "inline wins", inline: "1", args: []string{listFile}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadValues(tt.inline, tt.args, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if tt.labels != "" {
				found := false
				for _, v := range got {
					found = found || v.Label == tt.labels
				}
				if !found {
					t.Errorf("label %q not found in %#v", tt.labels, got)
				}
			}
		})
	}
}

func TestLoadValuesErrors(t *testing.T) {
	if _, err := loadValues("", nil, strings.NewReader("")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no input: err = %v", err)
	}
	if _, err := loadValues("", []string{filepath.Join(t.TempDir(), "missing")}, nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing file: err = %v", err)
	}
	if _, err := loadValues("", []string{"-"}, strings.NewReader(`[true]`)); !errors.Is(err, errors.ErrCodeValue) {
		t.Errorf("bad json: err = %v", err)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		in := inputOpts{}
		p, err := in.loadSettings()
		if err != nil {
			t.Fatal(err)
		}
		if p.Line != nil || p.Bars != nil || p.Width != nil {
			t.Errorf("empty options should leave settings unset: %+v", p)
		}
	})

	t.Run("preset with overrides", func(t *testing.T) {
		in := inputOpts{preset: "column", width: 80, height: 20, color: "navy"}
		p, err := in.loadSettings()
		if err != nil {
			t.Fatal(err)
		}
		if *p.Width != 80 || *p.Height != 20 {
			t.Errorf("size = %v x %v", *p.Width, *p.Height)
		}
		if p.Bars == nil || *p.Bars.Fill.Color != "navy" {
			t.Error("color should override the bar fill")
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		in := inputOpts{preset: "pie"}
		if _, err := in.loadSettings(); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("toml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chart.toml")
		doc := "width = 150\n\n[line]\nstrokeWidth = 2\n"
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
		in := inputOpts{settings: path, missing: "unchanged"}
		p, err := in.loadSettings()
		if err != nil {
			t.Fatal(err)
		}
		if *p.Width != 150 || *p.Line.StrokeWidth != 2 {
			t.Errorf("settings = %+v", p)
		}
		if *p.ShowUndefinedValuesAs != settings.ShowUnchanged {
			t.Errorf("missing mode = %v", *p.ShowUndefinedValuesAs)
		}
	})
}

func TestApplyOverridesColor(t *testing.T) {
	tests := []struct {
		name      string
		props     settings.Props
		wantLine  bool
		wantBars  bool
		sameColor bool
	}{
		{name: "empty becomes line", props: settings.Props{}, wantLine: true},
		{name: "line", props: settings.Props{Line: &settings.LineProps{}}, wantLine: true},
		{name: "bars", props: settings.Props{Bars: &settings.BarsProps{}}, wantBars: true},
		{name: "win/loss keeps colors", props: settings.Props{Bars: &settings.BarsProps{IsWinLoss: settings.Ptr(true)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := inputOpts{color: "teal"}
			p := tt.props
			in.applyOverrides(&p)
			lineSet := p.Line != nil && p.Line.Stroke != nil && *p.Line.Stroke.Color == "teal"
			barsSet := p.Bars != nil && p.Bars.Fill != nil && p.Bars.Fill.Color != nil && *p.Bars.Fill.Color == "teal"
			if lineSet != tt.wantLine || barsSet != tt.wantBars {
				t.Errorf("line colored %v, bars colored %v", lineSet, barsSet)
			}
		})
	}
}
