package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sparklines/pkg/errors"
)

// ColorProps is the partial form of Color.
type ColorProps struct {
	Color                  *string  `json:"color,omitempty" toml:"color"`
	ColorForPositiveValues *string  `json:"colorForPositiveValues,omitempty" toml:"colorForPositiveValues"`
	ColorForNegativeValues *string  `json:"colorForNegativeValues,omitempty" toml:"colorForNegativeValues"`
	Opacity                *float64 `json:"opacity,omitempty" toml:"opacity"`
}

// DotsProps is the partial form of Dots.
type DotsProps struct {
	Size        *float64    `json:"size,omitempty" toml:"size"`
	Stroke      *ColorProps `json:"stroke,omitempty" toml:"stroke"`
	StrokeWidth *float64    `json:"strokeWidth,omitempty" toml:"strokeWidth"`
	Fill        *ColorProps `json:"fill,omitempty" toml:"fill"`
}

// LineHoverProps is the partial form of LineHover.
type LineHoverProps struct {
	Dot *DotsProps `json:"dot,omitempty" toml:"dot"`
}

// LineProps is the partial form of Line. An empty LineProps draws a
// default line.
type LineProps struct {
	StrokeWidth *float64        `json:"strokeWidth,omitempty" toml:"strokeWidth"`
	Stroke      *ColorProps     `json:"stroke,omitempty" toml:"stroke"`
	Fill        *ColorProps     `json:"fill,omitempty" toml:"fill"`
	Dots        *DotsProps      `json:"dots,omitempty" toml:"dots"`
	Hover       *LineHoverProps `json:"hover,omitempty" toml:"hover"`
}

// BarsHoverProps is the partial form of BarsHover.
type BarsHoverProps struct {
	Fill *ColorProps `json:"fill,omitempty" toml:"fill"`
}

// BarsProps is the partial form of Bars.
type BarsProps struct {
	IsWinLoss        *bool           `json:"isWinLoss,omitempty" toml:"isWinLoss"`
	MarginPercentage *float64        `json:"marginPercentage,omitempty" toml:"marginPercentage"`
	Fill             *ColorProps     `json:"fill,omitempty" toml:"fill"`
	Hover            *BarsHoverProps `json:"hover,omitempty" toml:"hover"`
}

// Props is the user-facing partial configuration. Nil fields are unset.
type Props struct {
	Width                 *float64   `json:"width,omitempty" toml:"width"`
	Height                *float64   `json:"height,omitempty" toml:"height"`
	ShowUndefinedValuesAs *Mode      `json:"showUndefinedValuesAs,omitempty" toml:"showUndefinedValuesAs"`
	OnHover               HoverFunc  `json:"-" toml:"-"`
	Line                  *LineProps `json:"line,omitempty" toml:"line"`
	Bars                  *BarsProps `json:"bars,omitempty" toml:"bars"`
}

// Ptr returns a pointer to v. It keeps literal Props readable.
func Ptr[T any](v T) *T { return &v }

// ParseJSON decodes a JSON settings document. Unknown keys are rejected.
func ParseJSON(data []byte) (Props, error) {
	var p Props
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return p, errors.Configuration("settings must be an object")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Props{}, errors.Wrap(errors.ErrCodeConfiguration, err, "malformed settings document")
	}
	return p, nil
}

// ParseTOML decodes a TOML settings document. Unknown keys are rejected.
func ParseTOML(data []byte) (Props, error) {
	var p Props
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return Props{}, errors.Wrap(errors.ErrCodeConfiguration, err, "malformed settings document")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Props{}, errors.Configuration("unknown settings keys: %s", strings.Join(keys, ", "))
	}
	return p, nil
}

// LoadFile reads settings from a .json or .toml file.
func LoadFile(path string) (Props, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Props{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read settings %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Props{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported settings file %s (want .json or .toml)", path)
	}
}
