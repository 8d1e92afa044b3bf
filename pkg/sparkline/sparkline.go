package sparkline

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/geometry"
	"github.com/matzehuels/sparklines/pkg/sparkline/hover"
	"github.com/matzehuels/sparklines/pkg/sparkline/layout"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

// Placeholder texts shown in the error state.
const (
	PlaceholderLogged = "Sparklines error (check log)"
	PlaceholderSilent = "Sparklines error"
)

// WarnNoValues is logged when a render has nothing to draw.
const WarnNoValues = "cannot draw sparklines without values"

// Logger is the logging capability a chart reports to. *log.Logger from
// charmbracelet/log satisfies it.
type Logger interface {
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// State is the render lifecycle of a chart.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateRendered
	StateError
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	}
	return "uninitialized"
}

// Output is the result of one render.
type Output struct {
	ID         string
	State      State
	Settings   *settings.Settings
	Points     []points.Point
	Dimensions layout.Dimensions
	View       *surface.View
	Index      hover.Index

	// Err and Placeholder are set in the error state.
	Err         error
	Placeholder string
}

// Option configures a SparkLines instance.
type Option func(*SparkLines)

// WithID sets the id reported in every log line.
func WithID(id string) Option {
	return func(c *SparkLines) { c.id = id }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *SparkLines) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithoutLogging discards all log output and shortens the placeholder.
func WithoutLogging() Option {
	return func(c *SparkLines) {
		c.logger = discard()
		c.logging = false
	}
}

// WithSurface sets the drawing surface. Without one an in-memory
// surface.Recorder is used.
func WithSurface(s surface.Surface) Option {
	return func(c *SparkLines) {
		if s != nil {
			c.surface = s
		}
	}
}

// SparkLines is one chart instance. It is not safe for concurrent use.
type SparkLines struct {
	id      string
	logger  Logger
	logging bool
	surface surface.Surface

	settings *settings.Settings
	values   []value.Value
	state    State
	mounted  bool
	tracker  *hover.Tracker
	last     *Output
}

// New creates a chart. Settings default to a line chart on first render.
func New(opts ...Option) *SparkLines {
	c := &SparkLines{
		logger:  discard(),
		logging: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	if c.surface == nil {
		c.surface = surface.NewRecorder()
	}
	return c
}

func discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// ID returns the chart id.
func (c *SparkLines) ID() string { return c.id }

// State returns the current lifecycle state.
func (c *SparkLines) State() State { return c.state }

// Settings returns the resolved settings, or nil before any were set.
func (c *SparkLines) Settings() *settings.Settings { return c.settings }

// Values returns the current values.
func (c *SparkLines) Values() []value.Value { return c.values }

// Last returns the output of the most recent render, or nil.
func (c *SparkLines) Last() *Output { return c.last }

// Surface returns the drawing surface.
func (c *SparkLines) Surface() surface.Surface { return c.surface }

// =============================================================================
// Updates
// =============================================================================

// SetSettings resolves p, or patches the current settings with it when
// some were already set. Invalid props put the chart into the error
// state, keep the previous settings and are returned.
func (c *SparkLines) SetSettings(p settings.Props) error {
	var next *settings.Settings
	var err error
	if c.settings == nil {
		next, err = settings.New(p)
	} else {
		next, err = c.settings.Update(p)
	}
	if err != nil {
		c.fail(err)
		return err
	}
	c.settings = next
	return c.changed()
}

// SetSettingsJSON is SetSettings for a JSON document.
func (c *SparkLines) SetSettingsJSON(data []byte) error {
	p, err := settings.ParseJSON(data)
	if err != nil {
		c.fail(err)
		return err
	}
	return c.SetSettings(p)
}

// ReplaceSettings resolves p from scratch, discarding the current
// settings.
func (c *SparkLines) ReplaceSettings(p settings.Props) error {
	next, err := settings.New(p)
	if err != nil {
		c.fail(err)
		return err
	}
	c.settings = next
	return c.changed()
}

// SetValues replaces the values.
func (c *SparkLines) SetValues(vals []value.Value) error {
	c.values = vals
	return c.changed()
}

// SetValuesJSON replaces the values with a JSON array. Malformed input
// puts the chart into the error state and is returned.
func (c *SparkLines) SetValuesJSON(data []byte) error {
	vals, err := value.ParseJSON(data)
	if err != nil {
		c.fail(err)
		return err
	}
	return c.SetValues(vals)
}

// changed re-renders a chart that already has output and otherwise
// defers until the first Render.
func (c *SparkLines) changed() error {
	if c.mounted {
		_, err := c.Render()
		return err
	}
	if c.state == StateUninitialized {
		c.state = StateReady
	}
	return nil
}

// =============================================================================
// Rendering
// =============================================================================

// Render rebuilds all primitives and mounts them. Configuration, value
// and geometry errors leave the chart in the error state and are
// reported on the returned output; any other error is returned.
func (c *SparkLines) Render() (*Output, error) {
	c.mounted = true
	c.tracker = nil
	if c.settings == nil {
		s, err := settings.New(settings.Props{})
		if err != nil {
			return nil, err
		}
		c.settings = s
	}

	out, err := c.build(c.settings)
	if err != nil {
		if errors.IsRender(err) {
			return c.fail(err), nil
		}
		return nil, err
	}
	if err := c.surface.Mount(out.View, c); err != nil {
		return nil, err
	}
	c.state = StateRendered
	c.last = out
	return out, nil
}

func (c *SparkLines) build(s *settings.Settings) (*Output, error) {
	pts, err := points.Map(c.values, points.OptionsFor(s))
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		c.logger.Warn(WarnNoValues, "sparkline", c.id)
	}
	pts, err = points.Rescale(pts, s.Height)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	dims, err := layout.New(s.Width, s.Height, pts, s.MarkerSize())
	if err != nil {
		return nil, err
	}

	root := &surface.Group{ID: "sparkline-" + c.id}
	if s.HasBars() {
		dr := geometry.Bars(dims, pts, s.Bars)
		c.warn(dr.Warnings)
		root.Add(dr.Group)
	}
	if s.HasLine() {
		dr, err := geometry.Lines(dims, pts, s.Line, s.HasBars())
		if err != nil {
			return nil, err
		}
		c.warn(dr.Warnings)
		root.Add(dr.Group)
	}
	c.tracker = hover.NewTracker(dims, s, pts, c.surface)
	root.Add(c.tracker.Group())

	return &Output{
		ID:         c.id,
		State:      StateRendered,
		Settings:   s,
		Points:     pts,
		Dimensions: dims,
		View: &surface.View{
			Box:    dims.Box,
			Width:  s.Width,
			Height: s.Height,
			Root:   root,
		},
		Index: c.tracker.Index(),
	}, nil
}

func (c *SparkLines) warn(msgs []string) {
	for _, m := range msgs {
		c.logger.Warn(m, "sparkline", c.id)
	}
}

// fail enters the error state. Surfaces are only touched once the chart
// has been rendered.
func (c *SparkLines) fail(err error) *Output {
	c.state = StateError
	c.tracker = nil
	c.logger.Error(errors.UserMessage(err), "sparkline", c.id, "kind", errors.Kind(err))

	placeholder := PlaceholderSilent
	if c.logging {
		placeholder = PlaceholderLogged
	}
	out := &Output{ID: c.id, State: StateError, Settings: c.settings, Err: err, Placeholder: placeholder}
	if c.mounted {
		if serr := c.surface.ShowError(placeholder); serr != nil {
			c.logger.Error("cannot show placeholder", "sparkline", c.id, "err", serr)
		}
		c.last = out
	}
	return out
}

// =============================================================================
// Pointer events
// =============================================================================

// PointerMove forwards a pointer move in client coordinates to the hover
// tracker of the current render.
func (c *SparkLines) PointerMove(clientX, clientY float64) {
	if c.tracker != nil {
		c.tracker.Move(clientX, clientY)
	}
}

// PointerLeave hides the hover markers.
func (c *SparkLines) PointerLeave() {
	if c.tracker != nil {
		c.tracker.Leave()
	}
}

// Hover is like PointerMove but reports the hovered point.
func (c *SparkLines) Hover(clientX, clientY float64) (points.Point, bool) {
	if c.tracker == nil {
		return points.Point{}, false
	}
	return c.tracker.Move(clientX, clientY)
}
