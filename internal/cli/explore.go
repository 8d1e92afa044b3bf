package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sparklines/pkg/sparkline"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/surface"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

// exploreSteps is the number of pointer steps across the chart width.
const exploreSteps = 40

var (
	blocks = []rune("▁▂▃▄▅▆▇█")

	exploreCursorStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:   "explore [values-file|-]",
		Short: "Move a pointer across a chart in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(in.values, args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			props, err := in.loadSettings()
			if err != nil {
				return err
			}
			m, err := newExploreModel(values, props, sparkline.WithLogger(loggerFromContext(cmd.Context())))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	in.register(cmd)
	return cmd
}

// hoverState receives the chart's hover callback.
type hoverState struct {
	value float64
	label string
	ok    bool
}

// exploreModel drives a chart's pointer handling with the keyboard. The
// pointer moves in pixels across a recorder surface of the chart's size.
type exploreModel struct {
	chart  *sparkline.SparkLines
	points []points.Point
	width  float64
	x      float64
	hover  *hoverState
	cursor int // index into points, -1 when nothing is hovered
}

func newExploreModel(values []value.Value, props settings.Props, opts ...sparkline.Option) (exploreModel, error) {
	h := &hoverState{}
	props.OnHover = func(v float64, label string) {
		*h = hoverState{value: v, label: label, ok: true}
	}

	chart := sparkline.New(append(opts, sparkline.WithSurface(surface.NewRecorder()))...)
	if err := chart.SetSettings(props); err != nil {
		return exploreModel{}, err
	}
	if err := chart.SetValues(values); err != nil {
		return exploreModel{}, err
	}
	out, err := chart.Render()
	if err != nil {
		return exploreModel{}, err
	}
	if out.State == sparkline.StateError {
		return exploreModel{}, out.Err
	}

	m := exploreModel{
		chart:  chart,
		points: out.Points,
		width:  out.View.Width,
		hover:  h,
	}
	m.move(0)
	return m, nil
}

func (m *exploreModel) move(x float64) {
	m.x = math.Max(0, math.Min(m.width, x))
	m.hover.ok = false
	m.cursor = -1
	p, ok := m.chart.Hover(m.x, 0)
	if !ok {
		return
	}
	for i, q := range m.points {
		if q.X == p.X {
			m.cursor = i
			break
		}
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	step := m.width / exploreSteps
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.chart.PointerLeave()
		m.hover.ok = false
		m.cursor = -1
		return m, tea.Quit
	case "left", "h":
		m.move(m.x - step)
	case "right", "l":
		m.move(m.x + step)
	case "home":
		m.move(0)
	case "end":
		m.move(m.width)
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sparkline Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ move  home/end jump  q quit"))
	b.WriteString("\n\n  ")
	b.WriteString(m.preview())
	b.WriteString("\n\n  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("x %.1fpx  %s ", m.x, iconInfo)))
	if m.hover.ok {
		b.WriteString(StyleValue.Render(formatHovered(m.hover.label, m.hover.value)))
	} else {
		b.WriteString(StyleDim.Render("no value"))
	}
	b.WriteString("\n")
	return b.String()
}

// preview draws one block character per point, scaled between the
// lowest and highest defined point.
func (m exploreModel) preview() string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range m.points {
		if p.Defined {
			lo, hi = math.Min(lo, p.Y), math.Max(hi, p.Y)
		}
	}

	var b strings.Builder
	for i, p := range m.points {
		ch := " "
		if p.Defined {
			level := 0
			if hi > lo {
				level = int(math.Round((p.Y - lo) / (hi - lo) * float64(len(blocks)-1)))
			}
			ch = string(blocks[level])
		}
		style := stylePositive
		if p.Defined && p.Y < 0 {
			style = styleNegative
		}
		if i == m.cursor {
			style = exploreCursorStyle
		}
		b.WriteString(style.Render(ch))
	}
	return b.String()
}
