package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent   = lipgloss.Color("38")  // teal
	colorPositive = lipgloss.Color("71")  // green, matches the default win colour
	colorNegative = lipgloss.Color("167") // red, matches the default loss colour
	colorWarn     = lipgloss.Color("214")
	colorText     = lipgloss.Color("252")
	colorMuted    = lipgloss.Color("243")
)

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim   = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue = lipgloss.NewStyle().Foreground(colorText)

	stylePositive = lipgloss.NewStyle().Foreground(colorPositive)
	styleNegative = lipgloss.NewStyle().Foreground(colorNegative)
	styleWarn     = lipgloss.NewStyle().Foreground(colorWarn)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// =============================================================================
// Status lines
// =============================================================================

// status prints human-oriented progress lines. Artifacts written to stdout
// never go through it.
type status struct{ w io.Writer }

func newStatus(w io.Writer) status { return status{w: w} }

func (s status) line(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(s.w, icon.Render(glyph)+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.line(stylePositive, iconSuccess, fmt.Sprintf(format, args...))
}

func (s status) warn(format string, args ...any) {
	s.line(styleWarn, iconWarning, styleWarn.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.line(StyleDim, iconInfo, fmt.Sprintf(format, args...))
}

func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints one written artifact, e.g. "→ trend.svg 1.2 kB".
func (s status) file(path string, size int) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path)+" "+StyleDim.Render(humanize.Bytes(uint64(size))))
}

// stats prints "N points · 180µs · fresh" for a render.
func (s status) stats(pointCount int, took time.Duration, cached bool) {
	parts := []string{fmt.Sprintf("%d points", pointCount)}
	if took > 0 {
		parts = append(parts, took.Round(time.Microsecond).String())
	}
	origin := StyleDim.Render("fresh")
	if cached {
		origin = stylePositive.Render("cached")
	}
	fmt.Fprintln(s.w, "  "+StyleDim.Render(strings.Join(parts, separator)+separator)+origin)
}
