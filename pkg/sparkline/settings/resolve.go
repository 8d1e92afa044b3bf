package settings

import (
	"github.com/matzehuels/sparklines/pkg/errors"
)

// New resolves props into a validated snapshot. Without line or bars
// props a default line chart is assumed.
func New(p Props) (*Settings, error) {
	s := &Settings{
		Width:                 valueOr(p.Width, DefaultWidth),
		Height:                valueOr(p.Height, DefaultHeight),
		ShowUndefinedValuesAs: valueOr(p.ShowUndefinedValuesAs, ShowMissing),
		OnHover:               p.OnHover,
	}
	if p.Line != nil || p.Bars == nil {
		s.Line = resolveLine(p.Line)
	}
	if p.Bars != nil {
		s.Bars = resolveBars(p.Bars)
	}
	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies p to a copy of s and validates the result. Only fields
// whose subtree already exists are touched: Update never adds or removes
// a chart kind, dots, fill or hover marker. On error s is unchanged and
// nil is returned.
func (s *Settings) Update(p Props) (*Settings, error) {
	next := s.Clone()
	setIf(&next.Width, p.Width)
	setIf(&next.Height, p.Height)
	setIf(&next.ShowUndefinedValuesAs, p.ShowUndefinedValuesAs)
	if p.OnHover != nil {
		next.OnHover = p.OnHover
	}

	if l, lp := next.Line, p.Line; l != nil && lp != nil {
		setIf(&l.StrokeWidth, lp.StrokeWidth)
		if lp.Stroke != nil {
			l.Stroke = mergeColor(l.Stroke, lp.Stroke)
		}
		if lp.Fill != nil && l.Fill != nil {
			merged := mergeColor(*l.Fill, lp.Fill)
			l.Fill = &merged
		}
		if lp.Dots != nil && l.Dots != nil {
			updateDots(l.Dots, lp.Dots)
		}
		if lp.Hover != nil && lp.Hover.Dot != nil && l.HoverDot() != nil {
			updateDots(l.Hover.Dot, lp.Hover.Dot)
		}
	}

	if b, bp := next.Bars, p.Bars; b != nil && bp != nil {
		setIf(&b.IsWinLoss, bp.IsWinLoss)
		setIf(&b.MarginPercentage, bp.MarginPercentage)
		if bp.Fill != nil {
			b.Fill = mergeColor(b.Fill, bp.Fill)
		}
		if bp.Hover != nil && bp.Hover.Fill != nil && b.HoverFill() != nil {
			merged := mergeColor(*b.Hover.Fill, bp.Hover.Fill)
			b.Hover.Fill = &merged
		}
	}

	if err := validate(next); err != nil {
		return nil, err
	}
	return next, nil
}

func updateDots(d *Dots, p *DotsProps) {
	setIf(&d.Size, p.Size)
	if p.Stroke != nil && d.Stroke != nil {
		merged := mergeColor(*d.Stroke, p.Stroke)
		d.Stroke = &merged
	}
	if p.StrokeWidth != nil && d.StrokeWidth > 0 {
		d.StrokeWidth = *p.StrokeWidth
	}
	if p.Fill != nil {
		d.Fill = mergeColor(d.Fill, p.Fill)
	}
}

// mergeColor overrides the fields given in p and keeps the rest.
func mergeColor(c Color, p *ColorProps) Color {
	c = c.clone()
	setIf(&c.Color, p.Color)
	setIf(&c.ColorForPositiveValues, p.ColorForPositiveValues)
	setIf(&c.ColorForNegativeValues, p.ColorForNegativeValues)
	if p.Opacity != nil {
		o := *p.Opacity
		c.Opacity = &o
	}
	return c
}

func resolveColor(p *ColorProps) Color {
	if p == nil {
		return Color{Color: DefaultColor}
	}
	return mergeColor(Color{Color: DefaultColor}, p)
}

func resolveLine(p *LineProps) *Line {
	if p == nil {
		p = &LineProps{}
	}
	l := &Line{
		StrokeWidth: valueOr(p.StrokeWidth, DefaultStrokeWidth),
		Stroke:      resolveColor(p.Stroke),
	}
	if p.Fill != nil {
		fill := resolveColor(p.Fill)
		l.Fill = &fill
	}
	if p.Dots != nil {
		l.Dots = resolveDots(p.Dots)
	}
	if p.Hover != nil {
		l.Hover = &LineHover{}
		if p.Hover.Dot != nil {
			l.Hover.Dot = resolveHoverDot(p.Hover.Dot)
		}
	}
	return l
}

// resolveDots completes a lone stroke color or stroke width with the
// default for the other half.
func resolveDots(p *DotsProps) *Dots {
	d := &Dots{
		Size: valueOr(p.Size, DefaultDotSize),
		Fill: resolveColor(p.Fill),
	}
	switch {
	case p.Stroke != nil:
		stroke := resolveColor(p.Stroke)
		d.Stroke = &stroke
		d.StrokeWidth = valueOr(p.StrokeWidth, DefaultStrokeWidth)
	case p.StrokeWidth != nil:
		d.Stroke = &Color{Color: DefaultColor}
		d.StrokeWidth = *p.StrokeWidth
	}
	return d
}

// resolveHoverDot keeps the stroke exactly as given; validation rejects
// a half-specified stroke.
func resolveHoverDot(p *DotsProps) *Dots {
	d := &Dots{
		Size: valueOr(p.Size, DefaultDotSize),
		Fill: resolveColor(p.Fill),
	}
	if p.Stroke != nil {
		stroke := resolveColor(p.Stroke)
		d.Stroke = &stroke
	}
	setIf(&d.StrokeWidth, p.StrokeWidth)
	return d
}

func resolveBars(p *BarsProps) *Bars {
	b := &Bars{
		IsWinLoss:        valueOr(p.IsWinLoss, false),
		MarginPercentage: valueOr(p.MarginPercentage, 0),
		Fill:             resolveColor(p.Fill),
	}
	if p.Hover != nil {
		b.Hover = &BarsHover{}
		if p.Hover.Fill != nil {
			fill := resolveColor(p.Hover.Fill)
			b.Hover.Fill = &fill
		}
	}
	return b
}

func validate(s *Settings) error {
	if s.Line == nil && s.Bars == nil {
		return errors.Configuration("settings must contain at least line or bars")
	}
	if s.Line != nil && s.IsWinLoss() {
		return errors.Configuration("win/loss chart may not be combined with lines")
	}
	if err := errors.ValidateRange("width", s.Width, MinDimension, MaxDimension); err != nil {
		return err
	}
	if err := errors.ValidateRange("height", s.Height, MinDimension, MaxDimension); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("showUndefinedValuesAs", string(s.ShowUndefinedValuesAs),
		string(ShowMissing), string(ShowUnchanged)); err != nil {
		return err
	}
	if s.Line != nil {
		if err := validateLine(s.Line); err != nil {
			return err
		}
	}
	if s.Bars != nil {
		if err := validateBars(s.Bars); err != nil {
			return err
		}
	}
	return nil
}

func validateLine(l *Line) error {
	if err := errors.ValidateAbove("line.strokeWidth", l.StrokeWidth, 0); err != nil {
		return err
	}
	if err := validateColor("line.stroke", l.Stroke); err != nil {
		return err
	}
	if l.Fill != nil {
		if err := validateColor("line.fill", *l.Fill); err != nil {
			return err
		}
	}
	if l.Dots != nil {
		if err := validateDots("line.dots", l.Dots); err != nil {
			return err
		}
	}
	if dot := l.HoverDot(); dot != nil {
		if err := validateDots("line.hover.dot", dot); err != nil {
			return err
		}
	}
	return nil
}

func validateDots(field string, d *Dots) error {
	if (d.Stroke == nil) != (d.StrokeWidth == 0) {
		return errors.Configuration("%s stroke and stroke width must either be both filled or both empty", field)
	}
	if d.Stroke != nil {
		if err := errors.ValidateAbove(field+".strokeWidth", d.StrokeWidth, 0); err != nil {
			return err
		}
		if err := validateColor(field+".stroke", *d.Stroke); err != nil {
			return err
		}
	}
	if err := errors.ValidateAbove(field+".size", d.Size, 0); err != nil {
		return err
	}
	return validateColor(field+".fill", d.Fill)
}

func validateBars(b *Bars) error {
	if err := errors.ValidateRange("bars.marginPercentage", b.MarginPercentage, 0, MaxMargin); err != nil {
		return err
	}
	if err := validateColor("bars.fill", b.Fill); err != nil {
		return err
	}
	if fill := b.HoverFill(); fill != nil {
		return validateColor("bars.hover.fill", *fill)
	}
	return nil
}

// validateColor checks opacity only; color strings are passed through to
// the drawing surface untouched.
func validateColor(field string, c Color) error {
	if c.Opacity == nil {
		return nil
	}
	if err := errors.ValidateAbove(field+".opacity", *c.Opacity, 0); err != nil {
		return err
	}
	return errors.ValidateMax(field+".opacity", *c.Opacity, MaxOpacity)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func setIf[T any](dst *T, p *T) {
	if p != nil {
		*dst = *p
	}
}
