package points

import (
	"math"
	"testing"

	"github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

func TestMap(t *testing.T) {
	vals := []value.Value{
		value.Of(value.Num(1)),
		value.Of(value.Str("3")),
		value.Of(value.None()),
		value.WithLabel("thu", value.Num(-4)),
	}
	pts, err := Map(vals, Options{})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(pts) != 4 {
		t.Fatalf("len = %d, want 4", len(pts))
	}
	for i, p := range pts {
		if p.X != float64(i+1) {
			t.Errorf("pts[%d].X = %v, want %d", i, p.X, i+1)
		}
	}
	if !pts[1].Defined || pts[1].Y != 3 {
		t.Errorf("pts[1] = %+v", pts[1])
	}
	if pts[2].Defined {
		t.Errorf("missing value should be undefined: %+v", pts[2])
	}
	if pts[3].Label != "thu" || pts[3].Y != -4 || pts[3].Value != -4 {
		t.Errorf("pts[3] = %+v", pts[3])
	}
}

func TestMapMissingPolicy(t *testing.T) {
	vals := []value.Value{
		value.Of(value.None()),
		value.Of(value.Num(5)),
		value.Of(value.None()),
		value.Of(value.Str(" ")),
		value.Of(value.Num(2)),
	}

	tests := []struct {
		name        string
		opts        Options
		wantDefined []bool
		wantY       []float64
	}{
		{
			name:        "missing",
			opts:        Options{},
			wantDefined: []bool{false, true, false, false, true},
			wantY:       []float64{0, 5, 0, 0, 2},
		},
		{
			name:        "unchanged",
			opts:        Options{CarryForward: true},
			wantDefined: []bool{false, true, true, true, true},
			wantY:       []float64{0, 5, 5, 5, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := Map(vals, tt.opts)
			if err != nil {
				t.Fatalf("Map: %v", err)
			}
			for i, p := range pts {
				if p.Defined != tt.wantDefined[i] {
					t.Errorf("pts[%d].Defined = %v, want %v", i, p.Defined, tt.wantDefined[i])
				}
				if p.Defined && p.Y != tt.wantY[i] {
					t.Errorf("pts[%d].Y = %v, want %v", i, p.Y, tt.wantY[i])
				}
			}
		})
	}
}

func TestMapWinLoss(t *testing.T) {
	pts, err := Map(value.Floats(18, -3, 0, 9, -4, 7, -21, 4, 12), Options{WinLoss: true})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	want := []float64{1, -1, 0, 1, -1, 1, -1, 1, 1}
	for i, p := range pts {
		if p.Y != want[i] {
			t.Errorf("pts[%d].Y = %v, want %v", i, p.Y, want[i])
		}
	}
	if pts[0].Value != 18 {
		t.Errorf("original value = %v, want 18", pts[0].Value)
	}
}

func TestMapErrors(t *testing.T) {
	tests := []struct {
		name string
		vals []value.Value
	}{
		{"non numeric", []value.Value{value.Of(value.Str("abc"))}},
		{"infinite", []value.Value{value.Of(value.Num(math.Inf(1)))}},
		{"nan", []value.Value{value.Of(value.Num(math.NaN()))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Map(tt.vals, Options{}); !errors.Is(err, errors.ErrCodeValue) {
				t.Errorf("err = %v, want value error", err)
			}
		})
	}
}

func TestMapEmpty(t *testing.T) {
	pts, err := Map(nil, Options{})
	if err != nil || len(pts) != 0 {
		t.Errorf("Map(nil) = %v, %v", pts, err)
	}
}

func TestOptionsFor(t *testing.T) {
	s, err := settings.New(settings.Props{
		ShowUndefinedValuesAs: settings.Ptr(settings.ShowUnchanged),
		Bars:                  &settings.BarsProps{IsWinLoss: settings.Ptr(true)},
	})
	if err != nil {
		t.Fatalf("settings.New: %v", err)
	}
	opts := OptionsFor(s)
	if !opts.CarryForward || !opts.WinLoss {
		t.Errorf("OptionsFor = %+v", opts)
	}
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name   string
		rng    float64
		height float64
		want   Factor
	}{
		{"neutral", 100, 50, Factor{V: 1}},
		{"amplify", 2, 40, Factor{V: 20}},
		{"amplify rounds up", 3, 40, Factor{V: 14}},
		{"divide", 10000, 100, Factor{V: 100, Divide: true}},
		{"divide floors", 10050, 100, Factor{V: 100, Divide: true}},
		{"amplify overrides divide", 6000, 8000, Factor{V: 2}},
		{"range equals height", 50, 50, Factor{V: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleFactor(tt.rng, tt.height); got != tt.want {
				t.Errorf("ScaleFactor(%v, %v) = %+v, want %+v", tt.rng, tt.height, got, tt.want)
			}
		})
	}
}

func TestRescale(t *testing.T) {
	pts, err := Map(value.Floats(1, 3, 9, -4), Options{})
	if err != nil {
		t.Fatal(err)
	}
	first, err := Rescale(pts, 50)
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	// range 13, height 50: factor ceil(50/13) = 4
	want := []float64{4, 12, 36, -16}
	for i, p := range first {
		if p.Y != want[i] {
			t.Errorf("Y[%d] = %v, want %v", i, p.Y, want[i])
		}
		if p.Value != pts[i].Value {
			t.Errorf("Value[%d] = %v, want %v", i, p.Value, pts[i].Value)
		}
	}
	if pts[0].Y != 1 {
		t.Error("Rescale modified its input")
	}

	second, err := Rescale(pts, 50)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("rescale drifted at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRescaleLargeValues(t *testing.T) {
	pts, err := Map(value.Floats(0, 1_000_000, 500_000), Options{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Rescale(pts, 100)
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if out[1].Y != 100 || out[2].Y != 50 {
		t.Errorf("rescaled = %v, %v", out[1].Y, out[2].Y)
	}
	if out[1].Value != 1_000_000 {
		t.Errorf("Value = %v", out[1].Value)
	}
}

func TestRescaleWinLossNeverDivides(t *testing.T) {
	pts, err := Map(value.Floats(18_000_000, -3, 9, -4_000_000), Options{WinLoss: true})
	if err != nil {
		t.Fatal(err)
	}
	if r := Range(pts); r > 2 {
		t.Fatalf("win/loss range = %v, want <= 2", r)
	}
	if f := ScaleFactor(Range(pts), 40); f.Divide {
		t.Errorf("win/loss factor divides: %+v", f)
	}
	out, err := Rescale(pts, 40)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range out {
		if math.Abs(p.Y) != 20 {
			t.Errorf("Y[%d] = %v, want +-20", i, p.Y)
		}
	}
}

func TestRescaleOverflow(t *testing.T) {
	pts := []Point{{X: 1, Y: math.MaxFloat64, Defined: true}, {X: 2, Y: math.MaxFloat64 - 1, Defined: true}}
	// range is floored at 1, so a height of 8000 amplifies by 8000
	if _, err := Rescale(pts, 8000); !errors.Is(err, errors.ErrCodeValue) {
		t.Errorf("err = %v, want value error", err)
	}
}

func TestRescaleInfiniteRange(t *testing.T) {
	pts := []Point{
		{X: 1, Y: 1e308, Defined: true},
		{X: 2, Y: -1e308, Defined: true},
		{X: 3, Y: 5, Defined: true},
	}
	out, err := Rescale(pts, 40)
	if !errors.Is(err, errors.ErrCodeValue) {
		t.Fatalf("err = %v, want value error", err)
	}
	if out != nil {
		t.Errorf("out = %v, want nil", out)
	}
}

func TestExtent(t *testing.T) {
	min, max := Extent(nil)
	if min != 0 || max != 0 {
		t.Errorf("Extent(nil) = %v, %v", min, max)
	}
	min, max = Extent([]Point{{Y: 3, Defined: true}, {Y: 100}, {Y: -2, Defined: true}})
	if min != -2 || max != 3 {
		t.Errorf("Extent = %v, %v", min, max)
	}
	if Range([]Point{{Y: 5, Defined: true}, {Y: 5, Defined: true}}) != 1 {
		t.Error("flat range should be floored at 1")
	}
}

func TestFlip(t *testing.T) {
	if got := Flip(3); got != -3 {
		t.Errorf("Flip(3) = %v", got)
	}
	if got := Flip(0); math.Signbit(got) {
		t.Error("Flip(0) returned negative zero")
	}
}
