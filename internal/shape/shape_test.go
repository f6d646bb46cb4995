package shape_test

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/rook-computer/handheld/internal/shape"
	"github.com/rook-computer/handheld/internal/shape/shapetest"
)

var red = color.RGBA{R: 200, A: 255}

const eps = 1e-9

func sameMatrix(a, b gg.Matrix) bool {
	return cmp.Equal(a, b, cmpopts.EquateApprox(0, eps))
}

// rotating draws every rotated primitive on s at the given centre and angle.
var rotating = []struct {
	name string
	draw func(s shape.Surface, cx, cy, deg float64)
}{
	{"stadium", func(s shape.Surface, cx, cy, deg float64) { shape.Stadium(s, red, cx, cy, 40, 15, deg) }},
	{"rounded-rect", func(s shape.Surface, cx, cy, deg float64) { shape.RoundedRect(s, red, cx, cy, 90, 30, 6, deg) }},
	{"triangle", func(s shape.Surface, cx, cy, deg float64) { shape.Triangle(s, red, cx, cy, 7, deg) }},
	{"rotate-pair", func(s shape.Surface, cx, cy, deg float64) {
		shape.RotateAbout(s, cx, cy, shape.Radians(deg))
		shape.RotateAbout(s, cx, cy, -shape.Radians(deg))
	}},
}

func TestRotatedPrimitivesRestoreTransform(t *testing.T) {
	centres := [][2]float64{{0, 0}, {75, 400}, {-12.5, 3}, {330, 517.5}}
	angles := []float64{0, 45, 67.5, 90, 180, 270, 337.5, -30, 720}

	for _, tc := range rotating {
		t.Run(tc.name, func(t *testing.T) {
			for _, c := range centres {
				for _, deg := range angles {
					plain := shapetest.New()
					plain.Translate(5, 7)
					before := plain.Transform()
					tc.draw(plain, c[0], c[1], deg)
					if got := plain.Transform(); !sameMatrix(got, before) {
						t.Errorf("inverse mode at %v, %v°: transform %+v, want %+v", c, deg, got, before)
					}

					stacked := shapetest.NewStacked()
					stacked.Translate(5, 7)
					before = stacked.Transform()
					tc.draw(stacked, c[0], c[1], deg)
					if got := stacked.Transform(); !sameMatrix(got, before) {
						t.Errorf("stack mode at %v, %v°: transform %+v, want %+v", c, deg, got, before)
					}
					if stacked.Depth() != 0 {
						t.Errorf("stack mode at %v, %v°: depth %d after call", c, deg, stacked.Depth())
					}
				}
			}
		})
	}
}

func TestRotatedRestoresOnPanic(t *testing.T) {
	for _, s := range []interface {
		shape.Surface
		Transform() gg.Matrix
	}{shapetest.New(), shapetest.NewStacked()} {
		before := s.Transform()
		func() {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic to propagate")
				}
			}()
			shape.Rotated(s, 10, 20, shape.Radians(33), func() {
				s.MoveTo(1, 1)
				panic("boom")
			})
		}()
		if got := s.Transform(); !sameMatrix(got, before) {
			t.Errorf("%T: transform %+v after panic, want %+v", s, got, before)
		}
	}
}

func TestConsoleBounds(t *testing.T) {
	tests := []struct {
		x, y, w, h, sc, bc float64
	}{
		{0, 0, 360, 592, 10, 70},
		{30, 50, 300, 230, 10, 40},
		{-5, 8, 20, 10, 0, 0},
		{1, 2, 100, 40, 19.9, 39.9},
	}
	for _, tt := range tests {
		s := shapetest.New()
		shape.Console(s, red, tt.x, tt.y, tt.w, tt.h, tt.sc, tt.bc)
		if len(s.Painted) != 1 || s.Painted[0].Kind != "fill" {
			t.Fatalf("Console painted %+v, want a single fill", s.Painted)
		}
		p := s.Painted[0]
		want := []float64{tt.x, tt.y, tt.x + tt.w, tt.y + tt.h}
		got := []float64{p.Min.X, p.Min.Y, p.Max.X, p.Max.Y}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Console%v bounds mismatch (-want +got):\n%s", tt, diff)
		}
	}
}

func TestConsoleCornerRadii(t *testing.T) {
	s := shapetest.New()
	shape.Console(s, red, 0, 0, 360, 592, 10, 70)
	want := []string{
		"begin",
		"move 0.00 10.00",
		"quad 0.00 0.00 10.00 0.00",
		"line 350.00 0.00",
		"quad 360.00 0.00 360.00 10.00",
		"line 360.00 522.00",
		"quad 360.00 592.00 290.00 592.00",
		"line 10.00 592.00",
		"quad 0.00 592.00 0.00 582.00",
		"line 0.00 10.00",
		"close",
		"fill rgb(200,0,0)",
	}
	if diff := cmp.Diff(want, s.Ops); diff != "" {
		t.Errorf("Console ops mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundedRectZeroRadiusIsRectangle(t *testing.T) {
	s := shapetest.NewStacked()
	shape.RoundedRect(s, red, 50, 40, 20, 10, 0, 0)
	want := []string{
		"push",
		"translate 50.00 40.00",
		"rotate 0.00",
		"translate -50.00 -40.00",
		"begin",
		"move 40.00 35.00",
		"quad 40.00 35.00 40.00 35.00",
		"line 60.00 35.00",
		"quad 60.00 35.00 60.00 35.00",
		"line 60.00 45.00",
		"quad 60.00 45.00 60.00 45.00",
		"line 40.00 45.00",
		"quad 40.00 45.00 40.00 45.00",
		"line 40.00 35.00",
		"close",
		"fill rgb(200,0,0)",
		"pop",
	}
	if diff := cmp.Diff(want, s.Ops); diff != "" {
		t.Errorf("RoundedRect ops mismatch (-want +got):\n%s", diff)
	}
	p := s.Painted[0]
	if p.Min != gg.Pt(40, 35) || p.Max != gg.Pt(60, 45) {
		t.Errorf("bounds = %v..%v, want (40,35)..(60,45)", p.Min, p.Max)
	}
}

func TestStadiumQuarterTurnSwapsSides(t *testing.T) {
	size := func(deg float64) (float64, float64) {
		s := shapetest.New()
		shape.Stadium(s, red, 130, 490, 40, 15, deg)
		p := s.Painted[0]
		return p.Max.X - p.Min.X, p.Max.Y - p.Min.Y
	}
	w0, h0 := size(0)
	w90, h90 := size(90)
	if w0 <= h0 {
		t.Fatalf("at 0°: width %v not greater than height %v", w0, h0)
	}
	if math.Abs(w0-h90) > eps || math.Abs(h0-w90) > eps {
		t.Errorf("at 0° got %vx%v, at 90° got %vx%v; want sides swapped", w0, h0, w90, h90)
	}
}

func TestStadiumPath(t *testing.T) {
	s := shapetest.NewStacked()
	shape.Stadium(s, red, 130, 490, 40, 15, 0)
	want := []string{
		"push",
		"translate 130.00 490.00",
		"rotate 0.00",
		"translate -130.00 -490.00",
		"begin",
		"move 125.00 482.50",
		"line 150.00 482.50",
		"cubic 165.00 482.50 165.00 497.50 150.00 497.50",
		"line 125.00 497.50",
		"cubic 110.00 497.50 110.00 482.50 125.00 482.50",
		"close",
		"fill rgb(200,0,0)",
		"pop",
	}
	if diff := cmp.Diff(want, s.Ops); diff != "" {
		t.Errorf("Stadium ops mismatch (-want +got):\n%s", diff)
	}
}

func TestTriangleApex(t *testing.T) {
	tests := []struct {
		deg  float64
		apex gg.Point
	}{
		{0, gg.Pt(75, 346.5)},
		{90, gg.Pt(78.5, 350)},
		{180, gg.Pt(75, 353.5)},
		{270, gg.Pt(71.5, 350)},
	}
	for _, tt := range tests {
		s := shapetest.New()
		var apex gg.Point
		shape.Triangle(&apexProbe{Surface: s, apex: &apex}, red, 75, 350, 7, tt.deg)
		if math.Abs(apex.X-tt.apex.X) > eps || math.Abs(apex.Y-tt.apex.Y) > eps {
			t.Errorf("Triangle at %v°: apex %v, want %v", tt.deg, apex, tt.apex)
		}
	}
}

// apexProbe records the device position of the third vertex.
type apexProbe struct {
	*shapetest.Surface
	apex  *gg.Point
	lines int
}

func (p *apexProbe) LineTo(x, y float64) {
	p.lines++
	if p.lines == 2 {
		*p.apex = p.Transform().TransformPoint(gg.Pt(x, y))
	}
	p.Surface.LineTo(x, y)
}

func TestLineStrokesOnly(t *testing.T) {
	s := shapetest.New()
	shape.Line(s, red, 0, 30, 360, 30, 3)
	want := []string{"begin", "move 0.00 30.00", "line 360.00 30.00", "stroke rgb(200,0,0) 3.00"}
	if diff := cmp.Diff(want, s.Ops); diff != "" {
		t.Errorf("Line ops mismatch (-want +got):\n%s", diff)
	}
}

func TestCircle(t *testing.T) {
	s := shapetest.New()
	shape.Circle(s, red, 250, 400, 20)
	want := []string{"begin", "arc 250.00 400.00 20.00 0.00 6.28", "close", "fill rgb(200,0,0)"}
	if diff := cmp.Diff(want, s.Ops); diff != "" {
		t.Errorf("Circle ops mismatch (-want +got):\n%s", diff)
	}
}

func TestNilSurfacePanics(t *testing.T) {
	calls := map[string]func(){
		"console":      func() { shape.Console(nil, red, 0, 0, 1, 1, 0, 0) },
		"stadium":      func() { shape.Stadium(nil, red, 0, 0, 1, 1, 0) },
		"rounded-rect": func() { shape.RoundedRect(nil, red, 0, 0, 1, 1, 0, 0) },
		"rect":         func() { shape.Rect(nil, red, 0, 0, 1, 1) },
		"circle":       func() { shape.Circle(nil, red, 0, 0, 1) },
		"line":         func() { shape.Line(nil, red, 0, 0, 1, 1, 1) },
		"triangle":     func() { shape.Triangle(nil, red, 0, 0, 1, 0) },
		"rotate-about": func() { shape.RotateAbout(nil, 0, 0, 1) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, shape.ErrNilSurface) {
					t.Errorf("recovered %v, want %v", err, shape.ErrNilSurface)
				}
			}()
			call()
		})
	}
}

func TestRadians(t *testing.T) {
	for deg, want := range map[float64]float64{0: 0, 90: math.Pi / 2, 180: math.Pi, 337.5: 337.5 * math.Pi / 180} {
		if got := shape.Radians(deg); math.Abs(got-want) > eps {
			t.Errorf("Radians(%v) = %v, want %v", deg, got, want)
		}
	}
}
