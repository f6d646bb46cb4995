// Package shapetest provides a recording shape.Surface for tests.
package shapetest

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// Painted is one filled or stroked path, with its bounds in device space.
// Bounds cover on-curve and control points.
type Painted struct {
	Kind  string // "fill" or "stroke"
	Color color.RGBA
	Width float64
	Min   gg.Point
	Max   gg.Point
}

// Surface records every call as an op string and tracks the current
// transform. It has no state stack; see Stacked.
type Surface struct {
	Ops     []string
	Painted []Painted

	m        gg.Matrix
	min, max gg.Point
	empty    bool
}

// New returns a Surface with an identity transform.
func New() *Surface {
	return &Surface{m: gg.Identity(), empty: true}
}

// Transform returns the current transform.
func (s *Surface) Transform() gg.Matrix { return s.m }

// Reset drops recorded ops and paint but keeps the transform.
func (s *Surface) Reset() {
	s.Ops = nil
	s.Painted = nil
	s.clearPath()
}

func (s *Surface) op(format string, args ...interface{}) {
	s.Ops = append(s.Ops, fmt.Sprintf(format, args...))
}

func (s *Surface) add(x, y float64) {
	p := s.m.TransformPoint(gg.Pt(x, y))
	if s.empty {
		s.min, s.max, s.empty = p, p, false
		return
	}
	s.min.X = math.Min(s.min.X, p.X)
	s.min.Y = math.Min(s.min.Y, p.Y)
	s.max.X = math.Max(s.max.X, p.X)
	s.max.Y = math.Max(s.max.Y, p.Y)
}

func (s *Surface) clearPath() {
	s.min, s.max, s.empty = gg.Point{}, gg.Point{}, true
}

func (s *Surface) BeginPath() {
	s.op("begin")
	s.clearPath()
}

func (s *Surface) MoveTo(x, y float64) {
	s.op("move %.2f %.2f", x, y)
	s.add(x, y)
}

func (s *Surface) LineTo(x, y float64) {
	s.op("line %.2f %.2f", x, y)
	s.add(x, y)
}

func (s *Surface) QuadraticTo(cx, cy, x, y float64) {
	s.op("quad %.2f %.2f %.2f %.2f", cx, cy, x, y)
	s.add(cx, cy)
	s.add(x, y)
}

func (s *Surface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.op("cubic %.2f %.2f %.2f %.2f %.2f %.2f", c1x, c1y, c2x, c2y, x, y)
	s.add(c1x, c1y)
	s.add(c2x, c2y)
	s.add(x, y)
}

func (s *Surface) Arc(x, y, r, angle1, angle2 float64) {
	s.op("arc %.2f %.2f %.2f %.2f %.2f", x, y, r, angle1, angle2)
	s.add(x-r, y-r)
	s.add(x+r, y+r)
}

func (s *Surface) ClosePath() { s.op("close") }

func (s *Surface) Fill(c color.Color) {
	s.op("fill %s", rgb(c))
	s.paint("fill", c, 0)
}

func (s *Surface) Stroke(c color.Color, width float64) {
	s.op("stroke %s %.2f", rgb(c), width)
	s.paint("stroke", c, width)
}

func (s *Surface) paint(kind string, c color.Color, width float64) {
	s.Painted = append(s.Painted, Painted{
		Kind:  kind,
		Color: color.RGBAModel.Convert(c).(color.RGBA),
		Width: width,
		Min:   s.min,
		Max:   s.max,
	})
	s.clearPath()
}

func (s *Surface) Translate(x, y float64) {
	s.op("translate %.2f %.2f", x, y)
	s.m = s.m.Multiply(gg.Translate(x, y))
}

func (s *Surface) Rotate(angle float64) {
	s.op("rotate %.2f", angle)
	s.m = s.m.Multiply(gg.Rotate(angle))
}

// Stacked is a Surface that also implements shape.Saver.
type Stacked struct {
	*Surface
	stack []gg.Matrix
}

// NewStacked returns a Stacked surface with an identity transform.
func NewStacked() *Stacked {
	return &Stacked{Surface: New()}
}

func (s *Stacked) Push() {
	s.op("push")
	s.stack = append(s.stack, s.m)
}

func (s *Stacked) Pop() {
	s.op("pop")
	if len(s.stack) == 0 {
		return
	}
	s.m = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of pushed states.
func (s *Stacked) Depth() int { return len(s.stack) }

func rgb(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}
