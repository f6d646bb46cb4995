// Package shape draws the parametric primitives the console illustration is
// built from. Every function borrows a Surface for the duration of the call
// and leaves its transform as it found it.
package shape

import (
	"errors"
	"image/color"
	"math"
)

// ErrNilSurface is the panic value of every primitive called without a surface.
var ErrNilSurface = errors.New("shape: nil surface")

// Surface is a mutable 2D vector drawing context.
//
// Fill and Stroke consume the current path. Coordinates passed to path
// methods are interpreted in the surface's current transform.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Arc(x, y, r, angle1, angle2 float64)
	ClosePath()

	Fill(c color.Color)
	Stroke(c color.Color, width float64)

	Translate(x, y float64)
	Rotate(angle float64)
}

// Saver is implemented by surfaces that keep their own state stack.
type Saver interface {
	Push()
	Pop()
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RotateAbout rotates s by angle (radians) around (cx, cy).
// RotateAbout(s, cx, cy, -angle) undoes it.
func RotateAbout(s Surface, cx, cy, angle float64) {
	mustSurface(s)
	s.Translate(cx, cy)
	s.Rotate(angle)
	s.Translate(-cx, -cy)
}

// Rotated runs draw with s rotated by angle (radians) around (cx, cy) and
// restores the transform afterwards, also when draw panics.
func Rotated(s Surface, cx, cy, angle float64, draw func()) {
	mustSurface(s)
	if saver, ok := s.(Saver); ok {
		saver.Push()
		defer saver.Pop()
		RotateAbout(s, cx, cy, angle)
		draw()
		return
	}
	RotateAbout(s, cx, cy, angle)
	defer RotateAbout(s, cx, cy, -angle)
	draw()
}

// Console fills the device body outline: a rectangle at (x, y) whose
// top-left, top-right and bottom-left corners are rounded by sc and whose
// bottom-right corner is rounded by bc.
func Console(s Surface, c color.Color, x, y, w, h, sc, bc float64) {
	mustSurface(s)
	s.BeginPath()
	s.MoveTo(x, y+sc)
	s.QuadraticTo(x, y, x+sc, y)
	s.LineTo(x+w-sc, y)
	s.QuadraticTo(x+w, y, x+w, y+sc)
	s.LineTo(x+w, y+h-bc)
	s.QuadraticTo(x+w, y+h, x+w-bc, y+h)
	s.LineTo(x+sc, y+h)
	s.QuadraticTo(x, y+h, x, y+h-sc)
	s.LineTo(x, y+sc)
	s.ClosePath()
	s.Fill(c)
}

// Stadium fills a capsule centred on (cx, cy), w long and h high, rotated by
// deg degrees. Each cap is a single cubic whose control points sit h beyond
// the ends of the straight edges.
func Stadium(s Surface, c color.Color, cx, cy, w, h, deg float64) {
	mustSurface(s)
	x := cx + h - w*0.5
	y := cy - h*0.5
	Rotated(s, cx, cy, Radians(deg), func() {
		s.BeginPath()
		s.MoveTo(x, y)
		s.LineTo(x+w-h, y)
		s.CubicTo(x+w, y, x+w, y+h, x+w-h, y+h)
		s.LineTo(x, y+h)
		s.CubicTo(x-h, y+h, x-h, y, x, y)
		s.ClosePath()
		s.Fill(c)
	})
}

// RoundedRect fills a w×h rectangle centred on (cx, cy) with every corner
// rounded by sc, rotated by deg degrees.
func RoundedRect(s Surface, c color.Color, cx, cy, w, h, sc, deg float64) {
	mustSurface(s)
	x := cx - w/2
	y := cy - h/2
	Rotated(s, cx, cy, Radians(deg), func() {
		s.BeginPath()
		s.MoveTo(x, y+sc)
		s.QuadraticTo(x, y, x+sc, y)
		s.LineTo(x+w-sc, y)
		s.QuadraticTo(x+w, y, x+w, y+sc)
		s.LineTo(x+w, y+h-sc)
		s.QuadraticTo(x+w, y+h, x+w-sc, y+h)
		s.LineTo(x+sc, y+h)
		s.QuadraticTo(x, y+h, x, y+h-sc)
		s.LineTo(x, y+sc)
		s.ClosePath()
		s.Fill(c)
	})
}

// Rect fills an axis-aligned rectangle with its top-left corner at (x, y).
func Rect(s Surface, c color.Color, x, y, w, h float64) {
	mustSurface(s)
	s.BeginPath()
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
	s.Fill(c)
}

// Circle fills a circle of radius r centred on (x, y).
func Circle(s Surface, c color.Color, x, y, r float64) {
	mustSurface(s)
	s.BeginPath()
	s.Arc(x, y, r, 0, 2*math.Pi)
	s.ClosePath()
	s.Fill(c)
}

// Line strokes one segment from (sx, sy) to (ex, ey).
func Line(s Surface, c color.Color, sx, sy, ex, ey, width float64) {
	mustSurface(s)
	s.BeginPath()
	s.MoveTo(sx, sy)
	s.LineTo(ex, ey)
	s.Stroke(c, width)
}

// Triangle fills a triangle with base and height w centred on (cx, cy).
// At deg 0 the apex points up.
func Triangle(s Surface, c color.Color, cx, cy, w, deg float64) {
	mustSurface(s)
	x := cx - w/2
	y := cy + w/2
	Rotated(s, cx, cy, Radians(deg), func() {
		s.BeginPath()
		s.MoveTo(x, y)
		s.LineTo(x+w, y)
		s.LineTo(x+w/2, y-w)
		s.LineTo(x, y)
		s.ClosePath()
		s.Fill(c)
	})
}

func mustSurface(s Surface) {
	if s == nil {
		panic(ErrNilSurface)
	}
}
