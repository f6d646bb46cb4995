package render

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/rook-computer/handheld/internal/shape"
)

var (
	_ shape.Surface = (*ContextSurface)(nil)
	_ shape.Saver   = (*ContextSurface)(nil)
	_ shape.Surface = (*RecorderSurface)(nil)
	_ shape.Saver   = (*RecorderSurface)(nil)
)

// ContextSurface draws shapes straight into a gg raster context.
// The first failed fill or stroke is kept and reported by Err.
type ContextSurface struct {
	dc  *gg.Context
	err error
}

func NewContextSurface(dc *gg.Context) *ContextSurface {
	return &ContextSurface{dc: dc}
}

// Err returns the first rasterization error, if any.
func (s *ContextSurface) Err() error { return s.err }

func (s *ContextSurface) BeginPath()          { s.dc.ClearPath() }
func (s *ContextSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *ContextSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }
func (s *ContextSurface) ClosePath()          { s.dc.ClosePath() }

func (s *ContextSurface) QuadraticTo(cx, cy, x, y float64) { s.dc.QuadraticTo(cx, cy, x, y) }

func (s *ContextSurface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// Arc is built from cubics in user space; gg's DrawArc does not scale the
// radius with the current transform.
func (s *ContextSurface) Arc(x, y, r, angle1, angle2 float64) {
	_, _, hasPoint := s.dc.GetCurrentPoint()
	arcTo(x, y, r, angle1, angle2, hasPoint, s.dc.MoveTo, s.dc.LineTo, s.dc.CubicTo)
}

func (s *ContextSurface) Fill(c color.Color) {
	s.dc.SetColor(c)
	s.keep(s.dc.Fill())
}

func (s *ContextSurface) Stroke(c color.Color, width float64) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.keep(s.dc.Stroke())
}

func (s *ContextSurface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *ContextSurface) Translate(x, y float64) { s.dc.Translate(x, y) }
func (s *ContextSurface) Rotate(angle float64)   { s.dc.Rotate(angle) }
func (s *ContextSurface) Push()                  { s.dc.Push() }
func (s *ContextSurface) Pop()                   { s.dc.Pop() }

// RecorderSurface records shapes into a gg recording for later playback.
// Paths are stored in device space.
type RecorderSurface struct {
	rec *recording.Recorder
}

func NewRecorderSurface(rec *recording.Recorder) *RecorderSurface {
	return &RecorderSurface{rec: rec}
}

func (s *RecorderSurface) BeginPath()          { s.rec.ClearPath() }
func (s *RecorderSurface) MoveTo(x, y float64) { s.rec.MoveTo(x, y) }
func (s *RecorderSurface) LineTo(x, y float64) { s.rec.LineTo(x, y) }
func (s *RecorderSurface) ClosePath()          { s.rec.ClosePath() }

func (s *RecorderSurface) QuadraticTo(cx, cy, x, y float64) { s.rec.QuadraticTo(cx, cy, x, y) }

func (s *RecorderSurface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.rec.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (s *RecorderSurface) Arc(x, y, r, angle1, angle2 float64) {
	_, _, hasPoint := s.rec.GetCurrentPoint()
	arcTo(x, y, r, angle1, angle2, hasPoint, s.rec.MoveTo, s.rec.LineTo, s.rec.CubicTo)
}

func (s *RecorderSurface) Fill(c color.Color) {
	s.rec.SetColor(gg.FromColor(c))
	s.rec.Fill()
}

// Stroke scales width by the current transform because recorded strokes are
// replayed in device space.
func (s *RecorderSurface) Stroke(c color.Color, width float64) {
	m := s.rec.GetTransform()
	s.rec.SetColor(gg.FromColor(c))
	s.rec.SetLineWidth(width * math.Sqrt(math.Abs(m.A*m.E-m.B*m.D)))
	s.rec.Stroke()
}

func (s *RecorderSurface) Translate(x, y float64) { s.rec.Translate(x, y) }
func (s *RecorderSurface) Rotate(angle float64)   { s.rec.Rotate(angle) }
func (s *RecorderSurface) Push()                  { s.rec.Push() }
func (s *RecorderSurface) Pop()                   { s.rec.Pop() }

// arcTo appends a circular arc as cubic segments of at most a quarter turn.
// It joins the arc to the current point with a line, like a canvas arc.
func arcTo(cx, cy, r, a1, a2 float64, hasPoint bool,
	moveTo, lineTo func(x, y float64),
	cubicTo func(c1x, c1y, c2x, c2y, x, y float64),
) {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	n := int(math.Ceil((a2 - a1) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := (a2 - a1) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	sx, sy := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	if hasPoint {
		lineTo(sx, sy)
	} else {
		moveTo(sx, sy)
	}
	for i := 0; i < n; i++ {
		t1 := a1 + float64(i)*step
		t2 := t1 + step
		cos1, sin1 := math.Cos(t1), math.Sin(t1)
		cos2, sin2 := math.Cos(t2), math.Sin(t2)
		cubicTo(
			cx+r*(cos1-k*sin1), cy+r*(sin1+k*cos1),
			cx+r*(cos2+k*sin2), cy+r*(sin2-k*cos2),
			cx+r*cos2, cy+r*sin2,
		)
	}
}
