// Package scene composes the console illustration from shape primitives.
package scene

import (
	"image/color"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/shape"
)

// Scene size in drawing units.
const (
	Width  = 360
	Height = 592
)

type call func(s shape.Surface, c color.Color)

type part struct {
	name  string
	role  palette.Role
	calls []call
}

func console(x, y, w, h, sc, bc float64) call {
	return func(s shape.Surface, c color.Color) { shape.Console(s, c, x, y, w, h, sc, bc) }
}

func rect(x, y, w, h float64) call {
	return func(s shape.Surface, c color.Color) { shape.Rect(s, c, x, y, w, h) }
}

func rounded(cx, cy, w, h, sc, deg float64) call {
	return func(s shape.Surface, c color.Color) { shape.RoundedRect(s, c, cx, cy, w, h, sc, deg) }
}

func stadium(cx, cy, w, h, deg float64) call {
	return func(s shape.Surface, c color.Color) { shape.Stadium(s, c, cx, cy, w, h, deg) }
}

func circle(x, y, r float64) call {
	return func(s shape.Surface, c color.Color) { shape.Circle(s, c, x, y, r) }
}

func line(sx, sy, ex, ey, width float64) call {
	return func(s shape.Surface, c color.Color) { shape.Line(s, c, sx, sy, ex, ey, width) }
}

func triangle(cx, cy, w, deg float64) call {
	return func(s shape.Surface, c color.Color) { shape.Triangle(s, c, cx, cy, w, deg) }
}

var parts = []part{
	{"body", palette.Shell, []call{console(0, 0, 360, 592, 10, 70)}},
	{"bezel", palette.Face, []call{console(30, 50, 300, 230, 10, 40)}},
	{"screen", palette.Screen, []call{rect(85, 80, 190, 170)}},
	{"dpad", palette.DPad, []call{
		rounded(75, 400, 90, 30, 6, 0),
		rounded(75, 400, 90, 30, 6, 90),
	}},
	{"buttons", palette.AB, []call{
		circle(250, 400, 20),
		circle(310, 380, 20),
	}},
	{"start-select", palette.Face, []call{
		stadium(130, 490, 40, 15, 337.5),
		stadium(190, 490, 40, 15, 337.5),
	}},
	{"grill", palette.Detail, []call{
		stadium(255, 555, 50, 5, 67.5),
		stadium(270, 547.5, 50, 5, 67.5),
		stadium(285, 540, 50, 5, 67.5),
		stadium(300, 532.5, 50, 5, 67.5),
		stadium(315, 525, 50, 5, 67.5),
		stadium(330, 517.5, 50, 5, 67.5),
	}},
	{"battery", palette.Battery, []call{circle(55, 140, 5)}},
	{"headphone", palette.Detail, []call{
		stadium(160, 575, 40, 15, 0),
		line(165, 575, 165, 592, 3),
		line(172, 575, 172, 592, 3),
		line(179, 575, 179, 592, 3),
	}},
	{"power", palette.Detail, []call{
		stadium(80, 15, 50, 15, 0),
		line(70, 15, 70, 0, 3),
		line(77, 15, 77, 0, 3),
		line(84, 15, 84, 0, 3),
	}},
	{"vents", palette.Detail, []call{
		line(0, 30, 360, 30, 3),
		line(30, 0, 30, 30, 3),
		line(330, 0, 330, 30, 3),
	}},
	{"accent", palette.Line1, []call{line(40, 60, 320, 60, 3)}},
	{"accent", palette.Line2, []call{line(40, 65, 320, 65, 3)}},
	{"arrows", palette.Detail, []call{
		triangle(75, 350, 7, 0),
		triangle(25, 400, 7, 270),
		triangle(125, 400, 7, 90),
		triangle(75, 450, 7, 180),
	}},
}

// Draw paints the whole console onto s using p.
func Draw(s shape.Surface, p palette.Palette) error {
	if s == nil {
		return shape.ErrNilSurface
	}
	for _, pt := range parts {
		c := p.Role(pt.role)
		for _, draw := range pt.calls {
			draw(s, c)
		}
	}
	return nil
}

// Parts returns the part names in drawing order.
func Parts() []string {
	var names []string
	for _, pt := range parts {
		if n := len(names); n > 0 && names[n-1] == pt.name {
			continue
		}
		names = append(names, pt.name)
	}
	return names
}

// Roles returns the roles the named part is drawn with.
func Roles(name string) []palette.Role {
	var roles []palette.Role
	for _, pt := range parts {
		if pt.name == name {
			roles = append(roles, pt.role)
		}
	}
	return roles
}
