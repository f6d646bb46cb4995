// Package palette holds the named color schemes the console can be drawn in.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrUnknown is returned (wrapped) by Lookup for names without a palette.
var ErrUnknown = errors.New("unknown palette")

// Role names one colored part of the console.
type Role int

const (
	Shell Role = iota
	Face
	Screen
	DPad
	AB
	Detail
	Battery
	Line1
	Line2
)

// Roles lists every role in declaration order.
var Roles = []Role{Shell, Face, Screen, DPad, AB, Detail, Battery, Line1, Line2}

var roleNames = [...]string{
	Shell:   "shell",
	Face:    "face",
	Screen:  "screen",
	DPad:    "dpad",
	AB:      "a_b",
	Detail:  "detail",
	Battery: "battery",
	Line1:   "line_1",
	Line2:   "line_2",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Palette maps every role to an opaque color. Palettes are values; selecting
// one never affects another.
type Palette struct {
	Name string

	Shell   color.RGBA
	Face    color.RGBA
	Screen  color.RGBA
	DPad    color.RGBA
	AB      color.RGBA
	Detail  color.RGBA
	Battery color.RGBA
	Line1   color.RGBA
	Line2   color.RGBA
}

// Role returns the color assigned to r.
func (p Palette) Role(r Role) color.RGBA {
	switch r {
	case Shell:
		return p.Shell
	case Face:
		return p.Face
	case Screen:
		return p.Screen
	case DPad:
		return p.DPad
	case AB:
		return p.AB
	case Detail:
		return p.Detail
	case Battery:
		return p.Battery
	case Line1:
		return p.Line1
	case Line2:
		return p.Line2
	}
	return color.RGBA{A: 0xFF}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

// The built-in palettes. Default, All and Lookup work on copies taken at
// init, so assigning to these variables does not change what they return.
var (
	Standard = Palette{
		Name:    "standard",
		Shell:   rgb(190, 190, 190),
		Face:    rgb(88, 88, 100),
		Screen:  rgb(80, 100, 20),
		DPad:    rgb(0, 0, 0),
		AB:      rgb(140, 30, 80),
		Detail:  rgb(200, 200, 200),
		Battery: rgb(40, 40, 40),
		Line1:   rgb(140, 30, 80),
		Line2:   rgb(20, 30, 120),
	}

	// Mono uses the four greens of a pea-soup LCD.
	Mono = Palette{
		Name:    "mono",
		Shell:   rgb(155, 188, 15),
		Face:    rgb(48, 98, 48),
		Screen:  rgb(139, 172, 15),
		DPad:    rgb(15, 56, 15),
		AB:      rgb(15, 56, 15),
		Detail:  rgb(139, 172, 15),
		Battery: rgb(15, 56, 15),
		Line1:   rgb(139, 172, 15),
		Line2:   rgb(155, 188, 15),
	}

	BW = Palette{
		Name:    "bw",
		Shell:   rgb(255, 255, 255),
		Face:    rgb(0, 0, 0),
		Screen:  rgb(255, 255, 255),
		DPad:    rgb(0, 0, 0),
		AB:      rgb(0, 0, 0),
		Detail:  rgb(0, 0, 0),
		Battery: rgb(255, 255, 255),
		Line1:   rgb(255, 255, 255),
		Line2:   rgb(255, 255, 255),
	}

	Rainbow = Palette{
		Name:    "rainbow",
		Shell:   rgb(255, 200, 40),
		Face:    rgb(60, 40, 160),
		Screen:  rgb(0, 200, 180),
		DPad:    rgb(230, 40, 40),
		AB:      rgb(40, 180, 60),
		Detail:  rgb(255, 120, 0),
		Battery: rgb(255, 0, 128),
		Line1:   rgb(255, 0, 0),
		Line2:   rgb(0, 120, 255),
	}
)

// Default is the palette used when none is selected.
var Default = Standard

var all = []Palette{Standard, Mono, BW, Rainbow}

var aliases = map[string]string{
	"default":     "standard",
	"monochrome":  "mono",
	"black/white": "bw",
	"blackwhite":  "bw",
}

// Names returns the canonical palette names in display order.
func Names() []string {
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// All returns every built-in palette in display order.
func All() []Palette {
	out := make([]Palette, len(all))
	copy(out, all)
	return out
}

// Lookup finds a palette by name, ignoring case and surrounding space.
func Lookup(name string) (Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	for _, p := range all {
		if p.Name == key {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Next returns the palette after name in display order, wrapping around.
// Unknown names yield the first palette.
func Next(name string) Palette {
	return step(name, 1)
}

// Prev returns the palette before name in display order, wrapping around.
// Unknown names yield the first palette.
func Prev(name string) Palette {
	return step(name, -1)
}

func step(name string, delta int) Palette {
	p, err := Lookup(name)
	if err != nil {
		return all[0]
	}
	for i := range all {
		if all[i].Name == p.Name {
			return all[(i+delta+len(all))%len(all)]
		}
	}
	return all[0]
}
