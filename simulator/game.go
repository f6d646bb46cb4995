package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rook-computer/handheld/internal/buttons"
	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/sim"
)

type keyBinding struct {
	key ebiten.Key
	ev  buttons.Event
}

// simKeys mirrors the device keymap.
func simKeys() []keyBinding {
	keys := []keyBinding{
		{ebiten.KeySpace, buttons.Next},
		{ebiten.KeyN, buttons.Next},
		{ebiten.KeyArrowRight, buttons.Next},
		{ebiten.KeyP, buttons.Prev},
		{ebiten.KeyArrowLeft, buttons.Prev},
		{ebiten.KeyF4, buttons.Exit},
		{ebiten.KeyEscape, buttons.Exit},
	}
	digits := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9}
	for i, name := range palette.Names() {
		if i >= len(digits) {
			break
		}
		keys = append(keys, keyBinding{digits[i], buttons.Select(name)})
	}
	return keys
}

// simGame draws the device screen into a canvas and uploads it to the
// window whenever the store revision changes.
type simGame struct {
	ctx     context.Context
	control *sim.Control
	screen  render.Screen
	canvas  *render.Canvas
	keys    []keyBinding
	logf    func(format string, args ...any)

	frame   *ebiten.Image
	lastRev uint64
	drawn   bool
}

func newSimGame(ctx context.Context, control *sim.Control, screen render.Screen, cfg render.Config) *simGame {
	return &simGame{
		ctx:     ctx,
		control: control,
		screen:  screen,
		canvas:  render.NewCanvas(cfg),
		keys:    simKeys(),
		logf:    func(string, ...any) {},
	}
}

func (g *simGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for _, k := range g.keys {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		if err := g.control.Press(k.ev); err != nil {
			g.logf("key %s: %v", k.ev, err)
		}
	}
	if g.control.ExitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	snap := g.control.Store().Snapshot()
	if !g.drawn || snap.Revision != g.lastRev {
		g.canvas.FillBackground()
		g.screen.Draw(g.canvas, snap)
		if g.frame == nil {
			w, h := g.canvas.Size()
			g.frame = ebiten.NewImage(w, h)
		}
		g.frame.WritePixels(g.canvas.Image().Pix)
		g.lastRev = snap.Revision
		g.drawn = true
	}
	screen.DrawImage(g.frame, nil)
}

func (g *simGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.Size()
}
