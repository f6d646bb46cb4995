package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/handheld/internal/state"
)

// Renderer owns an output device and repaints the current Screen from store
// snapshots.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	// RunLoop repaints on revision changes until ctx is done.
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.State)
}

// Screen draws one full frame for a state snapshot.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(d Drawer, st state.State)
}

// NoopRenderer draws nothing. The device binary uses it when running
// without a framebuffer.
type NoopRenderer struct{}

func (*NoopRenderer) Start(context.Context) error           { return nil }
func (*NoopRenderer) Stop() error                           { return nil }
func (*NoopRenderer) SetScreen(Screen)                      {}
func (*NoopRenderer) RunLoop(context.Context, *state.Store) {}
func (*NoopRenderer) RedrawWithState(state.State)           {}

// Drawer is what a Screen paints on. Coordinates are canvas pixels.
type Drawer interface {
	Size() (width int, height int)

	FillBackground()
	FillRect(rect image.Rectangle, c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	// DrawText places the top of the line at y. Align decides what x means.
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type TextStyle struct {
	Color color.Color
	Size  int // points; 0 uses Config.TextSize
	Align TextAlign
}

type TextMetrics struct {
	Width, Height   int
	Ascent, Descent int
	LineHeight      int
}

type ScaleMode int

const (
	// ScaleModeFit keeps the aspect ratio and centres the image.
	ScaleModeFit ScaleMode = iota
	ScaleModeStretch
)
