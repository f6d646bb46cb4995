package screens

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/render/layout"
	"github.com/rook-computer/handheld/internal/scene"
	"github.com/rook-computer/handheld/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// ConsoleScreen shows the console in the selected palette on the left and
// the palette list, key hints and the web UI address on the right.
type ConsoleScreen struct {
	Theme  render.Config
	Logger Logger

	mu          sync.Mutex
	art         *image.RGBA
	artPalette  string
	artScale    float64
	lastErrText string

	qr render.QRCache
}

func NewConsoleScreen(theme render.Config, logger Logger) *ConsoleScreen {
	return &ConsoleScreen{Theme: theme, Logger: logger}
}

func (screen *ConsoleScreen) Start(ctx context.Context) error { return nil }
func (screen *ConsoleScreen) Stop() error                     { return nil }

func (screen *ConsoleScreen) Draw(drawer render.Drawer, st state.State) {
	drawer.FillBackground()

	width, height := drawer.Size()
	area := layout.Inset(image.Rect(0, 0, width, height), screen.Theme.Margin)
	left, right := layout.SplitVertical(area, area.Dx()*3/5)

	p, err := palette.Lookup(st.Palette)
	if err != nil {
		p = palette.Default
	}
	if art := screen.artwork(p, left); art != nil {
		drawer.DrawImageInRect(art, left, render.ScaleModeFit)
	}
	screen.drawPanel(drawer, layout.Inset(right, screen.Theme.Margin/2), p, st.WebURL)
}

// artwork returns the console rasterized to fit target, re-rendering only
// when the palette or size changes.
func (screen *ConsoleScreen) artwork(p palette.Palette, target image.Rectangle) *image.RGBA {
	scale := float64(target.Dx()) / scene.Width
	if s := float64(target.Dy()) / scene.Height; s < scale {
		scale = s
	}
	if scale <= 0 {
		return nil
	}

	screen.mu.Lock()
	defer screen.mu.Unlock()
	if screen.art != nil && screen.artPalette == p.Name && screen.artScale == scale {
		return screen.art
	}
	img, err := render.RenderImage(p, render.Options{Scale: scale})
	if err != nil {
		if msg := err.Error(); msg != screen.lastErrText && screen.Logger != nil {
			screen.Logger.Errorf("screen", "render %s: %v", p.Name, err)
			screen.lastErrText = msg
		}
		return screen.art
	}
	screen.art, screen.artPalette, screen.artScale = img, p.Name, scale
	return img
}

func (screen *ConsoleScreen) drawPanel(drawer render.Drawer, rect image.Rectangle, selected palette.Palette, webURL string) {
	theme := screen.Theme
	x, y := rect.Min.X, rect.Min.Y

	caption := render.TextStyle{Color: theme.Accent, Size: theme.CaptionSize}
	y += drawer.DrawText(selected.Name, x, y, caption).LineHeight
	y += theme.Margin / 2

	for i, name := range palette.Names() {
		style := render.TextStyle{Color: theme.Foreground, Size: theme.TextSize}
		marker := "  "
		if name == selected.Name {
			style.Color = theme.Accent
			marker = "> "
		}
		y += drawer.DrawText(fmt.Sprintf("%s%d  %s", marker, i+1, name), x, y, style).LineHeight
	}

	y += theme.Margin / 2
	hint := render.TextStyle{Color: theme.Muted, Size: theme.TextSize * 3 / 4}
	y += drawer.DrawText("space next   p previous   F4 quit", x, y, hint).LineHeight

	if webURL == "" {
		return
	}
	qrImg, err := screen.qr.Image(webURL, theme.QRSize)
	if err != nil {
		if screen.Logger != nil {
			screen.Logger.Errorf("screen", "qr code: %v", err)
		}
		return
	}
	const quiet = 8
	urlStyle := render.TextStyle{Color: theme.Foreground, Size: theme.TextSize * 3 / 4}
	urlHeight := drawer.MeasureText(webURL, urlStyle).LineHeight
	_, bottom := layout.SplitHorizontal(rect, rect.Dy()-theme.QRSize-2*quiet-urlHeight)
	if bottom.Min.Y < y {
		return
	}
	qrArea, urlArea := layout.SplitHorizontal(bottom, bottom.Dy()-urlHeight)
	qrRect := layout.FitSquare(layout.Inset(qrArea, quiet))
	// Light quiet zone so phones can scan it against the dark background.
	drawer.FillRect(qrRect.Inset(-quiet), theme.Foreground)
	drawer.DrawImageInRect(qrImg, qrRect, render.ScaleModeFit)
	drawer.DrawText(webURL, urlArea.Min.X, urlArea.Min.Y, urlStyle)
}
