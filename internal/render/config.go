package render

import "image/color"

// Config holds the look of the device screen and the logical canvas it is
// drawn on before scaling to the output.
type Config struct {
	Width  int
	Height int

	Background color.RGBA
	Foreground color.RGBA
	Accent     color.RGBA
	Muted      color.RGBA

	Margin      int
	CaptionSize int
	TextSize    int
	QRSize      int

	FrameRate int
}

func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,

		Background: color.RGBA{R: 0x1E, G: 0x1E, B: 0x24, A: 0xFF}, // #1e1e24
		Foreground: color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}, // #eeeeee
		Accent:     color.RGBA{R: 0xFF, G: 0xDC, B: 0x00, A: 0xFF}, // #ffdc00
		Muted:      color.RGBA{R: 0x80, G: 0x80, B: 0x8C, A: 0xFF},

		Margin:      40,
		CaptionSize: 44,
		TextSize:    26,
		QRSize:      220,

		FrameRate: 30,
	}
}
