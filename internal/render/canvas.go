package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/handheld/internal/render/layout"
)

// Canvas is an offscreen RGBA Drawer. The framebuffer renderer and the
// simulator window both draw screens into one and copy it out.
type Canvas struct {
	cfg Config
	img *image.RGBA

	ttFont *truetype.Font
	mu     sync.Mutex
	faces  map[int]font.Face
}

var _ Drawer = (*Canvas)(nil)

// NewCanvas allocates a cfg.Width×cfg.Height canvas. If the bundled font
// cannot be parsed, text falls back to a bitmap face.
func NewCanvas(cfg Config) *Canvas {
	c := &Canvas{
		cfg:   cfg,
		img:   image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		faces: make(map[int]font.Face),
	}
	if tt, err := truetype.Parse(goregular.TTF); err == nil {
		c.ttFont = tt
	}
	return c
}

// Image returns the backing image. It is reused between frames.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Config() Config { return c.cfg }

func (c *Canvas) Size() (int, int) { return c.cfg.Width, c.cfg.Height }

func (c *Canvas) FillBackground() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: c.cfg.Background}, image.Point{}, draw.Src)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.img, rect.Intersect(c.img.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Over)
}

func (c *Canvas) face(size int) font.Face {
	if size <= 0 {
		size = c.cfg.TextSize
	}
	if c.ttFont == nil {
		return basicfont.Face7x13
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.ttFont, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	c.faces[size] = f
	return f
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style.Size)
	m := face.Metrics()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     m.Ascent.Ceil() + m.Descent.Ceil(),
		Ascent:     m.Ascent.Ceil(),
		Descent:    m.Descent.Ceil(),
		LineHeight: m.Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	metrics := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	fg := style.Color
	if fg == nil {
		fg = c.cfg.Foreground
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fg),
		Face: c.face(style.Size),
		Dot:  fixed.P(x, y+metrics.Ascent),
	}
	d.DrawString(text)
	return metrics
}

func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	b := img.Bounds()
	dst := rect
	if mode == ScaleModeFit {
		dst = layout.FitAspect(rect, b.Dx(), b.Dy())
	}
	if dst.Dx() == b.Dx() && dst.Dy() == b.Dy() {
		draw.Draw(c.img, dst, img, b.Min, draw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, img, b, xdraw.Over, nil)
}
