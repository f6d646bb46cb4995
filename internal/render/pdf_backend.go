package render

import (
	"bytes"
	"errors"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
)

func init() {
	recording.Register("pdf", func() recording.Backend { return NewPDFBackend() })
}

// PDFBackend plays a recording back as a single-page PDF. The page is
// flipped so device coordinates (y down) can be used unchanged.
//
// Images and text are not supported; the console scene uses neither.
type PDFBackend struct {
	buf  bytes.Buffer
	page *document.Page
	done bool
}

var _ recording.WriterBackend = (*PDFBackend)(nil)

func NewPDFBackend() *PDFBackend { return &PDFBackend{} }

func (b *PDFBackend) Begin(width, height int) error {
	b.buf.Reset()
	b.done = false
	size := &pdf.Rectangle{URx: float64(width), URy: float64(height)}
	page, err := document.WriteSinglePage(&b.buf, size, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	b.page = page
	b.page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})
	return nil
}

func (b *PDFBackend) End() error {
	if b.page == nil {
		return errors.New("pdf: End before Begin")
	}
	if err := b.page.Close(); err != nil {
		return err
	}
	b.done = true
	return nil
}

func (b *PDFBackend) Save()                                {}
func (b *PDFBackend) Restore()                             {}
func (b *PDFBackend) SetTransform(recording.Matrix)        {}
func (b *PDFBackend) SetClip(*gg.Path, recording.FillRule) {}
func (b *PDFBackend) ClearClip()                           {}

func (b *PDFBackend) FillPath(path *gg.Path, brush recording.Brush, rule recording.FillRule) {
	if path == nil || path.NumVerbs() == 0 {
		return
	}
	// Color operators are not allowed once a path object is open.
	b.page.SetFillColor(pdfColorOf(brush))
	b.appendPath(path)
	if rule == recording.FillRuleEvenOdd {
		b.page.FillEvenOdd()
		return
	}
	b.page.Fill()
}

func (b *PDFBackend) StrokePath(path *gg.Path, brush recording.Brush, stroke recording.Stroke) {
	if path == nil || path.NumVerbs() == 0 {
		return
	}
	b.page.SetStrokeColor(pdfColorOf(brush))
	b.page.SetLineWidth(stroke.Width)
	b.appendPath(path)
	b.page.Stroke()
}

func (b *PDFBackend) FillRect(rect recording.Rect, brush recording.Brush) {
	b.page.SetFillColor(pdfColorOf(brush))
	b.page.Rectangle(rect.MinX, rect.MinY, rect.Width(), rect.Height())
	b.page.Fill()
}

func (b *PDFBackend) DrawImage(image.Image, recording.Rect, recording.Rect, recording.ImageOptions) {}

func (b *PDFBackend) DrawText(string, float64, float64, text.Face, recording.Brush) {}

// WriteTo writes the finished document. It fails if End has not succeeded.
func (b *PDFBackend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, errors.New("pdf: document not finished")
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// appendPath writes path to the page, raising quadratics to cubics.
// Callers set colors and line width first.
func (b *PDFBackend) appendPath(path *gg.Path) {
	var cx, cy, sx, sy float64
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			b.page.MoveTo(c[0], c[1])
			cx, cy = c[0], c[1]
			sx, sy = cx, cy
		case gg.LineTo:
			b.page.LineTo(c[0], c[1])
			cx, cy = c[0], c[1]
		case gg.QuadTo:
			c1x, c1y, c2x, c2y := quadToCubic(cx, cy, c[0], c[1], c[2], c[3])
			b.page.CurveTo(c1x, c1y, c2x, c2y, c[2], c[3])
			cx, cy = c[2], c[3]
		case gg.CubicTo:
			b.page.CurveTo(c[0], c[1], c[2], c[3], c[4], c[5])
			cx, cy = c[4], c[5]
		case gg.Close:
			b.page.ClosePath()
			cx, cy = sx, sy
		}
	})
}

// quadToCubic returns the two cubic control points equivalent to the
// quadratic from (x0, y0) via (qx, qy) to (x, y).
func quadToCubic(x0, y0, qx, qy, x, y float64) (c1x, c1y, c2x, c2y float64) {
	c1x = x0 + 2.0/3.0*(qx-x0)
	c1y = y0 + 2.0/3.0*(qy-y0)
	c2x = x + 2.0/3.0*(qx-x)
	c2y = y + 2.0/3.0*(qy-y)
	return
}

func pdfColorOf(brush recording.Brush) pdfcolor.Color {
	c := brushColor(brush)
	return pdfcolor.DeviceRGB{c.R, c.G, c.B}
}
