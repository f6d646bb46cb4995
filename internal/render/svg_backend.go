package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"
)

func init() {
	recording.Register("svg", func() recording.Backend { return NewSVGBackend() })
}

// SVGBackend plays a recording back as an SVG document. Recorded paths are
// already in device space, so transforms are not emitted.
type SVGBackend struct {
	buf    bytes.Buffer
	canvas *svg.SVG
}

var _ recording.WriterBackend = (*SVGBackend)(nil)

func NewSVGBackend() *SVGBackend { return &SVGBackend{} }

func (b *SVGBackend) Begin(width, height int) error {
	b.buf.Reset()
	b.canvas = svg.New(&b.buf)
	b.canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	return nil
}

func (b *SVGBackend) End() error {
	b.canvas.End()
	return nil
}

func (b *SVGBackend) Save()                                {}
func (b *SVGBackend) Restore()                             {}
func (b *SVGBackend) SetTransform(recording.Matrix)        {}
func (b *SVGBackend) SetClip(*gg.Path, recording.FillRule) {}
func (b *SVGBackend) ClearClip()                           {}

func (b *SVGBackend) FillPath(path *gg.Path, brush recording.Brush, rule recording.FillRule) {
	d := svgPathData(path)
	if d == "" {
		return
	}
	attrs := paintAttrs("fill", brush)
	if rule == recording.FillRuleEvenOdd {
		attrs = append(attrs, `fill-rule="evenodd"`)
	}
	b.canvas.Path(d, attrs...)
}

func (b *SVGBackend) StrokePath(path *gg.Path, brush recording.Brush, stroke recording.Stroke) {
	d := svgPathData(path)
	if d == "" {
		return
	}
	attrs := append([]string{`fill="none"`}, paintAttrs("stroke", brush)...)
	attrs = append(attrs, `stroke-width="`+svgNum(stroke.Width)+`"`)
	switch stroke.Cap {
	case recording.LineCapRound:
		attrs = append(attrs, `stroke-linecap="round"`)
	case recording.LineCapSquare:
		attrs = append(attrs, `stroke-linecap="square"`)
	}
	b.canvas.Path(d, attrs...)
}

func (b *SVGBackend) FillRect(rect recording.Rect, brush recording.Brush) {
	b.canvas.Rect(px(rect.MinX), px(rect.MinY), px(rect.Width()), px(rect.Height()), paintAttrs("fill", brush)...)
}

func (b *SVGBackend) DrawImage(img image.Image, src, dst recording.Rect, opts recording.ImageOptions) {
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		return
	}
	link := "data:image/png;base64," + base64.StdEncoding.EncodeToString(enc.Bytes())
	b.canvas.Image(px(dst.MinX), px(dst.MinY), px(dst.Width()), px(dst.Height()), link)
}

func (b *SVGBackend) DrawText(s string, x, y float64, face text.Face, brush recording.Brush) {
	b.canvas.Text(px(x), px(y), s, paintAttrs("fill", brush)...)
}

// WriteTo writes the finished document.
func (b *SVGBackend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

func svgPathData(path *gg.Path) string {
	if path == nil {
		return ""
	}
	var sb strings.Builder
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch verb {
		case gg.MoveTo:
			sb.WriteString("M" + svgNum(c[0]) + " " + svgNum(c[1]))
		case gg.LineTo:
			sb.WriteString("L" + svgNum(c[0]) + " " + svgNum(c[1]))
		case gg.QuadTo:
			sb.WriteString("Q" + svgNum(c[0]) + " " + svgNum(c[1]) + " " + svgNum(c[2]) + " " + svgNum(c[3]))
		case gg.CubicTo:
			sb.WriteString("C" + svgNum(c[0]) + " " + svgNum(c[1]) + " " + svgNum(c[2]) + " " +
				svgNum(c[3]) + " " + svgNum(c[4]) + " " + svgNum(c[5]))
		case gg.Close:
			sb.WriteString("Z")
		}
	})
	return sb.String()
}

// paintAttrs returns name="value" attributes for a solid brush, in the
// form svg.SVG appends verbatim.
func paintAttrs(attr string, brush recording.Brush) []string {
	c := brushColor(brush)
	out := []string{fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, channel(c.R), channel(c.G), channel(c.B))}
	if c.A < 1 {
		out = append(out, fmt.Sprintf(`%s-opacity="%s"`, attr, svgNum(c.A)))
	}
	return out
}

// brushColor returns the color of a solid brush; other brushes paint black.
func brushColor(brush recording.Brush) gg.RGBA {
	switch sb := brush.(type) {
	case recording.SolidBrush:
		return sb.Color
	case *recording.SolidBrush:
		if sb != nil {
			return sb.Color
		}
	}
	return gg.RGBA{A: 1}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func px(v float64) int { return int(math.Round(v)) }

func svgNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
