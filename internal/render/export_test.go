package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/rook-computer/handheld/internal/palette"
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func checkPixel(t *testing.T, img image.Image, x, y int, want color.RGBA) {
	t.Helper()
	got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestRenderImageColors(t *testing.T) {
	probes := []struct {
		name string
		x, y int
		role palette.Role
	}{
		{"shell", 180, 330, palette.Shell},
		{"screen", 180, 165, palette.Screen},
		{"bezel", 50, 200, palette.Face},
		{"dpad centre", 75, 400, palette.DPad},
		{"a button", 310, 380, palette.AB},
	}
	for _, p := range palette.All() {
		for _, scale := range []float64{1, 2} {
			img, err := RenderImage(p, Options{Scale: scale})
			if err != nil {
				t.Fatalf("RenderImage(%s, %v): %v", p.Name, scale, err)
			}
			w, h := Options{Scale: scale}.Size()
			if got := img.Bounds().Size(); got != image.Pt(w, h) {
				t.Fatalf("RenderImage(%s, %v) size = %v, want %dx%d", p.Name, scale, got, w, h)
			}
			for _, probe := range probes {
				s := int(scale)
				checkPixel(t, img, probe.x*s, probe.y*s, p.Role(probe.role))
			}
		}
	}
}

func TestRenderImageBackground(t *testing.T) {
	img, err := RenderImage(palette.Standard, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// Outside the rounded bottom-right corner of the body.
	checkPixel(t, img, 355, 588, color.RGBA{})

	img, err = RenderImage(palette.Standard, Options{Background: color.White})
	if err != nil {
		t.Fatal(err)
	}
	checkPixel(t, img, 355, 588, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func TestOptionsSize(t *testing.T) {
	tests := []struct {
		scale float64
		w, h  int
	}{
		{0, 360, 592},
		{-3, 360, 592},
		{1, 360, 592},
		{2, 720, 1184},
		{0.5, 180, 296},
		{1.5, 540, 888},
	}
	for _, tt := range tests {
		w, h := Options{Scale: tt.scale}.Size()
		if w != tt.w || h != tt.h {
			t.Errorf("Options{Scale: %v}.Size() = %d,%d, want %d,%d", tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestLookupFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"png", "png"},
		{" PNG ", "png"},
		{".svg", "svg"},
		{"pdf", "pdf"},
		{"raster", "png"},
	}
	for _, tt := range tests {
		f, err := LookupFormat(tt.in)
		if err != nil {
			t.Errorf("LookupFormat(%q): %v", tt.in, err)
			continue
		}
		if f.Name != tt.want {
			t.Errorf("LookupFormat(%q) = %q, want %q", tt.in, f.Name, tt.want)
		}
	}
	if _, err := LookupFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("LookupFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
	var buf bytes.Buffer
	if err := Export(&buf, "gif", palette.Standard, Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Export(gif) error = %v, want ErrUnknownFormat", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Export(gif) wrote %d bytes", buf.Len())
	}
}

func TestExportPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, "png", palette.Mono, Options{Scale: 2}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode exported png: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(720, 1184) {
		t.Fatalf("png size = %v, want 720x1184", got)
	}
	checkPixel(t, img, 360, 660, palette.Mono.Shell)
	checkPixel(t, img, 360, 330, palette.Mono.Screen)
}

type svgDoc struct {
	Width   string `xml:"width,attr"`
	Height  string `xml:"height,attr"`
	ViewBox string `xml:"viewBox,attr"`
	Rects   []struct {
		Width string `xml:"width,attr"`
		Fill  string `xml:"fill,attr"`
	} `xml:"rect"`
	Paths []struct {
		D           string `xml:"d,attr"`
		Fill        string `xml:"fill,attr"`
		Stroke      string `xml:"stroke,attr"`
		StrokeWidth string `xml:"stroke-width,attr"`
	} `xml:"path"`
}

func exportSVG(t *testing.T, p palette.Palette, opts Options) svgDoc {
	t.Helper()
	var buf bytes.Buffer
	if err := Export(&buf, "svg", p, opts); err != nil {
		t.Fatal(err)
	}
	var doc svgDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("exported svg is not xml: %v", err)
	}
	return doc
}

func TestExportSVG(t *testing.T) {
	doc := exportSVG(t, palette.Standard, Options{})
	if doc.Width != "360" || doc.Height != "592" {
		t.Errorf("svg size = %sx%s, want 360x592", doc.Width, doc.Height)
	}
	if doc.ViewBox != "0 0 360 592" {
		t.Errorf("viewBox = %q", doc.ViewBox)
	}
	if len(doc.Rects) != 0 {
		t.Errorf("transparent export has %d background rects", len(doc.Rects))
	}
	if len(doc.Paths) == 0 {
		t.Fatal("svg has no paths")
	}
	// The body is painted first.
	if got := doc.Paths[0].Fill; got != "#bebebe" {
		t.Errorf("first path fill = %q, want #bebebe", got)
	}
	fills := map[string]bool{}
	for _, p := range doc.Paths {
		if p.D == "" {
			t.Errorf("path with empty d attribute")
		}
		fills[p.Fill] = true
	}
	for _, want := range []string{"#bebebe", "#585864", "#506414", "#000000", "#8c1e50"} {
		if !fills[want] {
			t.Errorf("no path filled with %s", want)
		}
	}
}

func TestExportSVGStrokeWidthScales(t *testing.T) {
	// Every line in the scene is 3 units wide.
	for _, scale := range []float64{1, 2} {
		doc := exportSVG(t, palette.Standard, Options{Scale: scale})
		want := strconv.FormatFloat(3*scale, 'f', -1, 64)
		strokes := 0
		for _, p := range doc.Paths {
			if p.Stroke == "" {
				continue
			}
			strokes++
			if p.Fill != "none" {
				t.Errorf("scale %g: stroked path fill = %q, want none", scale, p.Fill)
			}
			if p.StrokeWidth != want {
				t.Errorf("scale %g: stroke-width = %q, want %q", scale, p.StrokeWidth, want)
			}
		}
		if strokes == 0 {
			t.Errorf("scale %g: no stroked paths", scale)
		}
	}
}

func TestExportSVGBackground(t *testing.T) {
	doc := exportSVG(t, palette.Mono, Options{Scale: 2, Background: color.White})
	if len(doc.Rects) != 1 {
		t.Fatalf("got %d rects, want one background rect", len(doc.Rects))
	}
	if got := doc.Rects[0]; got.Width != "720" || got.Fill != "#ffffff" {
		t.Errorf("background rect width=%s fill=%s, want 720 #ffffff", got.Width, got.Fill)
	}
}

func TestExportPDF(t *testing.T) {
	tests := []struct {
		name string
		p    palette.Palette
		opts Options
	}{
		{"standard", palette.Standard, Options{}},
		{"rainbow scaled", palette.Rainbow, Options{Scale: 2}},
		{"background", palette.BW, Options{Background: color.White}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Export(&buf, "pdf", tt.p, tt.opts); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			if !strings.HasPrefix(out, "%PDF-") {
				t.Errorf("pdf output starts with %q", out[:min(len(out), 8)])
			}
			if !strings.Contains(strings.TrimSpace(out[max(0, len(out)-32):]), "%%EOF") {
				t.Errorf("pdf output is not terminated with %%%%EOF")
			}
		})
	}
}

func TestQuadToCubic(t *testing.T) {
	c1x, c1y, c2x, c2y := quadToCubic(0, 0, 30, 60, 90, 0)
	got := []float64{c1x, c1y, c2x, c2y}
	want := []float64{20, 40, 50, 40}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("quadToCubic mismatch (-want +got):\n%s", diff)
	}
}

func TestArcToQuarterTurns(t *testing.T) {
	var ops []string
	moveTo := func(x, y float64) { ops = append(ops, "move") }
	lineTo := func(x, y float64) { ops = append(ops, "line") }
	var last point
	cubicTo := func(_, _, _, _, x, y float64) {
		ops = append(ops, "cubic")
		last = point{x, y}
	}
	arcTo(10, 10, 5, 0, 2*math.Pi, false, moveTo, lineTo, cubicTo)
	want := []string{"move", "cubic", "cubic", "cubic", "cubic"}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("arc ops mismatch (-want +got):\n%s", diff)
	}
	if !nearFloat(last.x, 15) || !nearFloat(last.y, 10) {
		t.Errorf("full circle ends at %v, want (15,10)", last)
	}

	ops = nil
	arcTo(0, 0, 5, 0, 1, true, moveTo, lineTo, cubicTo)
	if diff := cmp.Diff([]string{"line", "cubic"}, ops); diff != "" {
		t.Errorf("arc with current point mismatch (-want +got):\n%s", diff)
	}
}

type point struct{ x, y float64 }

func nearFloat(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}
