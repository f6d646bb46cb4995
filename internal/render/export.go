package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	_ "github.com/gogpu/gg/recording/backends/raster"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/scene"
)

// ErrUnknownFormat is returned (wrapped) for export formats without a backend.
var ErrUnknownFormat = errors.New("unknown export format")

// Format describes one export target.
type Format struct {
	Name        string
	Backend     string // recording backend name
	Ext         string
	ContentType string
	Binary      bool
}

var formats = []Format{
	{Name: "png", Backend: "raster", Ext: ".png", ContentType: "image/png", Binary: true},
	{Name: "svg", Backend: "svg", Ext: ".svg", ContentType: "image/svg+xml"},
	{Name: "pdf", Backend: "pdf", Ext: ".pdf", ContentType: "application/pdf", Binary: true},
}

// Formats lists the supported export formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// LookupFormat finds a format by name, extension or backend name.
func LookupFormat(name string) (Format, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	for _, f := range formats {
		if key == f.Name || key == f.Backend || "."+key == f.Ext {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Options control how the scene is rendered.
type Options struct {
	// Scale multiplies the scene size. Zero means 1.
	Scale float64
	// Background is painted behind the console; nil leaves it transparent.
	Background color.Color
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Size returns the output size in pixels for o.
func (o Options) Size() (int, int) {
	s := o.scale()
	return int(math.Ceil(scene.Width * s)), int(math.Ceil(scene.Height * s))
}

// Record draws the scene into a recording that can be played back to any
// registered backend.
func Record(p palette.Palette, opts Options) (*recording.Recording, error) {
	w, h := opts.Size()
	rec := recording.NewRecorder(w, h)
	if opts.Background != nil {
		rec.ClearWithColor(gg.FromColor(opts.Background))
	}
	rec.Scale(opts.scale(), opts.scale())
	if err := scene.Draw(NewRecorderSurface(rec), p); err != nil {
		return nil, err
	}
	return rec.FinishRecording(), nil
}

// Export renders the scene in the named format and writes it to w.
func Export(w io.Writer, format string, p palette.Palette, opts Options) error {
	f, err := LookupFormat(format)
	if err != nil {
		return err
	}
	rec, err := Record(p, opts)
	if err != nil {
		return fmt.Errorf("record scene: %w", err)
	}
	backend, err := recording.NewBackend(f.Backend)
	if err != nil {
		return err
	}
	if err := rec.Playback(backend); err != nil {
		return fmt.Errorf("%s playback: %w", f.Name, err)
	}
	wb, ok := backend.(recording.WriterBackend)
	if !ok {
		return fmt.Errorf("%s backend cannot write to a stream", f.Backend)
	}
	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	return nil
}

// RenderImage rasterizes the scene directly, without a recording.
func RenderImage(p palette.Palette, opts Options) (*image.RGBA, error) {
	w, h := opts.Size()
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if opts.Background != nil {
		dc.ClearWithColor(gg.FromColor(opts.Background))
	}
	dc.Scale(opts.scale(), opts.scale())

	s := NewContextSurface(dc)
	if err := scene.Draw(s, p); err != nil {
		return nil, err
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("rasterize scene: %w", err)
	}

	src := dc.Image()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}
