package render

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/handheld/internal/state"
)

const DefaultFramebuffer = "/dev/fb0"

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device string
	Config Config
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	fbDev   *fb.Device
	canvas  *Canvas
	running atomic.Bool

	mu      sync.Mutex
	current Screen
	lastRev uint64
	drawn   bool
}

func NewFBRenderer() *FBRenderer {
	return &FBRenderer{Device: DefaultFramebuffer, Config: DefaultConfig()}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.Device
	if path == "" {
		path = DefaultFramebuffer
	}
	dev, err := fb.Open(path)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())
	}

	if r.Config.Width == 0 || r.Config.Height == 0 {
		r.Config = DefaultConfig()
	}
	r.canvas = NewCanvas(r.Config)
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.drawn = false
	r.mu.Unlock()
}

// RedrawWithState draws the current screen for snap and copies it to the framebuffer.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() || r.fbDev == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	start := time.Now()
	r.canvas.FillBackground()
	r.current.Draw(r.canvas, snap)
	blitToFB(r.fbDev, r.canvas.Image())
	r.lastRev = snap.Revision
	r.drawn = true
	if r.Logger != nil {
		r.Logger.Infof("fb", "redraw done, palette=%s rev=%d in %s", snap.Palette, snap.Revision, time.Since(start).Round(time.Millisecond))
	}
}

// RunLoop redraws whenever the store revision changes, and once a second
// regardless so the console never shows through.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	fps := r.Config.FrameRate
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastFull := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			r.mu.Lock()
			stale := !r.drawn || snap.Revision != r.lastRev
			r.mu.Unlock()
			if stale || time.Since(lastFull) > time.Second {
				r.RedrawWithState(snap)
				lastFull = time.Now()
			}
		}
	}
}

// nearest-neighbour copy of canvas onto the whole framebuffer.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	if dev == nil {
		return
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	srcWidth := canvas.Bounds().Dx()
	srcHeight := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
