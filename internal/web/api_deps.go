package web

import (
	"io"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/state"
)

// PaletteStore abstracts the selection state used by the API.
//
// The concrete implementation is *state.Store, shared with the screen.
type PaletteStore interface {
	Snapshot() state.State
	SelectPalette(name string) (palette.Palette, error)
}

// ExportFunc renders p in format to w.
type ExportFunc func(w io.Writer, format string, p palette.Palette, opts render.Options) error

type APIV1Deps struct {
	Store  PaletteStore
	Export ExportFunc

	// MaxScale bounds the scale query parameter of the render endpoints.
	MaxScale float64
}

const defaultMaxScale = 8

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Store == nil {
		out.Store = state.NewStore("")
	}
	if out.Export == nil {
		out.Export = render.Export
	}
	if out.MaxScale <= 0 {
		out.MaxScale = defaultMaxScale
	}
	return out
}
