package buttons

import (
	"fmt"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/state"
)

// Selector is the part of state.Store that button events act on.
type Selector interface {
	Snapshot() state.State
	SelectPalette(name string) (palette.Palette, error)
}

// Apply performs ev against store and reports whether it asks to exit.
// Next and Prev wrap around the built-in palettes.
func Apply(store Selector, ev Event) (exit bool, err error) {
	current := store.Snapshot().Palette
	var name string
	switch ev {
	case Exit:
		return true, nil
	case Next:
		name = palette.Next(current).Name
	case Prev:
		name = palette.Prev(current).Name
	default:
		var ok bool
		if name, ok = ev.Palette(); !ok {
			return false, fmt.Errorf("unhandled event %q", ev)
		}
	}
	_, err = store.SelectPalette(name)
	return false, err
}
