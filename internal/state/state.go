package state

import (
	"sync"

	"github.com/rook-computer/handheld/internal/palette"
)

// State is what every screen and API handler reads. Revision increases on
// every change so renderers can skip identical frames.
type State struct {
	Palette  string
	Revision uint64
	WebURL   string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore starts with the named palette, or the default one when name is
// empty or unknown.
func NewStore(name string) *Store {
	p, err := palette.Lookup(name)
	if err != nil {
		p = palette.Default
	}
	return &Store{state: State{Palette: p.Name, Revision: 1}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// Palette returns the selected palette.
func (store *Store) Palette() palette.Palette {
	p, err := palette.Lookup(store.Snapshot().Palette)
	if err != nil {
		return palette.Default
	}
	return p
}

// SelectPalette replaces the selected palette. Unknown names leave the state
// unchanged and return an error wrapping palette.ErrUnknown.
func (store *Store) SelectPalette(name string) (palette.Palette, error) {
	p, err := palette.Lookup(name)
	if err != nil {
		return palette.Palette{}, err
	}
	store.mu.Lock()
	if store.state.Palette != p.Name {
		store.state.Palette = p.Name
		store.state.Revision++
	}
	store.mu.Unlock()
	return p, nil
}

func (store *Store) SetWebURL(url string) {
	store.mu.Lock()
	if store.state.WebURL != url {
		store.state.WebURL = url
		store.state.Revision++
	}
	store.mu.Unlock()
}
