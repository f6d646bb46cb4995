package sim

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rook-computer/handheld/internal/buttons"
	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/state"
	"github.com/rook-computer/handheld/internal/web"
)

// Control applies simulated key presses, from the window or from the
// /sim/ endpoints, to the shared store.
type Control struct {
	store          *state.Store
	startupPalette string

	exitRequested atomic.Bool
	presses       atomic.Int64
}

func NewControl(store *state.Store) *Control {
	if store == nil {
		store = state.NewStore("")
	}
	return &Control{store: store, startupPalette: store.Snapshot().Palette}
}

func (c *Control) Store() *state.Store { return c.store }

// Press behaves like the device receiving ev from its keyboard.
func (c *Control) Press(ev buttons.Event) error {
	c.presses.Add(1)
	exit, err := buttons.Apply(c.store, ev)
	if exit {
		c.exitRequested.Store(true)
	}
	return err
}

func (c *Control) ExitRequested() bool { return c.exitRequested.Load() }

// Reset selects the palette the simulator started with.
func (c *Control) Reset() error {
	_, err := c.store.SelectPalette(c.startupPalette)
	return err
}

// ParseKey accepts the event names next, prev and exit, a digit selecting
// the n-th palette, or a palette name.
func ParseKey(key string) (buttons.Event, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "":
		return "", false
	case string(buttons.Next), string(buttons.Prev), string(buttons.Exit):
		return buttons.Event(key), true
	}
	names := palette.Names()
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > len(names) {
			return "", false
		}
		return buttons.Select(names[n-1]), true
	}
	return buttons.Select(key), true
}

// RegisterEndpoints adds /sim/reset and /sim/key/{key} to handler when it
// is a *http.ServeMux.
func RegisterEndpoints(handler http.Handler, control *Control) {
	mux, ok := handler.(*http.ServeMux)
	if !ok {
		// Only supported when the simulator uses the default mux.
		return
	}

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "palette": control.store.Snapshot().Palette})
	})

	mux.HandleFunc("/sim/key/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ev, ok := ParseKey(strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/key/"), "/"))
		if !ok {
			writeSimError(w, http.StatusBadRequest, "unknown key")
			return
		}
		if err := control.Press(ev); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"palette": control.store.Snapshot().Palette,
			"exit":    control.ExitRequested(),
		})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}

// DisplayAddr turns a listen address into something a browser can open.
func DisplayAddr(addr string) string {
	if addr == "" {
		return "127.0.0.1" + web.DefaultListenAddr
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if len(addr) > 8 && addr[:8] == "0.0.0.0:" {
		return "127.0.0.1" + addr[7:]
	}
	if len(addr) > 5 && addr[:5] == "[::]:" {
		return "127.0.0.1" + addr[4:]
	}
	return addr
}
