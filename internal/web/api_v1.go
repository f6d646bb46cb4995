package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/render"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type paletteInfo struct {
	Name  string            `json:"name"`
	Roles map[string]string `json:"roles"`
}

type palettesResponse struct {
	Selected string        `json:"selected"`
	Palettes []paletteInfo `json:"palettes"`
}

type paletteResponse struct {
	Name     string `json:"name"`
	Revision uint64 `json:"revision"`
}

type selectPaletteRequest struct {
	Name string `json:"name"`
}

type statusResponse struct {
	Palette  string `json:"palette"`
	Revision uint64 `json:"revision"`
	WebURL   string `json:"webUrl,omitempty"`
}

// Select requests are a single small JSON object.
const maxSelectBody = 4 << 10

func apiV1RouterWithDeps(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/palettes", func(w http.ResponseWriter, r *http.Request) { handlePalettes(w, r, deps) })
	mux.HandleFunc("/palette", func(w http.ResponseWriter, r *http.Request) { handlePalette(w, r, deps) })
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	for _, f := range render.Formats() {
		format := f
		mux.HandleFunc("/render"+format.Ext, func(w http.ResponseWriter, r *http.Request) {
			handleRender(w, r, deps, format)
		})
	}
	return mux
}

func handlePalettes(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	resp := palettesResponse{Selected: deps.Store.Snapshot().Palette}
	for _, p := range palette.All() {
		info := paletteInfo{Name: p.Name, Roles: make(map[string]string, len(palette.Roles))}
		for _, role := range palette.Roles {
			info.Roles[role.String()] = hexColor(p.Role(role))
		}
		resp.Palettes = append(resp.Palettes, info)
	}
	writeJSON(w, http.StatusOK, resp)
}

func handlePalette(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		snap := deps.Store.Snapshot()
		writeJSON(w, http.StatusOK, paletteResponse{Name: snap.Palette, Revision: snap.Revision})
	case http.MethodPost:
		var req selectPaletteRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxSelectBody))
		if err := dec.Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if _, err := deps.Store.SelectPalette(req.Name); err != nil {
			if errors.Is(err, palette.ErrUnknown) {
				writeAPIError(w, http.StatusNotFound, "unknown_palette", err.Error())
				return
			}
			writeAPIError(w, http.StatusInternalServerError, "select_failed", err.Error())
			return
		}
		snap := deps.Store.Snapshot()
		writeJSON(w, http.StatusOK, paletteResponse{Name: snap.Palette, Revision: snap.Revision})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	snap := deps.Store.Snapshot()
	writeJSON(w, http.StatusOK, statusResponse{Palette: snap.Palette, Revision: snap.Revision, WebURL: snap.WebURL})
}

// handleRender serves GET /render.{png,svg,pdf}?palette=&scale=&download=1.
// The palette defaults to the current selection.
func handleRender(w http.ResponseWriter, r *http.Request, deps APIV1Deps, format render.Format) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	query := r.URL.Query()

	name := strings.TrimSpace(query.Get("palette"))
	if name == "" {
		name = deps.Store.Snapshot().Palette
	}
	p, err := palette.Lookup(name)
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "unknown_palette", err.Error())
		return
	}

	opts := render.Options{Scale: 1}
	if raw := strings.TrimSpace(query.Get("scale")); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(scale > 0 && scale <= deps.MaxScale) {
			writeAPIError(w, http.StatusBadRequest, "invalid_scale",
				fmt.Sprintf("scale must be a number in (0, %g]", deps.MaxScale))
			return
		}
		opts.Scale = scale
	}

	// Render fully before writing so failures still produce a JSON error.
	var buf bytes.Buffer
	if err := deps.Export(&buf, format.Name, p, opts); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	if query.Get("download") != "" {
		filename := "handheld-" + p.Name + format.Ext
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
