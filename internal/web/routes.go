package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rook-computer/handheld/internal/assets"
)

type APIV1Config struct {
	Deps APIV1Deps
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1RouterWithDeps(cfg.Deps)))
}

// RegisterUI serves either embedded UI assets or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / for the web UI
func NewDefaultMux(staticDir string, cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux, staticDir)
	return mux
}

// StaticUIHandler serves the embedded page, or staticDir when it names an
// existing directory. A staticDir that is not a directory serves 404s.
func StaticUIHandler(staticDir string) http.Handler {
	var fileServer http.Handler
	if staticDir == "" {
		fileServer = http.FileServer(http.FS(assets.WebUI))
	} else if st, err := os.Stat(staticDir); err == nil && st.IsDir() {
		fileServer = http.FileServer(http.Dir(staticDir))
	} else {
		return http.HandlerFunc(http.NotFound)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean path to avoid oddities.
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
