package web

import "net/http"

// WithDevCORS lets a UI served from another origin (a local dev server)
// call the API. Only used when ServerConfig.DevMode is enabled.
func WithDevCORS(next http.Handler) http.Handler {
	if next == nil {
		next = http.DefaultServeMux
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET,HEAD,POST,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			// Preview downloads read the filename and size.
			h.Set("Access-Control-Expose-Headers", "Content-Disposition,Content-Length")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
