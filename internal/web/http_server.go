package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

type serverLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

const shutdownTimeout = 5 * time.Second

// HTTPServer serves the palette picker and /api/v1 on Addr.
type HTTPServer struct {
	Addr string

	// StaticDir, when set, replaces the embedded UI at "/".
	StaticDir string

	Deps    APIV1Deps
	DevMode bool
	Logger  serverLogger

	// Handler replaces the default mux when set.
	Handler http.Handler

	mu      sync.Mutex
	srv     *http.Server
	ln      net.Listener
	stopped bool
}

func NewHTTPServer(cfg ServerConfig, deps APIV1Deps) *HTTPServer {
	if deps.MaxScale <= 0 {
		deps.MaxScale = cfg.MaxScale
	}
	return &HTTPServer{Addr: cfg.ListenAddr, DevMode: cfg.DevMode, Deps: deps}
}

func (s *HTTPServer) handler() http.Handler {
	h := s.Handler
	if h == nil {
		h = NewDefaultMux(s.StaticDir, APIV1Config{Deps: s.Deps})
	}
	if s.DevMode {
		h = WithDevCORS(h)
	}
	return h
}

// Start binds Addr and serves in the background until ctx is done or Stop
// is called. A stopped server cannot be restarted.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.stopped:
		return errors.New("web server already stopped")
	case s.srv != nil:
		return nil
	}

	addr := s.Addr
	if addr == "" {
		addr = DefaultListenAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: s.handler(), ReadHeaderTimeout: 5 * time.Second}
	s.srv, s.ln = srv, ln
	s.infof("listening on %s", ln.Addr())

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errorf("serve: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()
	return nil
}

// ListenAddr returns the bound address, or "" when not serving.
func (s *HTTPServer) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop shuts the server down, waiting up to five seconds for in-flight
// requests. It is safe to call more than once.
func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	srv := s.srv
	s.srv, s.ln = nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	s.infof("stopped")
	return err
}

func (s *HTTPServer) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("web", format, args...)
	}
}

func (s *HTTPServer) errorf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("web", format, args...)
	}
}
