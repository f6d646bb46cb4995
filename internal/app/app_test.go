package app

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/handheld/internal/buttons"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/state"
	"github.com/rook-computer/handheld/internal/web"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.add("INFO", component)
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.add("ERROR", component)
}

func (l *recordingLogger) add(level, component string) {
	l.mu.Lock()
	l.lines = append(l.lines, level+" "+component)
	l.mu.Unlock()
}

func TestHandleEvent(t *testing.T) {
	store := state.NewStore("standard")
	logger := &recordingLogger{}
	a := New(store, nil, nil, nil)
	a.Logger = logger

	steps := []struct {
		ev   buttons.Event
		want string
	}{
		{buttons.Next, "mono"},
		{buttons.Next, "bw"},
		{buttons.Prev, "mono"},
		{buttons.Select("rainbow"), "rainbow"},
		{buttons.Select("sepia"), "rainbow"},
	}
	for _, step := range steps {
		a.HandleEvent(step.ev)
		if got := store.Snapshot().Palette; got != step.want {
			t.Fatalf("after %q palette = %q, want %q", step.ev, got, step.want)
		}
	}
	if got := logger.lines[len(logger.lines)-1]; got != "ERROR input" {
		t.Errorf("unknown palette logged as %q, want an input error", got)
	}

	a.HandleEvent(buttons.Exit)
	select {
	case err := <-a.exitCh:
		if err != nil {
			t.Errorf("exit error = %v, want nil", err)
		}
	default:
		t.Fatal("Exit event did not request exit")
	}
}

func TestExitOnce(t *testing.T) {
	a := New(state.NewStore(""), nil, nil, nil)
	first := errors.New("first")
	a.Exit(first)
	a.Exit(errors.New("second"))
	if err := <-a.exitCh; err != first {
		t.Errorf("exit error = %v, want first", err)
	}
	select {
	case err := <-a.exitCh:
		t.Errorf("second exit delivered: %v", err)
	default:
	}
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileLogger(&buf)
	logger.Infof("app", "palette %s selected", "mono")
	logger.Errorf("web", "listen: %v", errors.New("address in use"))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	patterns := []string{
		`^\S+ \[INFO\] app: palette mono selected$`,
		`^\S+ \[ERROR\] web: listen: address in use$`,
	}
	for i, p := range patterns {
		if !regexp.MustCompile(p).MatchString(lines[i]) {
			t.Errorf("line %d = %q, want match %s", i, lines[i], p)
		}
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileLogger(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Infof("input", "event %d", j)
			}
		}()
	}
	wg.Wait()
	if got := strings.Count(buf.String(), "\n"); got != 500 {
		t.Errorf("logged %d lines, want 500", got)
	}
}

type chanButtons struct{ ch chan buttons.Event }

func (b *chanButtons) Start(ctx context.Context) error { return nil }
func (b *chanButtons) Stop() error                     { return nil }
func (b *chanButtons) Events() <-chan buttons.Event    { return b.ch }

func startHeadless(t *testing.T, ctx context.Context, store *state.Store, keys buttons.Buttons) <-chan error {
	t.Helper()
	a := New(store, &render.NoopRenderer{}, &web.NoopServer{}, keys)
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	return done
}

func TestStartRunsUntilExitKey(t *testing.T) {
	store := state.NewStore("standard")
	keys := &chanButtons{ch: make(chan buttons.Event)}
	done := startHeadless(t, context.Background(), store, keys)

	keys.ch <- buttons.Next
	keys.ch <- buttons.Exit

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after the exit key")
	}
	if got := store.Snapshot().Palette; got != "mono" {
		t.Errorf("palette = %q, want mono", got)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := startHeadless(t, ctx, state.NewStore(""), buttons.NewNoopButtons())
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
