package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/handheld/internal/app/screens"
	"github.com/rook-computer/handheld/internal/buttons"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/state"
	"github.com/rook-computer/handheld/internal/system"
	"github.com/rook-computer/handheld/internal/web"
)

type App struct {
	Store   *state.Store
	Render  render.Renderer
	Web     web.Server
	Buttons buttons.Buttons
	Logger  Logger
	Debug   bool

	// ListenAddr is used to derive the URL shown on screen. Empty disables it.
	ListenAddr string

	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Buttons: buttonDriver, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Store == nil {
		app.Store = state.NewStore("")
	}
	app.exitOnce.Store(false)

	if app.Render == nil {
		app.Render = render.NewFBRenderer()
	}
	theme := render.DefaultConfig()
	fb, onConsole := app.Render.(*render.FBRenderer)
	if onConsole {
		fb.Logger = app.Logger
		theme = fb.Config
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if onConsole {
		// Switch console to KD_GRAPHICS to suppress hardware cursor
		if err := system.SetGraphicsModeWithLog(app.Logger); err != nil && app.Debug {
			app.Logger.Infof("tty", "continuing without graphics mode")
		}
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
	}

	if app.ListenAddr != "" {
		if url, err := system.WebURL(app.ListenAddr); err != nil {
			app.Logger.Errorf("app", "no web url to show: %v", err)
		} else {
			app.Store.SetWebURL(url)
		}
	}

	if err := app.setScreen(ctx, screens.NewConsoleScreen(theme, app.Logger)); err != nil {
		return err
	}
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	if app.Web != nil {
		if err := app.Web.Start(loopCtx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
		}
		defer func() { _ = app.Web.Stop() }()
	}

	if app.Buttons != nil {
		if err := app.Buttons.Start(loopCtx); err != nil {
			app.Logger.Errorf("input", "buttons start error: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.eventLoop(loopCtx)
			}()
		}
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	if app.Buttons != nil {
		_ = app.Buttons.Stop()
	}
	wg.Wait()
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	return err
}

func (app *App) eventLoop(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			app.HandleEvent(ev)
		}
	}
}

// HandleEvent applies a button event to the store. Exit ends Start.
func (app *App) HandleEvent(ev buttons.Event) {
	exit, err := buttons.Apply(app.Store, ev)
	switch {
	case exit:
		app.Logger.Infof("input", "exit requested")
		app.Exit(nil)
	case err != nil:
		app.Logger.Errorf("input", "%s: %v", ev, err)
	default:
		app.Logger.Infof("app", "palette %s selected", app.Store.Snapshot().Palette)
	}
}

func (app *App) setScreen(ctx context.Context, screen render.Screen) error {
	if screen == nil {
		return errors.New("nil screen")
	}
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one line per entry. It is safe for concurrent use.
type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.w == nil {
		return
	}
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
