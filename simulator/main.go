package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rook-computer/handheld/internal/app/screens"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/sim"
	"github.com/rook-computer/handheld/internal/state"
	"github.com/rook-computer/handheld/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(web.DefaultListenAddr)
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	paletteName := flag.String("palette", "", "palette shown at startup")
	headless := flag.Bool("headless", false, "run only the web server, without a window")
	zoom := flag.Float64("zoom", 1, "window size multiplier")
	flag.Parse()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(*paletteName)
	control := sim.NewControl(store)

	cfg := defaults
	cfg.ListenAddr, cfg.DevMode = *listenAddr, *devMode
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = web.DefaultListenAddr
	}
	server := web.NewHTTPServer(cfg, web.APIV1Deps{Store: store})
	server.StaticDir = *staticDir
	server.Handler = web.NewDefaultMux(server.StaticDir, web.APIV1Config{Deps: server.Deps})
	sim.RegisterEndpoints(server.Handler, control)

	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}
	defer func() { _ = server.Stop() }()

	url := "http://" + sim.DisplayAddr(server.ListenAddr()) + "/"
	store.SetWebURL(url)
	fmt.Println("Handheld simulator listening on", server.ListenAddr())
	fmt.Println("Palette:", store.Snapshot().Palette)
	fmt.Println("UI:", url)

	if *headless {
		<-processCtx.Done()
		return
	}

	theme := render.DefaultConfig()
	game := newSimGame(processCtx, control, screens.NewConsoleScreen(theme, nil), theme)
	game.logf = func(format string, args ...any) { fmt.Printf(format+"\n", args...) }

	scale := *zoom
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(theme.Width)*scale), int(float64(theme.Height)*scale))
	ebiten.SetWindowTitle("handheld simulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}
