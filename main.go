package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gogpu/gg"

	"github.com/rook-computer/handheld/internal/app"
	"github.com/rook-computer/handheld/internal/buttons"
	"github.com/rook-computer/handheld/internal/render"
	"github.com/rook-computer/handheld/internal/state"
	"github.com/rook-computer/handheld/internal/web"
)

const (
	envDebug    = "HANDHELD_DEBUG"
	envPalette  = "HANDHELD_PALETTE"
	envStdioLog = "HANDHELD_STDIO_LOG"
)

func main() {
	serverDefaults, err := web.DefaultServerConfigFromEnv(web.DefaultListenAddr)
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	debugDefault, _ := strconv.ParseBool(os.Getenv(envDebug))

	fbPath := flag.String("fb", render.DefaultFramebuffer, `framebuffer device; "none" serves only the web UI`)
	listenAddr := flag.String("listen", serverDefaults.ListenAddr, "web UI listen address, empty to disable; also configurable via "+web.EnvListenAddr+" (\"off\" disables)")
	debug := flag.Bool("debug", debugDefault, "enable debug logging; also configurable via "+envDebug)
	logFile := flag.String("log-file", "./handheld-debug.log", "debug log path")
	paletteName := flag.String("palette", os.Getenv(envPalette), "palette shown at startup; also configurable via "+envPalette)
	inputGlob := flag.String("input", buttons.DefaultInputGlob, "evdev devices to read keys from")
	stdioLog := flag.String("stdio-log", os.Getenv(envStdioLog), "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.Parse()

	// Best-effort: keep panic traces when the console is left in graphics mode.
	if *stdioLog != "" {
		if err := redirectStdIO(*stdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
			gg.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(*paletteName)

	var renderer render.Renderer = &render.NoopRenderer{}
	if *fbPath != "none" {
		fb := render.NewFBRenderer()
		fb.Device = *fbPath
		renderer = fb
	}

	var server web.Server = &web.NoopServer{}
	if *listenAddr != "" {
		cfg := serverDefaults
		cfg.ListenAddr = *listenAddr
		httpServer := web.NewHTTPServer(cfg, web.APIV1Deps{Store: store})
		httpServer.Logger = logger
		server = httpServer
	}

	keys := buttons.NewEvdevButtons(logger)
	keys.Glob = *inputGlob

	a := app.New(store, renderer, server, keys)
	a.Logger = logger
	a.Debug = *debug
	a.ListenAddr = *listenAddr

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
