// Package main is the entry point for the phase map viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/phaseview/internal/config"
	"github.com/Faultbox/phaseview/internal/engine/renderer"
	"github.com/Faultbox/phaseview/internal/engine/window"
	"github.com/Faultbox/phaseview/internal/logger"
	"github.com/Faultbox/phaseview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	code := run(cfg)
	logger.Sync()
	os.Exit(code)
}

// run owns every resource so deferred cleanup happens before exit.
func run(cfg *config.Config) int {
	logger.Info("=== phaseview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		return 1
	}
	defer win.Close()

	rend, err := renderer.New(win, renderer.Config{ScreenshotDir: cfg.Screenshot.Dir})
	if err != nil {
		logger.Error("failed to create renderer", zap.Error(err))
		return 1
	}
	defer rend.Close()

	v, err := viewer.New(cfg, rend, win)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return 1
	}
	defer v.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
