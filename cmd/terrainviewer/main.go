// Package main is the entry point for the interactive terrain viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/app"
	"github.com/Faultbox/qterrain/internal/config"
	"github.com/Faultbox/qterrain/internal/logger"
	"github.com/Faultbox/qterrain/internal/studio"
)

// host is what both front ends offer main.
type host interface {
	Run(ctx context.Context) error
	Close()
}

func main() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()

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
	defer logger.Sync()

	logger.Info("=== qterrain ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var h host
	if cfg.Window.UI {
		h, err = studio.New(cfg)
	} else {
		h, err = app.New(cfg)
	}
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer h.Close()

	if err := h.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
