// Package main is the entry point for the emaki map viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/karuta-dev/emaki/internal/config"
	"github.com/karuta-dev/emaki/internal/logger"
	"github.com/karuta-dev/emaki/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== emaki viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved")
		return
	}

	if cfg.Viewer.MapFile == "" || cfg.Viewer.TilesetFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: viewer -map <file.emap> -tileset <tileset.yaml>")
		os.Exit(1)
	}

	// Create and run the viewer
	app, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
