package main

import (
	"fmt"
	"os"

	"github.com/tatianab/game-studio/internal/config"
	"github.com/tatianab/game-studio/internal/logger"
	"github.com/tatianab/game-studio/internal/models"
	"github.com/tatianab/game-studio/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger.Init(cfg.LogLevel, cfg.LogFormat, logFile)

	cat, err := models.LoadCatalog(cfg.CatalogDir)
	if err != nil {
		logger.Log.WithError(err).Error("catalog rejected")
		return fmt.Errorf("loading catalog: %w", err)
	}

	opts := tui.Options{
		Catalog:       cat,
		Seed:          cfg.Seed,
		EventInterval: cfg.EventInterval,
		EventChance:   cfg.EventChance,
	}
	if err := tui.Run(opts); err != nil {
		logger.Log.WithError(err).Error("tui exited")
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
