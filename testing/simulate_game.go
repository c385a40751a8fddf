package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tatianab/game-studio/internal/autoplay"
	"github.com/tatianab/game-studio/internal/config"
	"github.com/tatianab/game-studio/internal/engine"
	"github.com/tatianab/game-studio/internal/logger"
	"github.com/tatianab/game-studio/internal/models"
)

func main() {
	turns := flag.Int("turns", 30, "number of turns to play")
	useGemini := flag.Bool("gemini", false, "let a Gemini model choose the moves")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	cat, err := models.LoadCatalog(cfg.CatalogDir)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	rng := engine.NewRand(cfg.Seed)
	eng := engine.NewEngine(cat, rng)
	clock := &engine.ManualClock{T: time.Now()}
	timer := engine.NewEventTimer(eng, cfg.EventInterval, cfg.EventChance, rng, clock)
	defer timer.Stop()

	var player autoplay.Player = autoplay.NewRandomPlayer(rng)
	if *useGemini {
		if err := cfg.RequireGemini(); err != nil {
			log.Fatalf("Gemini player: %v", err)
		}
		gp, err := autoplay.NewGeminiPlayer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini player: %v", err)
		}
		defer gp.Close()
		player = gp
	}

	fmt.Printf("--- Playing %d turns ---\n", *turns)
	report, err := autoplay.Run(ctx, eng, timer, clock, player, *turns)
	if err != nil {
		fmt.Printf("Simulation stopped early: %v\n", err)
	}

	for _, entry := range report.Final.History {
		fmt.Printf("%-28s %s\n", entry.PlayerAction, entry.Outcome)
	}

	s := report.Final.Stats
	fmt.Printf("\nTurns: %d, events: %d, rejected moves: %d\n", report.Turns, report.EventsSeen, report.Rejections)
	fmt.Printf("Final: health=%d energy=%d money=%d happiness=%d at %s\n", s.Health, s.Energy, s.Money, s.Happiness, report.Final.Location)
}
