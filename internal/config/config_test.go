package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "GEMINI_MODEL", "CATALOG_DIR", "GAME_SEED", "EVENT_INTERVAL", "EVENT_CHANCE", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.EventInterval != 10*time.Second || cfg.EventChance != 0.3 {
		t.Errorf("Unexpected event defaults: %v, %v", cfg.EventInterval, cfg.EventChance)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" || cfg.LogFile != "game.log" || cfg.LogLevel != "info" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if err := cfg.RequireGemini(); err == nil {
		t.Errorf("Expected RequireGemini to fail without a key")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GAME_SEED", "42")
	t.Setenv("EVENT_INTERVAL", "2s")
	t.Setenv("EVENT_CHANCE", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Seed != 42 || cfg.EventInterval != 2*time.Second || cfg.EventChance != 1 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if err := cfg.RequireGemini(); err != nil {
		t.Errorf("Expected key to satisfy RequireGemini, got %v", err)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"chance too high": {"EVENT_CHANCE", "1.5"},
		"chance zero":     {"EVENT_CHANCE", "0"},
		"interval":        {"EVENT_INTERVAL", "-1s"},
		"seed":            {"GAME_SEED", "abc"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected an error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
