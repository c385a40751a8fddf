package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunReturnsConfigErrors(t *testing.T) {
	t.Setenv("EVENT_CHANCE", "2")
	err := run()
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("Expected a config error, got %v", err)
	}
}

func TestRunReturnsCatalogErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_FILE", filepath.Join(dir, "game.log"))
	t.Setenv("CATALOG_DIR", filepath.Join(dir, "missing"))
	err := run()
	if err == nil || !strings.Contains(err.Error(), "loading catalog") {
		t.Errorf("Expected a catalog error, got %v", err)
	}
}
