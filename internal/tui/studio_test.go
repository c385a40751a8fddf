package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/game-studio/internal/models"
	"github.com/tatianab/game-studio/internal/studio"
)

func newTestStudio(t *testing.T) studioModel {
	t.Helper()
	return newStudioModel(testOptions(t).Catalog, studio.NewStore(), 120, 40)
}

func runStudio(m studioModel, lines ...string) studioModel {
	for _, line := range lines {
		m, _ = m.execute(line)
		m.refresh()
	}
	return m
}

func current(t *testing.T, m studioModel) models.GameProject {
	t.Helper()
	p, ok := m.store.Current()
	if !ok {
		t.Fatalf("Expected an open project")
	}
	return p
}

func TestStudioCreateAndEdit(t *testing.T) {
	m := runStudio(newTestStudio(t),
		"new Quest | a small adventure",
		"add item",
		"add chara",
		"add location",
		"edit 1 name Rusty sword",
		"edit 2 icon sword",
		"edit 1 set value 25",
		"place 3 250 600",
	)
	if m.notice != "" {
		t.Fatalf("Unexpected notice %q", m.notice)
	}

	p := current(t, m)
	if p.Name != "Quest" || p.Description != "a small adventure" {
		t.Errorf("Unexpected project header %q / %q", p.Name, p.Description)
	}
	if len(p.Elements) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(p.Elements))
	}
	if p.Elements[0].Name != "Rusty sword" || p.Elements[0].Properties["value"] != 25 {
		t.Errorf("Unexpected item %+v", p.Elements[0])
	}
	if p.Elements[1].Type != models.ElementCharacter || p.Elements[1].Icon != "Sword" {
		t.Errorf("Unexpected character %+v", p.Elements[1])
	}
	if pos := p.Elements[2].Position; pos == nil || *pos != (models.Position{X: 250, Y: 400}) {
		t.Errorf("Expected the location to be clamped to the canvas, got %v", pos)
	}

	m = runStudio(m, "delete 1")
	if got := len(current(t, m).Elements); got != 2 {
		t.Errorf("Expected 2 elements after delete, got %d", got)
	}
}

func TestStudioTabsAndPreview(t *testing.T) {
	m := runStudio(newTestStudio(t), "new Quest", "add location", "add character", "tab map")
	if m.tab != tabMap {
		t.Fatalf("Expected the map tab, got %d", m.tab)
	}
	if body := m.renderBody(); !strings.Contains(body, "A New location (100,100)") {
		t.Errorf("Expected the location in the map legend:\n%s", body)
	}

	m = runStudio(m, "stop")
	if m.playing {
		t.Fatalf("Expected stop to leave the preview off")
	}
	m = runStudio(m, "play", "play")
	if !m.playing {
		t.Fatalf("Expected play to stay in the preview")
	}
	body := m.renderBody()
	for _, want := range []string{"Game: Quest", "Characters", "New character", "Hi! How are you?"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected preview to contain %q:\n%s", want, body)
		}
	}

	m = runStudio(m, "stop", "tab settings")
	if m.playing || !strings.Contains(m.renderBody(), "1 character, 0 item, 1 location, 0 action") {
		t.Errorf("Expected settings with element counts:\n%s", m.renderBody())
	}
}

func TestStudioProjectSettings(t *testing.T) {
	m := runStudio(newTestStudio(t), "new Quest", "rename Big Quest", "describe Now longer", "logic When the player talks to Bob, show dialogue")
	p := current(t, m)
	if p.Name != "Big Quest" || p.Description != "Now longer" || !strings.HasPrefix(p.GameLogic, "When the player") {
		t.Errorf("Unexpected settings %+v", p)
	}

	m = runStudio(m, "rename  ")
	if current(t, m).Name != "Big Quest" {
		t.Errorf("An empty rename should be rejected")
	}
}

func TestStudioOpenAndClose(t *testing.T) {
	m := runStudio(newTestStudio(t), "new First", "new Second", "close")
	if _, ok := m.store.Current(); ok {
		t.Fatalf("Expected no open project after close")
	}
	if body := m.renderBody(); !strings.Contains(body, "First") || !strings.Contains(body, "Second") {
		t.Errorf("Expected both projects listed:\n%s", body)
	}

	m = runStudio(m, "open 1")
	if current(t, m).Name != "First" {
		t.Errorf("Expected open 1 to open First")
	}
	m = runStudio(m, "close", "open secnd")
	if current(t, m).Name != "Second" {
		t.Errorf("Expected a fuzzy open to find Second")
	}
}

func TestStudioNotices(t *testing.T) {
	m := runStudio(newTestStudio(t), "add item")
	if m.notice != "Open or create a project first." {
		t.Errorf("Notice = %q", m.notice)
	}
	m = runStudio(m, "new | no name")
	if m.notice != "A project needs a name." {
		t.Errorf("Notice = %q", m.notice)
	}
	m = runStudio(m, "new Quest", "add dragon")
	if !strings.HasPrefix(m.notice, "Element types:") {
		t.Errorf("Notice = %q", m.notice)
	}
	m = runStudio(m, "edit 4 name Nobody")
	if m.notice != "No element 4." {
		t.Errorf("Notice = %q", m.notice)
	}
	m = runStudio(m, "help")
	if !strings.Contains(m.renderBody(), "place <n> <x> <y>") {
		t.Errorf("Expected help in the body")
	}
}

func TestStudioSurvivesMenuRoundTrip(t *testing.T) {
	var tm tea.Model = NewModel(testOptions(t))
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m := tm.(model)
	if m.screen != screenStudio {
		t.Fatalf("Expected the studio screen, got %d", m.screen)
	}
	m.studio = runStudio(m.studio, "new Kept")

	tm, _ = m.Update(backMsg{})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = tm.(model)
	if p, ok := m.studio.store.Current(); !ok || p.Name != "Kept" {
		t.Errorf("Expected studio projects to survive leaving the screen")
	}
}

func TestLifeTimerEndsWithScreen(t *testing.T) {
	var tm tea.Model = NewModel(testOptions(t))
	tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := tm.(model)
	if m.screen != screenLife || cmd == nil {
		t.Fatalf("Expected the life screen with a running timer")
	}
	life := m.life

	tm, _ = m.Update(backMsg{})
	m = tm.(model)
	if m.screen != screenMenu || m.gen != 1 || !life.timer.Stopped() {
		t.Errorf("Expected leaving to stop the timer and bump the generation")
	}
	if _, cmd := m.Update(eventTickMsg{gen: 0}); cmd != nil {
		t.Errorf("Expected a tick after leaving to be dropped")
	}

	tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tm.(model)
	if m.life.gen != 1 || m.life.timer.Stopped() {
		t.Errorf("Expected a fresh simulation on re-entry")
	}
	if len(m.life.state.History) != 0 {
		t.Errorf("Expected a new game to start with empty history")
	}
}
