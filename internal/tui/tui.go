package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/game-studio/internal/logger"
	"github.com/tatianab/game-studio/internal/models"
	"github.com/tatianab/game-studio/internal/studio"
)

// Options configures the terminal app.
type Options struct {
	Catalog       *models.Catalog
	Seed          int64
	EventInterval time.Duration
	EventChance   float64
}

type screen int

const (
	screenMenu screen = iota
	screenLife
	screenStudio
)

var menuItems = []string{"Life Simulator", "Game Studio", "Quit"}

// backMsg returns from a screen to the main menu.
type backMsg struct{}

func backToMenu() tea.Msg { return backMsg{} }

type model struct {
	opts   Options
	screen screen
	cursor int
	// gen increases every time a life simulation ends.
	gen    int
	life   lifeModel
	studio studioModel
	width  int
	height int
}

func NewModel(opts Options) model {
	return model{
		opts:   opts,
		studio: newStudioModel(opts.Catalog, studio.NewStore(), 80, 24),
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.leave()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.screen == screenMenu {
				return m, tea.Quit
			}
			m.leave()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.studio.resize(msg.Width, msg.Height)
		if m.screen == screenLife {
			m.life.resize(msg.Width, msg.Height)
		}
		return m, nil

	case backMsg:
		m.leave()
		return m, nil

	case eventTickMsg:
		if m.screen != screenLife {
			return m, nil
		}
	}

	switch m.screen {
	case screenLife:
		m.life, cmd = m.life.Update(msg)
		return m, cmd
	case screenStudio:
		m.studio, cmd = m.studio.Update(msg)
		return m, cmd
	}
	return m.updateMenu(msg)
}

func (m model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(menuItems)
	case "1", "2", "3":
		m.cursor = int(key.Runes[0] - '1')
		return m.enter()
	case "enter":
		return m.enter()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) enter() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0:
		m.screen = screenLife
		m.life = newLifeModel(m.opts, m.gen, m.width, m.height)
		logger.Log.WithField("gen", m.gen).Info("life simulator started")
		return m, m.life.Init()
	case 1:
		m.screen = screenStudio
		m.studio.refresh()
		return m, nil
	default:
		return m, tea.Quit
	}
}

// leave returns to the menu. Ending a life simulation stops its timer and
// bumps the generation so ticks already scheduled are dropped.
func (m *model) leave() {
	if m.screen == screenLife {
		m.life.teardown()
		m.gen++
	}
	m.screen = screenMenu
}

func (m model) View() string {
	switch m.screen {
	case screenLife:
		return "\n" + m.life.View() + "\n"
	case screenStudio:
		return "\n" + m.studio.View() + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("LIFE & GAME STUDIO") + "\n\n")
	for i, item := range menuItems {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ to move, Enter to select. Esc goes back, Ctrl+C quits."))
	return "\n" + b.String() + "\n"
}

// Run starts the app and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
