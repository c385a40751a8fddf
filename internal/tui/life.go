package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tatianab/game-studio/internal/command"
	"github.com/tatianab/game-studio/internal/engine"
	"github.com/tatianab/game-studio/internal/logger"
	"github.com/tatianab/game-studio/internal/models"
)

var lifeCommands = command.NewRegistry(
	command.Def{Canonical: "travel", Aliases: []string{"go", "goto", "move"}, MinArgs: 1, Usage: "travel <place>"},
	command.Def{Canonical: "do", Aliases: []string{"act", "perform"}, MinArgs: 1, Usage: "do <action or number>"},
	command.Def{Canonical: "choose", Aliases: []string{"pick", "answer"}, MinArgs: 1, Usage: "choose <number>"},
	command.Def{Canonical: "event", Aliases: []string{"random"}, Usage: "event"},
	command.Def{Canonical: "status", Aliases: []string{"look", "stats"}, Usage: "status"},
	command.Def{Canonical: "help", Aliases: []string{"?"}, Usage: "help"},
	command.Def{Canonical: "back", Aliases: []string{"menu"}, Usage: "back"},
	command.Def{Canonical: "quit", Aliases: []string{"exit"}, Usage: "quit"},
)

// lifeModel is the life simulator screen. It owns the event timer: leaving the
// screen stops the timer and a generation number discards ticks already in flight.
type lifeModel struct {
	engine    *engine.Engine
	timer     *engine.EventTimer
	state     engine.State
	gen       int
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	notice    string
	width     int
	height    int
}

type eventTickMsg struct {
	gen int
}

func newLifeModel(opts Options, gen, width, height int) lifeModel {
	rng := engine.NewRand(opts.Seed)
	eng := engine.NewEngine(opts.Catalog, rng)

	ti := textinput.New()
	ti.Placeholder = "What do you do? (try: help)"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := lifeModel{
		engine:    eng,
		timer:     engine.NewEventTimer(eng, opts.EventInterval, opts.EventChance, rng, engine.SystemClock),
		state:     eng.NewState(),
		gen:       gen,
		textInput: ti,
	}
	m.resize(width, height)
	loc, _ := eng.World().Location(m.state.Location)
	m.appendLog(gameStyle.Bold(true).Render("A new life begins at " + loc.Name + "."))
	return m
}

func (m lifeModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m lifeModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.timer.Interval, func(time.Time) tea.Msg {
		return eventTickMsg{gen: gen}
	})
}

// teardown cancels the event timer.
func (m *lifeModel) teardown() {
	m.timer.Stop()
	logger.Log.WithField("gen", m.gen).Debug("life simulator closed")
}

func (m *lifeModel) resize(width, height int) {
	m.width = width
	m.height = height
	logWidth := int(float64(width) * 0.6)
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(logWidth, max(3, height-12))
	}
	m.viewport.Width = logWidth
	m.viewport.Height = max(3, height-12)
	m.viewport.SetContent(m.gameLog)
}

func (m lifeModel) Update(msg tea.Msg) (lifeModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case eventTickMsg:
		if msg.gen != m.gen || m.timer.Stopped() {
			return m, nil
		}
		var fired bool
		m.state, fired = m.timer.Poll(m.state)
		if fired {
			m.announceEvent()
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			line := m.textInput.Value()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.textInput.Reset()
			logWidth := int(float64(m.width) * 0.6)
			m.appendLog(userStyle.Width(max(10, logWidth)).Render("> " + line))
			return m.execute(line)
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m lifeModel) execute(line string) (lifeModel, tea.Cmd) {
	m.notice = ""
	intent, err := lifeCommands.Parse(line)
	if err != nil {
		m.notice = parseNotice(err, intent)
		return m, nil
	}

	switch intent.Verb {
	case "quit":
		return m, tea.Quit
	case "back":
		return m, backToMenu
	case "help":
		m.appendLog(helpText(lifeCommands))
	case "status":
		m.appendLog(m.renderStatus())
	case "event":
		next, ok := m.engine.RollEvent(m.state)
		if !ok {
			if m.state.Active != nil {
				m.notice = "Deal with the current event first."
			} else {
				m.notice = "Nothing happens."
			}
			return m, nil
		}
		m.state = next
		m.announceEvent()
	case "choose":
		m.choose(intent)
	case "travel":
		m.travel(intent)
	case "do":
		m.perform(intent)
	}
	return m, nil
}

func (m *lifeModel) travel(intent command.Intent) {
	locs := m.engine.World().Locations()
	names := make([]string, 0, len(locs)*2)
	byName := make(map[string]string, len(locs)*2)
	for _, l := range locs {
		names = append(names, l.Name, l.ID)
		byName[l.Name] = l.ID
		byName[l.ID] = l.ID
	}
	match, err := command.Match(intent.Rest, names)
	if err != nil {
		m.notice = fmt.Sprintf("No place called %q.", intent.Rest)
		return
	}

	next, err := m.engine.Travel(m.state, byName[match])
	if err != nil {
		m.reject("travel", byName[match], err)
		return
	}
	if next.Location == m.state.Location {
		m.notice = "You are already here."
		return
	}
	m.state = next
	m.logLast()
}

func (m *lifeModel) perform(intent command.Intent) {
	loc, _ := m.engine.World().Location(m.state.Location)
	action, ok := pickAction(loc, intent.Rest)
	if !ok {
		m.notice = fmt.Sprintf("You can't do %q at %s.", intent.Rest, loc.Name)
		return
	}
	// The sidebar greys out unaffordable actions with the same check.
	if err := m.engine.CanPerform(m.state, action); err != nil {
		m.reject("do", action.ID, err)
		return
	}
	next, err := m.engine.PerformAction(m.state, action.ID)
	if err != nil {
		m.reject("do", action.ID, err)
		return
	}
	m.state = next
	m.logLast()
}

func (m *lifeModel) choose(intent command.Intent) {
	ev := m.state.Active
	if ev == nil {
		m.notice = "Nothing to choose right now."
		return
	}
	idx := -1
	if n, err := strconv.Atoi(intent.Args[0]); err == nil {
		idx = n - 1
	} else {
		texts := make([]string, len(ev.Choices))
		for i, c := range ev.Choices {
			texts[i] = c.Text
		}
		if match, err := command.Match(intent.Rest, texts); err == nil {
			for i, t := range texts {
				if t == match {
					idx = i
				}
			}
		}
	}

	next, err := m.engine.ResolveChoice(m.state, idx)
	if err != nil {
		m.notice = fmt.Sprintf("Pick a choice between 1 and %d.", len(ev.Choices))
		return
	}
	m.state = next
	logger.Log.WithFields(logrus.Fields{"event": ev.ID, "choice": idx + 1}).Info("event resolved")
	m.logLast()
}

func (m *lifeModel) reject(verb, target string, err error) {
	switch {
	case errors.Is(err, engine.ErrInsufficientEnergy):
		m.notice = "Not enough energy!"
	case errors.Is(err, engine.ErrInsufficientMoney):
		m.notice = "Not enough money!"
	case errors.Is(err, engine.ErrEventPending):
		m.notice = "Answer the event first."
	default:
		m.notice = err.Error()
	}
	logger.Log.WithError(err).WithFields(logrus.Fields{"verb": verb, "target": target}).Info("move rejected")
}

func (m *lifeModel) announceEvent() {
	ev := m.state.Active
	logger.Log.WithField("event", ev.ID).Info("event started")
	m.appendLog(selectedStyle.Render("★ "+ev.Title) + "\n" + ev.Description)
}

func (m *lifeModel) logLast() {
	if len(m.state.History) == 0 {
		return
	}
	last := m.state.History[len(m.state.History)-1]
	logWidth := int(float64(m.width) * 0.6)
	text := last.Outcome
	if !last.Changes.IsZero() {
		text += " (" + formatDelta(last.Changes) + ")"
	}
	m.appendLog(gameStyle.Width(max(10, logWidth)).Render(text))
}

func (m *lifeModel) appendLog(s string) {
	m.gameLog += s + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

// pickAction resolves "do" arguments by number, id or fuzzy name.
func pickAction(loc models.Location, arg string) (models.LocationAction, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		if n >= 1 && n <= len(loc.Actions) {
			return loc.Actions[n-1], true
		}
		return models.LocationAction{}, false
	}
	names := make([]string, 0, len(loc.Actions)*2)
	for _, a := range loc.Actions {
		names = append(names, a.Name, a.ID)
	}
	match, err := command.Match(arg, names)
	if err != nil {
		return models.LocationAction{}, false
	}
	for _, a := range loc.Actions {
		if a.Name == match || a.ID == match {
			return a, true
		}
	}
	return models.LocationAction{}, false
}

func (m lifeModel) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderSidebar())

	parts := []string{main}
	if ev := m.state.Active; ev != nil {
		parts = append(parts, m.renderEvent(ev))
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts,
		"\n"+m.textInput.View(),
		"\n"+helpStyle.Render("Commands: travel, do, choose, event, status, help, back, quit."),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m lifeModel) renderStatus() string {
	s := m.state.Stats
	loc, _ := m.engine.World().Location(m.state.Location)
	return fmt.Sprintf("You are at %s. Health %d, energy %d, happiness %d, money %s.",
		loc.Name, s.Health, s.Energy, s.Happiness, formatMoney(s.Money))
}

func (m lifeModel) renderSidebar() string {
	s := m.state.Stats
	loc, _ := m.engine.World().Location(m.state.Location)

	var b strings.Builder
	b.WriteString(titleStyle.Render("STATS") + "\n")
	fmt.Fprintf(&b, "Health    %s %3d\n", bar(s.Health), s.Health)
	fmt.Fprintf(&b, "Energy    %s %3d\n", bar(s.Energy), s.Energy)
	fmt.Fprintf(&b, "Happiness %s %3d\n", bar(s.Happiness), s.Happiness)
	fmt.Fprintf(&b, "Money     %s\n", formatMoney(s.Money))
	fmt.Fprintf(&b, "Age %d · Level %d\n\n", s.Age, s.Level)

	b.WriteString(titleStyle.Render("LOCATION") + "\n")
	fmt.Fprintf(&b, "%s %s\n%s\n\n", glyph(loc.Icon), loc.Name, loc.Description)

	b.WriteString(titleStyle.Render("ACTIONS") + "\n")
	for i, a := range loc.Actions {
		line := fmt.Sprintf("%d. %s [%s] → %s", i+1, a.Name, formatCost(a.Cost), formatDelta(a.Consequence))
		if m.engine.CanPerform(m.state, a) != nil {
			line = disabledStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("TRAVEL") + fmt.Sprintf(" (%d energy)\n", engine.MoveCost))
	for _, other := range m.engine.World().Locations() {
		if other.ID == loc.ID {
			continue
		}
		line := fmt.Sprintf("%s %s", glyph(other.Icon), other.Name)
		if s.Energy < engine.MoveCost {
			line = disabledStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	width := int(float64(m.width) * 0.38)
	return stateStyle.Width(max(20, width)).Height(m.viewport.Height).Render(b.String())
}

func (m lifeModel) renderEvent(ev *models.Event) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(ev.Title) + "\n" + ev.Description + "\n\n")
	for i, c := range ev.Choices {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, c.Text, formatDelta(c.Consequence))
	}
	return dialogStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func parseNotice(err error, intent command.Intent) string {
	switch {
	case errors.Is(err, command.ErrEmpty):
		return ""
	case errors.Is(err, command.ErrMissing):
		return fmt.Sprintf("%s needs an argument.", intent.Verb)
	case errors.Is(err, command.ErrAmbiguous):
		return "That could mean more than one thing, be more specific."
	default:
		return "Unknown command. Type help for a list."
	}
}

func helpText(r *command.Registry) string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, d := range r.Defs() {
		b.WriteString("\n  " + d.Usage)
		if len(d.Aliases) > 0 {
			b.WriteString(" (also: " + strings.Join(d.Aliases, ", ") + ")")
		}
	}
	return helpStyle.Render(b.String())
}
