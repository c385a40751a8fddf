package tui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tatianab/game-studio/internal/command"
	"github.com/tatianab/game-studio/internal/logger"
	"github.com/tatianab/game-studio/internal/models"
	"github.com/tatianab/game-studio/internal/studio"
)

var studioCommands = command.NewRegistry(
	command.Def{Canonical: "new", Aliases: []string{"create"}, MinArgs: 1, Usage: "new <name> [| description]"},
	command.Def{Canonical: "open", MinArgs: 1, Usage: "open <number or name>"},
	command.Def{Canonical: "close", Aliases: []string{"projects"}, Usage: "close"},
	command.Def{Canonical: "tab", MinArgs: 1, Usage: "tab <elements|map|logic|settings>"},
	command.Def{Canonical: "add", MinArgs: 1, Usage: "add <character|item|location|action>"},
	command.Def{Canonical: "edit", MinArgs: 3, Usage: "edit <n> <name|description|icon|set> <value>"},
	command.Def{Canonical: "delete", Aliases: []string{"remove", "rm"}, MinArgs: 1, Usage: "delete <n>"},
	command.Def{Canonical: "place", Aliases: []string{"position"}, MinArgs: 3, Usage: "place <n> <x> <y>"},
	command.Def{Canonical: "logic", MinArgs: 1, Usage: "logic <text>"},
	command.Def{Canonical: "rename", MinArgs: 1, Usage: "rename <name>"},
	command.Def{Canonical: "describe", MinArgs: 1, Usage: "describe <text>"},
	command.Def{Canonical: "play", Aliases: []string{"preview"}, Usage: "play"},
	command.Def{Canonical: "stop", Usage: "stop"},
	command.Def{Canonical: "help", Aliases: []string{"?"}, Usage: "help"},
	command.Def{Canonical: "back", Aliases: []string{"menu"}, Usage: "back"},
	command.Def{Canonical: "quit", Aliases: []string{"exit"}, Usage: "quit"},
)

type studioTab int

const (
	tabElements studioTab = iota
	tabMap
	tabLogic
	tabSettings
)

var tabNames = []string{"elements", "map", "logic", "settings"}

const (
	mapWidth  = 50
	mapHeight = 20
	// element positions live on a 500x400 canvas
	canvasWidth  = 500
	canvasHeight = 400
)

// studioModel is the game element editor screen.
type studioModel struct {
	store     studio.Store
	templates *models.Catalog
	tab       studioTab
	playing   bool
	help      bool
	textInput textinput.Model
	viewport  viewport.Model
	notice    string
	width     int
	height    int
}

func newStudioModel(cat *models.Catalog, store studio.Store, width, height int) studioModel {
	ti := textinput.New()
	ti.Placeholder = "new <name> | open <n> | help"
	ti.Focus()
	ti.CharLimit = 400
	ti.Width = 60

	m := studioModel{
		store:     store,
		templates: cat,
		textInput: ti,
	}
	m.resize(width, height)
	return m
}

func (m *studioModel) resize(width, height int) {
	m.width = width
	m.height = height
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(max(20, width-2), max(3, height-8))
	}
	m.viewport.Width = max(20, width-2)
	m.viewport.Height = max(3, height-8)
	m.refresh()
}

func (m *studioModel) refresh() {
	m.viewport.SetContent(m.renderBody())
}

func (m studioModel) Update(msg tea.Msg) (studioModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			line := m.textInput.Value()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.textInput.Reset()
			m, cmd = m.execute(line)
			m.refresh()
			return m, cmd
		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m studioModel) execute(line string) (studioModel, tea.Cmd) {
	m.notice = ""
	m.help = false
	intent, err := studioCommands.Parse(line)
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
		m.help = true
		return m, nil
	case "new":
		name, desc, _ := strings.Cut(intent.Rest, "|")
		next, p, err := m.store.CreateProject(name, strings.TrimSpace(desc))
		if err != nil {
			m.fail(intent, err)
			return m, nil
		}
		m.store = next
		m.tab = tabElements
		m.playing = false
		logger.Log.WithFields(logrus.Fields{"project": p.ID, "name": p.Name}).Info("project created")
		return m, nil
	case "open":
		m.open(intent)
		return m, nil
	}

	// Everything below works on the open project.
	p, ok := m.store.Current()
	if !ok {
		m.notice = "Open or create a project first."
		return m, nil
	}

	switch intent.Verb {
	case "close":
		m.store = m.store.Close()
		m.playing = false
	case "play":
		m.playing = true
	case "stop":
		m.playing = false
	case "tab":
		match, err := command.Match(intent.Rest, tabNames)
		if err != nil {
			m.notice = "Tabs: " + strings.Join(tabNames, ", ")
			return m, nil
		}
		for i, name := range tabNames {
			if name == match {
				m.tab = studioTab(i)
			}
		}
		m.playing = false
	case "add":
		m.add(p, intent)
	case "edit":
		m.edit(p, intent)
	case "delete":
		el, ok := elementAt(p, intent.Args[0])
		if !ok {
			m.notice = "No element " + intent.Args[0] + "."
			return m, nil
		}
		m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.DeleteElement(el.ID) })
	case "place":
		el, ok := elementAt(p, intent.Args[0])
		x, errX := strconv.Atoi(intent.Args[1])
		y, errY := strconv.Atoi(intent.Args[2])
		if !ok || errX != nil || errY != nil {
			m.notice = "Usage: place <n> <x> <y>"
			return m, nil
		}
		pos := models.Position{X: clampInt(x, 0, canvasWidth), Y: clampInt(y, 0, canvasHeight)}
		m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.MoveElement(el.ID, pos) })
	case "logic":
		m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.SetGameLogic(intent.Rest) })
	case "rename":
		m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.Rename(intent.Rest) })
	case "describe":
		m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.Describe(intent.Rest) })
	}
	return m, nil
}

func (m *studioModel) open(intent command.Intent) {
	projects := m.store.Projects()
	var id string
	if n, err := strconv.Atoi(intent.Args[0]); err == nil && n >= 1 && n <= len(projects) {
		id = projects[n-1].ID
	} else {
		names := make([]string, len(projects))
		for i, p := range projects {
			names[i] = p.Name
		}
		match, err := command.Match(intent.Rest, names)
		if err != nil {
			m.notice = fmt.Sprintf("No project %q.", intent.Rest)
			return
		}
		for _, p := range projects {
			if p.Name == match {
				id = p.ID
				break
			}
		}
	}
	m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.Open(id) })
	m.tab = tabElements
	m.playing = false
}

func (m *studioModel) add(p models.GameProject, intent command.Intent) {
	names := make([]string, len(models.ElementTypes))
	for i, t := range models.ElementTypes {
		names[i] = string(t)
	}
	match, err := command.Match(intent.Rest, names)
	if err != nil {
		m.notice = "Element types: " + strings.Join(names, ", ")
		return
	}
	tmpl, ok := m.templates.Template(models.ElementType(match))
	if !ok {
		m.notice = "No template for " + match + "."
		return
	}
	next, el, err := m.store.AddElement(p.ID, tmpl)
	if err != nil {
		m.fail(intent, err)
		return
	}
	m.store = next
	m.tab = tabElements
	logger.Log.WithFields(logrus.Fields{"project": p.ID, "element": el.ID, "type": el.Type}).Info("element added")
}

func (m *studioModel) edit(p models.GameProject, intent command.Intent) {
	num, rest := nextWord(intent.Rest)
	el, ok := elementAt(p, num)
	if !ok {
		m.notice = "No element " + num + "."
		return
	}
	word, value := nextWord(rest)
	field, err := command.Match(word, []string{"name", "description", "icon", "set"})
	if err != nil {
		m.notice = "Edit name, description, icon or set <key> <value>."
		return
	}

	switch field {
	case "name":
		el.Name = value
	case "description":
		el.Description = value
	case "icon":
		icon, err := command.Match(value, IconNames)
		if err != nil {
			m.notice = "Icons: " + strings.Join(IconNames, ", ")
			return
		}
		el.Icon = icon
	case "set":
		key, raw := nextWord(value)
		if key == "" {
			m.notice = "Usage: edit <n> set <key> <value>"
			return
		}
		if el.Properties == nil {
			el.Properties = map[string]any{}
		}
		el.Properties[key] = propertyValue(raw)
	}
	m.apply(intent, func(s studio.Store) (studio.Store, error) { return s.UpdateElement(el) })
}

// apply runs a store edit, keeping the old snapshot on error.
func (m *studioModel) apply(intent command.Intent, fn func(studio.Store) (studio.Store, error)) {
	next, err := fn(m.store)
	if err != nil {
		m.fail(intent, err)
		return
	}
	m.store = next
	logger.Log.WithField("verb", intent.Verb).Debug("studio updated")
}

func (m *studioModel) fail(intent command.Intent, err error) {
	switch {
	case errors.Is(err, studio.ErrEmptyName):
		m.notice = "A project needs a name."
	case errors.Is(err, studio.ErrNoCurrentProject):
		m.notice = "Open or create a project first."
	default:
		m.notice = err.Error()
	}
	logger.Log.WithError(err).WithField("verb", intent.Verb).Warn("studio command failed")
}

// elementAt resolves a 1-based element number.
func elementAt(p models.GameProject, arg string) (models.GameElement, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(p.Elements) {
		return models.GameElement{}, false
	}
	return p.Elements[n-1], true
}

// nextWord splits off the first space-separated word.
func nextWord(s string) (string, string) {
	word, rest, _ := strings.Cut(strings.TrimSpace(s), " ")
	return word, strings.TrimSpace(rest)
}

// propertyValue keeps numbers and booleans typed, like the templates' YAML values.
func propertyValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func clampInt(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

func (m studioModel) View() string {
	parts := []string{m.renderHeader(), m.viewport.View()}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts,
		"\n"+m.textInput.View(),
		"\n"+helpStyle.Render("PgUp/PgDn scroll. Type help for commands, back for the main menu."),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m studioModel) renderHeader() string {
	p, ok := m.store.Current()
	if !ok {
		return titleStyle.Render("GAME STUDIO") + "  " + helpStyle.Render("Create and edit games right in the terminal")
	}
	header := titleStyle.Render(p.Name)
	if p.Description != "" {
		header += "  " + p.Description
	}
	if m.playing {
		return header + "  " + selectedStyle.Render("▶ playing")
	}
	var tabs []string
	for i, name := range tabNames {
		if studioTab(i) == m.tab {
			tabs = append(tabs, selectedStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, " "+name+" ")
		}
	}
	return header + "\n" + strings.Join(tabs, " ")
}

func (m studioModel) renderBody() string {
	if m.help {
		return helpText(studioCommands)
	}
	p, ok := m.store.Current()
	if !ok {
		return m.renderProjects()
	}
	if m.playing {
		return m.renderPreview(studio.NewPreview(p))
	}
	switch m.tab {
	case tabMap:
		return renderMap(p.Elements)
	case tabLogic:
		if p.GameLogic == "" {
			return helpStyle.Render("Describe the game logic, e.g. logic When the player talks to X, show dialogue Y")
		}
		return p.GameLogic
	case tabSettings:
		counts := studio.Counts(p)
		var parts []string
		for _, t := range models.ElementTypes {
			parts = append(parts, fmt.Sprintf("%d %s", counts[t], t))
		}
		return fmt.Sprintf("Name:        %s\nDescription: %s\nElements:    %s\nModified:    %s\n\n%s",
			p.Name, p.Description, strings.Join(parts, ", "), p.LastModified.Format("2006-01-02 15:04:05"),
			helpStyle.Render("rename <name> · describe <text>"))
	default:
		return m.renderElements(p)
	}
}

func (m studioModel) renderProjects() string {
	projects := m.store.Projects()
	if len(projects) == 0 {
		return helpStyle.Render("No projects yet. Type: new My great game | what it is about")
	}
	var cards []string
	for i, p := range projects {
		body := fmt.Sprintf("%d. %s\n%s\n%d elements · %s", i+1, p.Name, p.Description, len(p.Elements), p.LastModified.Format("2006-01-02"))
		cards = append(cards, cardStyle.Width(30).Render(body))
	}
	return grid(cards, 3)
}

func (m studioModel) renderElements(p models.GameProject) string {
	if len(p.Elements) == 0 {
		return helpStyle.Render("No elements. Type: add character | item | location | action")
	}
	var cards []string
	for i, e := range p.Elements {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s [%s]\n%s\n%s", i+1, glyph(e.Icon), e.Type, e.Name, e.Description)
		for _, line := range firstProperties(e.Properties, 2) {
			b.WriteString("\n" + helpStyle.Render(line))
		}
		cards = append(cards, cardStyle.Width(30).Render(b.String()))
	}
	return grid(cards, 3)
}

func (m studioModel) renderPreview(pv studio.Preview) string {
	var locations []models.GameElement
	for _, l := range pv.Locations {
		el := l.Element
		pos := l.Position
		el.Position = &pos
		locations = append(locations, el)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Game: "+pv.Title) + "\n\n")
	b.WriteString(renderMap(locations) + "\n")

	if len(pv.Characters) > 0 {
		b.WriteString("\n" + titleStyle.Render("Characters") + "\n")
		for _, c := range pv.Characters {
			fmt.Fprintf(&b, "%s %s: %s\n", glyph(c.Icon), c.Name, c.Description)
			if d, ok := c.Properties["dialogue"]; ok {
				fmt.Fprintf(&b, "   %q\n", fmt.Sprint(d))
			}
		}
	}
	if len(pv.Items) > 0 {
		b.WriteString("\n" + titleStyle.Render("Items") + "\n")
		for _, it := range pv.Items {
			fmt.Fprintf(&b, "%s %s (%v) %v\n", glyph(it.Icon), it.Name, it.Properties["rarity"], it.Properties["value"])
		}
	}
	return b.String()
}

// renderMap plots location elements that have a position on a character grid.
func renderMap(elements []models.GameElement) string {
	cells := make([][]rune, mapHeight)
	for i := range cells {
		cells[i] = []rune(strings.Repeat("·", mapWidth))
	}
	var legend []string
	for _, e := range elements {
		if e.Type != models.ElementLocation || e.Position == nil {
			continue
		}
		col := clampInt(e.Position.X*mapWidth/canvasWidth, 0, mapWidth-1)
		row := clampInt(e.Position.Y*mapHeight/canvasHeight, 0, mapHeight-1)
		mark := rune('A' + len(legend)%26)
		cells[row][col] = mark
		legend = append(legend, fmt.Sprintf("%c %s (%d,%d)", mark, e.Name, e.Position.X, e.Position.Y))
	}

	lines := make([]string, len(cells))
	for i, r := range cells {
		lines[i] = string(r)
	}
	out := cardStyle.Render(strings.Join(lines, "\n"))
	if len(legend) == 0 {
		return out + "\n" + helpStyle.Render("No locations on the map yet.")
	}
	return out + "\n" + strings.Join(legend, "\n") + "\n" + helpStyle.Render("Move a location with: place <n> <x> <y>")
}

func firstProperties(props map[string]any, n int) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		if len(out) == n {
			break
		}
		out = append(out, fmt.Sprintf("%s: %v", k, props[k]))
	}
	return out
}

func grid(cards []string, perRow int) string {
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(len(cards), i+perRow)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
