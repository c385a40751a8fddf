package engine

import (
	"errors"
	"fmt"

	"github.com/tatianab/game-studio/internal/models"
)

// MoveCost is the energy spent travelling between locations.
const MoveCost = 5

const maxHistory = 50

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownAction   = errors.New("unknown action")
	ErrNoActiveEvent   = errors.New("no active event")
	ErrUnknownChoice   = errors.New("unknown choice")
	ErrEventPending    = errors.New("an event is waiting for a choice")
)

// State is one immutable snapshot of a life-simulator game.
// Engine methods never modify a State in place; they return the next one.
type State struct {
	Stats    models.Stats
	Location string
	// Active is the event being presented, if any. At most one event is active at a time.
	Active  *models.Event
	History []models.HistoryEntry
}

// Engine applies game rules to State values. It holds only catalog data.
type Engine struct {
	world *World
	deck  *Deck
	start models.Stats
	home  string
	rng   Rand
}

// NewEngine builds an engine over the catalog, drawing events from rng.
func NewEngine(cat *models.Catalog, rng Rand) *Engine {
	return &Engine{
		world: NewWorld(cat.Locations),
		deck:  NewDeck(cat.Events),
		start: cat.StartStats,
		home:  cat.StartLocation,
		rng:   rng,
	}
}

// World returns the location graph.
func (e *Engine) World() *World { return e.world }

// Deck returns the event catalog.
func (e *Engine) Deck() *Deck { return e.deck }

// NewState returns the opening snapshot.
func (e *Engine) NewState() State {
	return State{Stats: e.start, Location: e.home}
}

// Travel moves the player to the location with the given id, spending MoveCost energy.
// Staying put needs the same energy but spends none.
func (e *Engine) Travel(s State, locationID string) (State, error) {
	if s.Active != nil {
		return s, ErrEventPending
	}
	loc, ok := e.world.Location(locationID)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownLocation, locationID)
	}
	stats, err := ApplyDelta(s.Stats, models.Delta{}, models.Cost{Energy: MoveCost})
	if err != nil {
		return s, err
	}
	if loc.ID == s.Location {
		return s, nil
	}
	next := s
	next.Stats = stats
	next.Location = loc.ID
	next.History = appendHistory(s.History, models.HistoryEntry{
		PlayerAction: "travel to " + loc.Name,
		Outcome:      "You arrive at " + loc.Name + ".",
		Changes:      models.Delta{Energy: stats.Energy - s.Stats.Energy},
	})
	return next, nil
}

// CanPerform reports whether the action could run now. The UI uses it to disable controls;
// PerformAction runs the same check.
func (e *Engine) CanPerform(s State, action models.LocationAction) error {
	if s.Active != nil {
		return ErrEventPending
	}
	return CheckCost(s.Stats, action.Cost)
}

// PerformAction runs an action offered at the current location.
func (e *Engine) PerformAction(s State, actionID string) (State, error) {
	if s.Active != nil {
		return s, ErrEventPending
	}
	action, ok := e.world.Action(s.Location, actionID)
	if !ok {
		return s, fmt.Errorf("%w: %s at %s", ErrUnknownAction, actionID, s.Location)
	}

	stats, err := ApplyDelta(s.Stats, action.Consequence, action.Cost)
	if err != nil {
		return s, err
	}
	next := s
	next.Stats = stats
	next.History = appendHistory(s.History, models.HistoryEntry{
		PlayerAction: action.Name,
		Outcome:      action.Description,
		Changes:      diff(s.Stats, stats),
	})
	return next, nil
}

// RollEvent makes a random event active. It does nothing while another event is active
// or when the deck is empty, and reports whether an event was started.
func (e *Engine) RollEvent(s State) (State, bool) {
	if s.Active != nil {
		return s, false
	}
	ev, ok := e.deck.Roll(e.rng)
	if !ok {
		return s, false
	}
	next := s
	next.Active = &ev
	return next, true
}

// ResolveChoice applies the chosen branch of the active event and clears it.
// Event consequences have no cost.
func (e *Engine) ResolveChoice(s State, index int) (State, error) {
	if s.Active == nil {
		return s, ErrNoActiveEvent
	}
	if index < 0 || index >= len(s.Active.Choices) {
		return s, fmt.Errorf("%w: %d", ErrUnknownChoice, index+1)
	}

	choice := s.Active.Choices[index]
	stats, err := ApplyDelta(s.Stats, choice.Consequence, models.Cost{})
	if err != nil {
		return s, err
	}
	next := s
	next.Stats = stats
	next.Active = nil
	next.History = appendHistory(s.History, models.HistoryEntry{
		PlayerAction: choice.Text,
		Outcome:      s.Active.Title,
		Changes:      diff(s.Stats, stats),
	})
	return next, nil
}

// appendHistory never writes into the backing array of h, so older snapshots keep their journal.
func appendHistory(h []models.HistoryEntry, entry models.HistoryEntry) []models.HistoryEntry {
	start := 0
	if len(h) >= maxHistory {
		start = len(h) - maxHistory + 1
	}
	out := make([]models.HistoryEntry, 0, len(h)-start+1)
	out = append(out, h[start:]...)
	return append(out, entry)
}

// diff is what actually changed after clamping.
func diff(before, after models.Stats) models.Delta {
	return models.Delta{
		Health:    after.Health - before.Health,
		Energy:    after.Energy - before.Energy,
		Money:     after.Money - before.Money,
		Happiness: after.Happiness - before.Happiness,
	}
}
