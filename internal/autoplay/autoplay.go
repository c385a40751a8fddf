// Package autoplay plays the life simulator without a human, for smoke runs and balancing.
package autoplay

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tatianab/game-studio/internal/engine"
	"github.com/tatianab/game-studio/internal/logger"
	"github.com/tatianab/game-studio/internal/models"
)

type MoveKind string

const (
	MoveTravel MoveKind = "travel"
	MoveAct    MoveKind = "act"
	MoveChoose MoveKind = "choose"
	MoveRest   MoveKind = "rest"
)

// ErrBadMove is returned for a move the engine cannot interpret.
var ErrBadMove = errors.New("bad move")

// Move is a player's decision for one turn.
// Target is a location or action id; Choice is 1-based.
type Move struct {
	Kind   MoveKind `yaml:"kind"`
	Target string   `yaml:"target,omitempty"`
	Choice int      `yaml:"choice,omitempty"`
}

// Turn is what a player sees before deciding.
type Turn struct {
	Number       int
	State        engine.State
	Location     models.Location
	Destinations []models.Location
	// Affordable lists the actions at Location the player can pay for right now.
	Affordable []models.LocationAction
	MoveCost   int
}

// Player decides moves.
type Player interface {
	Choose(ctx context.Context, turn Turn) (Move, error)
}

// Report summarises a run.
type Report struct {
	Turns      int
	Rejections int
	EventsSeen int
	Final      engine.State
}

// Run plays up to turns turns. The clock advances one timer interval per turn so the
// event timer gets a check every turn. Rejected moves are counted, not fatal.
func Run(ctx context.Context, eng *engine.Engine, timer *engine.EventTimer, clock *engine.ManualClock, p Player, turns int) (Report, error) {
	state := eng.NewState()
	report := Report{}

	for n := 1; n <= turns; n++ {
		if err := ctx.Err(); err != nil {
			report.Final = state
			return report, err
		}

		clock.Advance(timer.Interval)
		var fired bool
		state, fired = timer.Poll(state)
		if fired {
			report.EventsSeen++
			logger.Log.WithFields(logrus.Fields{"turn": n, "event": state.Active.ID}).Info("event started")
		}

		turn := NewTurn(eng, state, n)
		move, err := p.Choose(ctx, turn)
		if err != nil {
			report.Final = state
			return report, fmt.Errorf("turn %d: %w", n, err)
		}

		next, err := Apply(eng, state, move)
		report.Turns = n
		if err != nil {
			report.Rejections++
			logger.Log.WithError(err).WithFields(logrus.Fields{"turn": n, "kind": move.Kind, "target": move.Target}).Warn("move rejected")
			continue
		}
		state = next
		logger.Log.WithFields(logrus.Fields{
			"turn":      n,
			"kind":      move.Kind,
			"target":    move.Target,
			"health":    state.Stats.Health,
			"energy":    state.Stats.Energy,
			"money":     state.Stats.Money,
			"happiness": state.Stats.Happiness,
		}).Debug("move applied")
	}

	report.Final = state
	return report, nil
}

// NewTurn builds the player's view of state.
func NewTurn(eng *engine.Engine, state engine.State, n int) Turn {
	turn := Turn{Number: n, State: state, MoveCost: engine.MoveCost}
	turn.Location, _ = eng.World().Location(state.Location)
	for _, loc := range eng.World().Locations() {
		if loc.ID != state.Location {
			turn.Destinations = append(turn.Destinations, loc)
		}
	}
	for _, a := range turn.Location.Actions {
		if eng.CanPerform(state, a) == nil {
			turn.Affordable = append(turn.Affordable, a)
		}
	}
	return turn
}

// Apply runs a move against the engine.
func Apply(eng *engine.Engine, state engine.State, m Move) (engine.State, error) {
	switch m.Kind {
	case MoveTravel:
		return eng.Travel(state, m.Target)
	case MoveAct:
		return eng.PerformAction(state, m.Target)
	case MoveChoose:
		return eng.ResolveChoice(state, m.Choice-1)
	case MoveRest:
		if state.Active != nil {
			return state, fmt.Errorf("%w: an event is waiting for a choice", ErrBadMove)
		}
		return state, nil
	default:
		return state, fmt.Errorf("%w: kind %q", ErrBadMove, m.Kind)
	}
}
