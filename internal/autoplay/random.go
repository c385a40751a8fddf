package autoplay

import (
	"context"

	"github.com/tatianab/game-studio/internal/engine"
)

// RandomPlayer answers events at random, otherwise travels a third of the time and
// picks an affordable action the rest. With nothing affordable it travels or rests.
type RandomPlayer struct {
	rng engine.Rand
}

func NewRandomPlayer(rng engine.Rand) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) Choose(_ context.Context, turn Turn) (Move, error) {
	if ev := turn.State.Active; ev != nil {
		return Move{Kind: MoveChoose, Choice: p.rng.IntN(len(ev.Choices)) + 1}, nil
	}

	canTravel := len(turn.Destinations) > 0 && turn.State.Stats.Energy >= turn.MoveCost
	if canTravel && (len(turn.Affordable) == 0 || p.rng.IntN(3) == 0) {
		dest := turn.Destinations[p.rng.IntN(len(turn.Destinations))]
		return Move{Kind: MoveTravel, Target: dest.ID}, nil
	}
	if len(turn.Affordable) > 0 {
		a := turn.Affordable[p.rng.IntN(len(turn.Affordable))]
		return Move{Kind: MoveAct, Target: a.ID}, nil
	}
	return Move{Kind: MoveRest}, nil
}
