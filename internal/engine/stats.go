package engine

import (
	"errors"

	"github.com/tatianab/game-studio/internal/models"
)

const (
	statMin = 0
	statMax = 100
)

var (
	// ErrInsufficientEnergy means a cost asks for more energy than the player has.
	ErrInsufficientEnergy = errors.New("not enough energy")
	// ErrInsufficientMoney means a cost asks for more money than the player has.
	ErrInsufficientMoney = errors.New("not enough money")
)

// CheckCost reports whether stats can pay for cost. Energy is checked first.
func CheckCost(stats models.Stats, cost models.Cost) error {
	cost = normalizeCost(cost)
	if cost.Energy > stats.Energy {
		return ErrInsufficientEnergy
	}
	if cost.Money > stats.Money {
		return ErrInsufficientMoney
	}
	return nil
}

// ApplyDelta pays cost and applies delta, clamping the result.
// If the cost is not affordable the input stats are returned unchanged with the error.
func ApplyDelta(stats models.Stats, delta models.Delta, cost models.Cost) (models.Stats, error) {
	if err := CheckCost(stats, cost); err != nil {
		return stats, err
	}
	cost = normalizeCost(cost)

	next := stats
	next.Health = clamp(stats.Health+delta.Health, statMin, statMax)
	next.Energy = clamp(stats.Energy+delta.Energy-cost.Energy, statMin, statMax)
	next.Happiness = clamp(stats.Happiness+delta.Happiness, statMin, statMax)
	next.Money = max(0, stats.Money+delta.Money-cost.Money)
	return next, nil
}

// negative costs are treated as free
func normalizeCost(c models.Cost) models.Cost {
	return models.Cost{Energy: max(0, c.Energy), Money: max(0, c.Money)}
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}
