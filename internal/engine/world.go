package engine

import "github.com/tatianab/game-studio/internal/models"

// World is the fixed set of locations the player can move between.
type World struct {
	locations []models.Location
	index     map[string]int
}

// NewWorld indexes locations by id.
func NewWorld(locations []models.Location) *World {
	w := &World{
		locations: append([]models.Location(nil), locations...),
		index:     make(map[string]int, len(locations)),
	}
	for i, loc := range w.locations {
		w.index[loc.ID] = i
	}
	return w
}

// Locations returns the locations in catalog order.
func (w *World) Locations() []models.Location {
	return append([]models.Location(nil), w.locations...)
}

// Location looks a location up by id.
func (w *World) Location(id string) (models.Location, bool) {
	i, ok := w.index[id]
	if !ok {
		return models.Location{}, false
	}
	return w.locations[i], true
}

// Action looks up an action offered at a location.
func (w *World) Action(locationID, actionID string) (models.LocationAction, bool) {
	loc, ok := w.Location(locationID)
	if !ok {
		return models.LocationAction{}, false
	}
	for _, a := range loc.Actions {
		if a.ID == actionID {
			return a, true
		}
	}
	return models.LocationAction{}, false
}
