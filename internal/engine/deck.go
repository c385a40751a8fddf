package engine

import "github.com/tatianab/game-studio/internal/models"

// Deck is the fixed event catalog.
type Deck struct {
	events []models.Event
}

// NewDeck copies events into a deck.
func NewDeck(events []models.Event) *Deck {
	return &Deck{events: append([]models.Event(nil), events...)}
}

// Len returns the number of events in the deck.
func (d *Deck) Len() int {
	return len(d.events)
}

// Roll picks one event uniformly at random. The same event may come up again on the next roll.
func (d *Deck) Roll(rng Rand) (models.Event, bool) {
	if len(d.events) == 0 {
		return models.Event{}, false
	}
	return d.events[rng.IntN(len(d.events))], true
}

// Event looks an event up by id.
func (d *Deck) Event(id string) (models.Event, bool) {
	for _, ev := range d.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.Event{}, false
}
