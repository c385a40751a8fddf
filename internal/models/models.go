package models

import "time"

// Stats is the player's attribute vector in the life simulator.
type Stats struct {
	Health    int `yaml:"health"`
	Energy    int `yaml:"energy"`
	Money     int `yaml:"money"`
	Happiness int `yaml:"happiness"`
	Age       int `yaml:"age"`
	Level     int `yaml:"level"`
}

// Delta is a signed change applied to Stats. Omitted fields are zero.
type Delta struct {
	Health    int `yaml:"health,omitempty"`
	Energy    int `yaml:"energy,omitempty"`
	Money     int `yaml:"money,omitempty"`
	Happiness int `yaml:"happiness,omitempty"`
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Cost is what an action consumes. It must be affordable before the action runs.
type Cost struct {
	Energy int `yaml:"energy,omitempty"`
	Money  int `yaml:"money,omitempty"`
}

// Choice is one branch of an Event.
type Choice struct {
	Text        string `yaml:"text"`
	Consequence Delta  `yaml:"consequence"`
}

// Event is a random prompt offering mutually exclusive choices.
type Event struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Choices     []Choice `yaml:"choices"`
}

// Position places a location on the map.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// LocationAction is something the player can do at a location.
type LocationAction struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Consequence Delta  `yaml:"consequence"`
	Cost        Cost   `yaml:"cost"`
}

// Location represents a specific place in the world.
type Location struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Icon        string           `yaml:"icon"`
	Position    Position         `yaml:"position"`
	Actions     []LocationAction `yaml:"actions"`
}

// HistoryEntry represents a single turn in the game.
type HistoryEntry struct {
	PlayerAction string `yaml:"player_action"`
	Outcome      string `yaml:"outcome"`
	Changes      Delta  `yaml:"changes,omitempty"`
}

// ElementType is the kind of a studio element.
type ElementType string

const (
	ElementCharacter ElementType = "character"
	ElementItem      ElementType = "item"
	ElementLocation  ElementType = "location"
	ElementAction    ElementType = "action"
)

// ElementTypes lists the element kinds in menu order.
var ElementTypes = []ElementType{ElementCharacter, ElementItem, ElementLocation, ElementAction}

// Valid reports whether t is one of the known element kinds.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GameElement is a user-authored object inside a project.
type GameElement struct {
	ID          string         `yaml:"id"`
	Type        ElementType    `yaml:"type"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Icon        string         `yaml:"icon"`
	Properties  map[string]any `yaml:"properties"`
	Position    *Position      `yaml:"position,omitempty"`
}

// ElementTemplate seeds a new element. Templates are data, not behavior.
type ElementTemplate struct {
	Type        ElementType    `yaml:"type"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Icon        string         `yaml:"icon"`
	Properties  map[string]any `yaml:"properties"`
	Position    *Position      `yaml:"position,omitempty"`
}

// GameProject owns an ordered list of elements.
type GameProject struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Elements     []GameElement `yaml:"elements"`
	GameLogic    string        `yaml:"game_logic"`
	LastModified time.Time     `yaml:"last_modified"`
}

// Element returns the element with the given id.
func (p GameProject) Element(id string) (GameElement, bool) {
	for _, e := range p.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return GameElement{}, false
}
