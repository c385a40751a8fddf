package models

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load default catalog: %v", err)
	}

	if cat.StartLocation != "home" {
		t.Errorf("Expected start location home, got %s", cat.StartLocation)
	}
	want := Stats{Health: 85, Energy: 70, Money: 2500, Happiness: 75, Age: 25, Level: 1}
	if cat.StartStats != want {
		t.Errorf("Expected start stats %+v, got %+v", want, cat.StartStats)
	}
	if len(cat.Events) == 0 {
		t.Errorf("Expected events in the default catalog")
	}

	gym := findLocation(cat, "gym")
	if gym == nil {
		t.Fatalf("Expected a gym location")
	}
	workout := gym.Actions[0]
	if workout.Cost != (Cost{Energy: 15, Money: 30}) || workout.Consequence != (Delta{Health: 10}) {
		t.Errorf("Unexpected workout action: %+v", workout)
	}

	loc, ok := cat.Template(ElementLocation)
	if !ok {
		t.Fatalf("Expected a location template")
	}
	if loc.Position == nil || *loc.Position != (Position{X: 100, Y: 100}) {
		t.Errorf("Expected location template at 100,100, got %v", loc.Position)
	}
	if _, ok := loc.Properties["connections"]; !ok {
		t.Errorf("Expected connections property on location template")
	}
}

func TestCatalogMissingFieldsDefaultToZero(t *testing.T) {
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load default catalog: %v", err)
	}
	var musician *Event
	for i := range cat.Events {
		if cat.Events[i].ID == "street-musician" {
			musician = &cat.Events[i]
		}
	}
	if musician == nil {
		t.Fatalf("Expected street-musician event")
	}
	if !musician.Choices[1].Consequence.IsZero() {
		t.Errorf("Expected empty consequence to decode as zero, got %+v", musician.Choices[1].Consequence)
	}
}

func TestLoadCatalogFSValidation(t *testing.T) {
	templates := `templates:
  - {type: character, name: c}
  - {type: item, name: i}
  - {type: location, name: l}
  - {type: action, name: a}
`
	tests := []struct {
		name   string
		world  string
		events string
	}{
		{
			name:   "unknown start location",
			world:  "start_location: nowhere\nlocations:\n  - {id: home, name: Home}\n",
			events: "events: []\n",
		},
		{
			name:   "duplicate location",
			world:  "start_location: home\nlocations:\n  - {id: home}\n  - {id: home}\n",
			events: "events: []\n",
		},
		{
			name:   "event without choices",
			world:  "start_location: home\nlocations:\n  - {id: home}\n",
			events: "events:\n  - {id: e1, title: Empty}\n",
		},
		{
			name:   "start stats above 100",
			world:  "start_location: home\nstart_stats: {health: 150, energy: 250, money: 40, happiness: 50}\nlocations:\n  - {id: home}\n",
			events: "events: []\n",
		},
		{
			name:   "negative start stats",
			world:  "start_location: home\nstart_stats: {health: 50, energy: 50, money: -40, happiness: -9}\nlocations:\n  - {id: home}\n",
			events: "events: []\n",
		},
		{
			name:   "negative cost",
			world:  "start_location: home\nlocations:\n  - id: home\n    actions:\n      - {id: a, cost: {money: -1}}\n",
			events: "events: []\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"world.yaml":     {Data: []byte(tc.world)},
				"events.yaml":    {Data: []byte(tc.events)},
				"templates.yaml": {Data: []byte(templates)},
			}
			_, err := LoadCatalogFS(fsys)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("Expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoadCatalogFSMissingFile(t *testing.T) {
	_, err := LoadCatalogFS(fstest.MapFS{})
	if err == nil {
		t.Fatalf("Expected an error for an empty filesystem")
	}
}

func TestElementTypeValid(t *testing.T) {
	if !ElementItem.Valid() {
		t.Errorf("Expected item to be valid")
	}
	if ElementType("spell").Valid() {
		t.Errorf("Expected spell to be invalid")
	}
}

func findLocation(cat *Catalog, id string) *Location {
	for i := range cat.Locations {
		if cat.Locations[i].ID == id {
			return &cat.Locations[i]
		}
	}
	return nil
}
