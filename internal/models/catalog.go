package models

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaultData embed.FS

// Catalog is the fixed content both game modes are built from.
type Catalog struct {
	StartStats    Stats             `yaml:"start_stats"`
	StartLocation string            `yaml:"start_location"`
	Locations     []Location        `yaml:"locations"`
	Events        []Event           `yaml:"events"`
	Templates     []ElementTemplate `yaml:"templates"`
}

// ErrInvalidCatalog is returned when catalog content fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// DefaultCatalog loads the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return LoadCatalogFS(sub)
}

// LoadCatalog reads world.yaml, events.yaml and templates.yaml from dir.
// An empty dir means the embedded catalog.
func LoadCatalog(dir string) (*Catalog, error) {
	if dir == "" {
		return DefaultCatalog()
	}
	return LoadCatalogFS(os.DirFS(dir))
}

// LoadCatalogFS reads the catalog files from fsys and validates them.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	var world, events, templates Catalog
	if err := readYAML(fsys, "world.yaml", &world); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, "events.yaml", &events); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, "templates.yaml", &templates); err != nil {
		return nil, err
	}

	cat := Catalog{
		StartStats:    world.StartStats,
		StartLocation: world.StartLocation,
		Locations:     world.Locations,
		Events:        events.Events,
		Templates:     templates.Templates,
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Validate checks references, uniqueness and the starting stat ranges.
func (c *Catalog) Validate() error {
	st := c.StartStats
	for _, v := range []int{st.Health, st.Energy, st.Happiness} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: start stats %+v out of range 0-100", ErrInvalidCatalog, st)
		}
	}
	if st.Money < 0 {
		return fmt.Errorf("%w: start money %d is negative", ErrInvalidCatalog, st.Money)
	}

	locIDs := make(map[string]bool, len(c.Locations))
	for _, loc := range c.Locations {
		if loc.ID == "" {
			return fmt.Errorf("%w: location %q has no id", ErrInvalidCatalog, loc.Name)
		}
		if locIDs[loc.ID] {
			return fmt.Errorf("%w: duplicate location id %q", ErrInvalidCatalog, loc.ID)
		}
		locIDs[loc.ID] = true

		actionIDs := make(map[string]bool, len(loc.Actions))
		for _, a := range loc.Actions {
			if a.ID == "" || actionIDs[a.ID] {
				return fmt.Errorf("%w: location %q has a missing or duplicate action id %q", ErrInvalidCatalog, loc.ID, a.ID)
			}
			if a.Cost.Energy < 0 || a.Cost.Money < 0 {
				return fmt.Errorf("%w: action %s/%s has a negative cost", ErrInvalidCatalog, loc.ID, a.ID)
			}
			actionIDs[a.ID] = true
		}
	}
	if !locIDs[c.StartLocation] {
		return fmt.Errorf("%w: start location %q is not defined", ErrInvalidCatalog, c.StartLocation)
	}

	eventIDs := make(map[string]bool, len(c.Events))
	for _, ev := range c.Events {
		if ev.ID == "" || eventIDs[ev.ID] {
			return fmt.Errorf("%w: missing or duplicate event id %q", ErrInvalidCatalog, ev.ID)
		}
		if len(ev.Choices) == 0 {
			return fmt.Errorf("%w: event %q has no choices", ErrInvalidCatalog, ev.ID)
		}
		eventIDs[ev.ID] = true
	}

	seen := make(map[ElementType]bool, len(c.Templates))
	for _, t := range c.Templates {
		if !t.Type.Valid() {
			return fmt.Errorf("%w: unknown template type %q", ErrInvalidCatalog, t.Type)
		}
		seen[t.Type] = true
	}
	for _, t := range ElementTypes {
		if !seen[t] {
			return fmt.Errorf("%w: no template for %s", ErrInvalidCatalog, t)
		}
	}
	return nil
}

// Template returns the template for the given element type.
func (c *Catalog) Template(t ElementType) (ElementTemplate, bool) {
	for _, tmpl := range c.Templates {
		if tmpl.Type == t {
			return tmpl, true
		}
	}
	return ElementTemplate{}, false
}
