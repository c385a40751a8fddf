package studio

import "github.com/tatianab/game-studio/internal/models"

// DefaultPosition is where a location without coordinates is drawn.
var DefaultPosition = models.Position{X: 100, Y: 100}

// Preview is the play-mode view of a project.
type Preview struct {
	Title      string
	Locations  []PlacedLocation
	Characters []models.GameElement
	Items      []models.GameElement
}

// PlacedLocation is a location element with a resolved map position.
type PlacedLocation struct {
	Element  models.GameElement
	Position models.Position
}

// NewPreview splits a project's elements by type for play mode.
func NewPreview(p models.GameProject) Preview {
	pv := Preview{Title: p.Name}
	for _, e := range p.Elements {
		switch e.Type {
		case models.ElementLocation:
			pos := DefaultPosition
			if e.Position != nil {
				pos = *e.Position
			}
			pv.Locations = append(pv.Locations, PlacedLocation{Element: cloneElement(e), Position: pos})
		case models.ElementCharacter:
			pv.Characters = append(pv.Characters, cloneElement(e))
		case models.ElementItem:
			pv.Items = append(pv.Items, cloneElement(e))
		}
	}
	return pv
}

// Counts tallies elements per type.
func Counts(p models.GameProject) map[models.ElementType]int {
	counts := make(map[models.ElementType]int, len(models.ElementTypes))
	for _, e := range p.Elements {
		counts[e.Type]++
	}
	return counts
}
