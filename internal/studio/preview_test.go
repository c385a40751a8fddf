package studio

import (
	"testing"

	"github.com/tatianab/game-studio/internal/models"
)

func TestNewPreview(t *testing.T) {
	p := models.GameProject{
		Name: "Quest",
		Elements: []models.GameElement{
			{ID: "1", Type: models.ElementLocation, Name: "Forest", Position: &models.Position{X: 10, Y: 20}},
			{ID: "2", Type: models.ElementLocation, Name: "Cave"},
			{ID: "3", Type: models.ElementCharacter, Name: "Smith"},
			{ID: "4", Type: models.ElementItem, Name: "Sword"},
			{ID: "5", Type: models.ElementAction, Name: "Heal"},
		},
	}

	pv := NewPreview(p)
	if pv.Title != "Quest" {
		t.Errorf("Expected title Quest, got %s", pv.Title)
	}
	if len(pv.Locations) != 2 || len(pv.Characters) != 1 || len(pv.Items) != 1 {
		t.Fatalf("Unexpected split: %d locations, %d characters, %d items", len(pv.Locations), len(pv.Characters), len(pv.Items))
	}
	if pv.Locations[0].Position != (models.Position{X: 10, Y: 20}) {
		t.Errorf("Expected explicit position kept, got %v", pv.Locations[0].Position)
	}
	if pv.Locations[1].Position != DefaultPosition {
		t.Errorf("Expected default position, got %v", pv.Locations[1].Position)
	}

	counts := Counts(p)
	if counts[models.ElementLocation] != 2 || counts[models.ElementAction] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}

func TestFromTemplateWithDefaultCatalog(t *testing.T) {
	cat, err := models.DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	for _, typ := range models.ElementTypes {
		tmpl, ok := cat.Template(typ)
		if !ok {
			t.Fatalf("missing template %s", typ)
		}
		el := FromTemplate(tmpl, "e_1")
		if el.ID != "e_1" || el.Type != typ || el.Name == "" || el.Icon == "" {
			t.Errorf("Unexpected element from %s template: %+v", typ, el)
		}
		if len(el.Properties) == 0 {
			t.Errorf("Expected %s template to seed properties", typ)
		}
	}
}
