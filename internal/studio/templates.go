package studio

import (
	"maps"

	"github.com/tatianab/game-studio/internal/models"
)

// FromTemplate builds a new element with the given id. Properties are deep copied.
func FromTemplate(tmpl models.ElementTemplate, id string) models.GameElement {
	el := models.GameElement{
		ID:          id,
		Type:        tmpl.Type,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Icon:        tmpl.Icon,
		Properties:  cloneProperties(tmpl.Properties),
	}
	if tmpl.Position != nil {
		el.Position = &models.Position{X: tmpl.Position.X, Y: tmpl.Position.Y}
	}
	return el
}

func cloneProject(p models.GameProject) models.GameProject {
	out := p
	out.Elements = make([]models.GameElement, len(p.Elements))
	for i, e := range p.Elements {
		out.Elements[i] = cloneElement(e)
	}
	return out
}

func cloneElement(e models.GameElement) models.GameElement {
	out := e
	out.Properties = cloneProperties(e.Properties)
	if e.Position != nil {
		pos := *e.Position
		out.Position = &pos
	}
	return out
}

func cloneProperties(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes YAML decoding produces.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneProperties(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case map[string]string:
		return maps.Clone(t)
	default:
		return v
	}
}
