package tui

// glyphs maps the icon names used in catalogs and templates to terminal glyphs.
var glyphs = map[string]string{
	"User":        "☺",
	"Package":     "▣",
	"MapPin":      "⌖",
	"Zap":         "ϟ",
	"Heart":       "♥",
	"Sword":       "†",
	"Home":        "⌂",
	"Briefcase":   "▤",
	"Dumbbell":    "╪",
	"Trees":       "♣",
	"ShoppingBag": "◫",
	"Cross":       "✚",
}

// IconNames are the icons offered when editing an element.
var IconNames = []string{"User", "Package", "MapPin", "Zap", "Heart", "Sword"}

// glyph looks up an icon, falling back to a bullet for unknown names.
func glyph(name string) string {
	if g, ok := glyphs[name]; ok {
		return g
	}
	return "•"
}
