package habits

import "strings"

// FallbackIcon replaces icon names that aren't in the catalog
const FallbackIcon = "HelpCircle"

// icons maps icon keys to the glyph drawn in the terminal
var icons = map[string]string{
	"GlassWater": "💧",
	"BookOpen":   "📖",
	"Dumbbell":   "🏋",
	"Brain":      "🧠",
	"PenSquare":  "✍",
	"Bed":        "🛏",
	"Apple":      "🍎",
	"Bike":       "🚲",
	"Coffee":     "☕",
	"Footprints": "👣",
	"Heart":      "❤",
	"Music":      "🎵",
	"Sun":        "☀",
	"Moon":       "🌙",
	"Leaf":       "🌿",
	"Code":       "💻",
	"HelpCircle": "❔",
}

// ResolveIcon returns the catalog key for name, matching case-insensitively.
// ok is false when name is unknown and the fallback was returned.
func ResolveIcon(name string) (key string, ok bool) {
	name = strings.TrimSpace(name)
	if _, found := icons[name]; found {
		return name, true
	}
	for k := range icons {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return FallbackIcon, false
}

// Glyph returns the terminal glyph for an icon key
func Glyph(key string) string {
	if g, ok := icons[key]; ok {
		return g
	}
	return icons[FallbackIcon]
}

// IconNames lists the catalog keys in display order
func IconNames() []string {
	return []string{
		"GlassWater", "BookOpen", "Dumbbell", "Brain", "PenSquare", "Bed", "Apple", "Bike",
		"Coffee", "Footprints", "Heart", "Music", "Sun", "Moon", "Leaf", "Code", "HelpCircle",
	}
}
