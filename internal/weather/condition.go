package weather

// conditionIcons maps the upstream main weather category to a Nerd Font glyph
// padded to a common visual width. The set is closed; lookups are case-sensitive.
var conditionIcons = map[string]string{
	"Thunderstorm": "\uF76C ",
	"Drizzle":      "\uF73D ",
	"Rain":         "\uF740 ",
	"Snow":         "\uF2DC \u2009",
	"Clear":        "\uF185 ",
	"Clouds":       "\uF0C2\u2009\u2009",
}

// ConditionIcon returns the glyph for category and whether it is known.
func ConditionIcon(category string) (string, bool) {
	icon, ok := conditionIcons[category]
	return icon, ok
}
