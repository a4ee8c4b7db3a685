package formatter

import "strings"

// stationEmoji is keyed by lower-cased, trimmed station label.
var stationEmoji = map[string]string{
	"breakfast":     "🍳",
	"grill":         "🍔",
	"pizza":         "🍕",
	"deli":          "🥪",
	"salad bar":     "🥗",
	"salads":        "🥗",
	"soup":          "🍲",
	"soups":         "🍲",
	"noodle bar":    "🍜",
	"wok":           "🥡",
	"entree":        "🍽️",
	"entrée":        "🍽️",
	"home style":    "🍽️",
	"international": "🌎",
	"global":        "🌎",
	"tortilla":      "🌮",
	"taqueria":      "🌮",
	"bakery":        "🥐",
	"dessert":       "🍰",
	"desserts":      "🍰",
	"vegan":         "🌱",
	"plant forward": "🌱",
}

func stationKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// emojiTable merges overrides onto the built-in table without touching it.
func emojiTable(overrides map[string]string) map[string]string {
	table := make(map[string]string, len(stationEmoji)+len(overrides))
	for k, v := range stationEmoji {
		table[k] = v
	}
	for k, v := range overrides {
		table[stationKey(k)] = v
	}
	return table
}
