package ingredient

import "strings"

// unitCanon maps every recognized unit token (lowercased, trailing period
// already stripped) to its canonical singular form. Built from spec.md
// §4.3's fixed unit set; plural forms fold to singular, and "lb" is
// preferred over "pound" the way the spec calls out explicitly.
var unitCanon = map[string]string{
	"cup": "cup", "cups": "cup",
	"tbsp": "tbsp",
	"tsp":  "tsp",
	"oz":   "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg",
	"ml": "ml",
	"liter": "liter", "liters": "liter",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"bunch": "bunch", "bunches": "bunch",
	"pinch": "pinch",
	"dash":  "dash",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece",
	"tablespoon": "tablespoon", "tablespoons": "tablespoon",
	"teaspoon": "teaspoon", "teaspoons": "teaspoon",
	"stalk": "stalk", "stalks": "stalk",
	"head": "head", "heads": "head",
	"sprig": "sprig", "sprigs": "sprig",
}

// canonicalUnit looks up a raw unit token, tolerating a trailing period
// and any case.
func canonicalUnit(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSuffix(token, "."))
	canon, ok := unitCanon[t]
	return canon, ok
}

// invariantPluralUnits never take a trailing "s" in display text (used by
// the shopping-list clipboard formatter).
var invariantPluralUnits = map[string]bool{
	"g": true, "kg": true, "ml": true, "tbsp": true, "tsp": true,
}

// PluralizeUnit returns the display plural of a canonical unit, used by
// the clipboard formatter when quantity > 1.
func PluralizeUnit(unit string) string {
	if unit == "" || invariantPluralUnits[unit] {
		return unit
	}
	if strings.HasSuffix(unit, "ch") || strings.HasSuffix(unit, "sh") {
		return unit + "es"
	}
	return unit + "s"
}
