// Package ingredient converts free-text ingredient lines into a structured
// (quantity, unit, name, category) tuple and normalizes noun phrases so
// the shopping-list aggregator can sum quantities across recipes.
package ingredient

import (
	"strings"

	"github.com/mealplanner/core/internal/model"
)

// Parsed is the result of parsing one free-text ingredient line.
type Parsed struct {
	Quantity float64
	Unit     string
	Name     string
	Category model.IngredientCategory
}

// SkipList holds normalized names the aggregator drops silently (spec.md
// §4.3 "Skip list" — applied by the aggregator, not here).
var SkipList = map[string]bool{
	"water": true, "ice": true, "salt pepper": true, "cooking spray": true,
	"salt": true, "pepper": true, "kosher salt": true, "black pepper": true,
}

// Parse implements the algorithm of spec.md §4.3. It never fails outright:
// when no meaningful name remains, Name is empty and the caller (the
// aggregator) is responsible for treating that as coreerr.ParseGiveUp.
func Parse(raw string) Parsed {
	s := parenRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)

	qty, rest := leadingQuantity(s)
	rest = strings.TrimLeft(rest, " \t")

	unit, rest := consumeUnit(rest)
	rest = strings.TrimLeft(rest, " \t")
	rest = consumeOf(rest)

	name := normalizeName(rest)

	return Parsed{
		Quantity: qty,
		Unit:     unit,
		Name:     name,
		Category: Categorize(name),
	}
}

// consumeUnit attempts to consume a leading unit token (spec.md §4.3 step
// 4): a word from the fixed unit set, optional trailing period,
// case-insensitive.
func consumeUnit(s string) (string, string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", s
	}
	first := fields[0]
	canon, ok := canonicalUnit(first)
	if !ok {
		return "", s
	}
	idx := strings.Index(s, first)
	rest := s[idx+len(first):]
	return canon, rest
}

// consumeOf discards a single leading "of" token, if present.
func consumeOf(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	if strings.EqualFold(fields[0], "of") {
		idx := strings.Index(s, fields[0])
		return s[idx+len(fields[0]):]
	}
	return s
}
