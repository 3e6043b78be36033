// Package shopping collapses all ingredient lines across a meal plan's
// recipes into a sorted, grouped shopping list, and formats that list for
// clipboard/sharing use (spec.md §4.4).
package shopping

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mealplanner/core/internal/ingredient"
	"github.com/mealplanner/core/internal/model"
)

// aggregateEntry accumulates one normalized ingredient's quantity across
// every recipe that calls for it.
type aggregateEntry struct {
	quantity decimal.Decimal
	unit     string
	category model.IngredientCategory
}

// RecipeLookup resolves a recipe id to its full Recipe, as needed to read
// ingredient lines and the servings scale factor.
type RecipeLookup func(recipeID string) (model.Recipe, bool)

// Aggregate implements spec.md §4.4 steps 1-5. Quantities and categories
// are commutative under the (day, slot) traversal order (§8 P7): they
// depend only on the multiset of (recipe, scale) pairs, because
// accumulation is a decimal sum keyed by normalized name. The unit is the
// first non-empty one seen in traversal order, so when recipes give the
// same ingredient different units, the reported unit depends on that order.
func Aggregate(plan model.MealPlan, lookup RecipeLookup) []model.ShoppingItem {
	entries := make(map[string]*aggregateEntry)

	for _, day := range plan.Days {
		for _, assignment := range day.Assignments {
			recipe, ok := lookup(assignment.RecipeID)
			if !ok {
				continue
			}
			servings := recipe.Servings
			if servings <= 0 {
				servings = model.DefaultServings
			}
			scale := 1.0 / float64(servings)

			for _, line := range recipe.Ingredients {
				parsed := ingredient.Parse(line)
				if parsed.Name == "" {
					// coreerr.ParseGiveUp: the aggregator drops the item silently.
					continue
				}
				if ingredient.SkipList[parsed.Name] {
					continue
				}

				e, exists := entries[parsed.Name]
				if !exists {
					e = &aggregateEntry{category: model.IngCategoryOther}
					entries[parsed.Name] = e
				}
				e.quantity = e.quantity.Add(decimal.NewFromFloat(parsed.Quantity * scale))
				if e.unit == "" && parsed.Unit != "" {
					e.unit = parsed.Unit
				}
				if e.category == model.IngCategoryOther && parsed.Category != model.IngCategoryOther {
					e.category = parsed.Category
				}
			}
		}
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]model.ShoppingItem, 0, len(names))
	for _, name := range names {
		e := entries[name]
		qty, _ := e.quantity.Round(2).Float64()
		items = append(items, model.ShoppingItem{
			Name:     name,
			Quantity: qty,
			Unit:     e.unit,
			Category: e.category,
		})
	}
	return items
}

// formatQuantity drops trailing zeros, per the clipboard formatter spec.
func formatQuantity(q float64) string {
	rounded := math.Round(q*100) / 100
	s := fmt.Sprintf("%.2f", rounded)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
