package shopping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mealplanner/core/internal/ingredient"
	"github.com/mealplanner/core/internal/model"
)

// FormatClipboard groups items by category, sorts categories
// alphabetically, and emits one "--- CATEGORY ---" section per category
// followed by one "[ ] name — Q UNIT" line per item (spec.md §4.4).
func FormatClipboard(items []model.ShoppingItem) string {
	byCategory := make(map[model.IngredientCategory][]model.ShoppingItem)
	for _, it := range items {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "--- %s ---\n", strings.ToUpper(c))

		its := byCategory[model.IngredientCategory(c)]
		sort.Slice(its, func(i, j int) bool { return its[i].Name < its[j].Name })

		for _, it := range its {
			unit := it.Unit
			if it.Quantity > 1 {
				unit = ingredient.PluralizeUnit(unit)
			}
			line := fmt.Sprintf("[ ] %s — %s", it.Name, formatQuantity(it.Quantity))
			if unit != "" {
				line += " " + unit
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
