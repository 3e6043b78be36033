// Package protein does keyword-based categorization of a recipe's protein
// source, used by the LP builder's "preferSimilarIngredients" variety cap
// (spec.md §4.1 constraint 8).
package protein

import "strings"

// Category is a coarse protein-source bucket.
type Category string

const (
	Chicken   Category = "chicken"
	Beef      Category = "beef"
	Pork      Category = "pork"
	Fish      Category = "fish"
	Shellfish Category = "shellfish"
	Egg       Category = "egg"
	Legume    Category = "legume"
	Tofu      Category = "tofu"
	Turkey    Category = "turkey"
	Dairy     Category = "dairy"
)

var keywordOrder = []struct {
	category Category
	keywords []string
}{
	{Chicken, []string{"chicken"}},
	{Turkey, []string{"turkey"}},
	{Beef, []string{"beef", "steak", "ground beef"}},
	{Pork, []string{"pork", "bacon", "ham", "sausage"}},
	{Fish, []string{"salmon", "tuna", "cod", "tilapia", "fish", "anchovy"}},
	{Shellfish, []string{"shrimp", "crab", "lobster", "scallop", "clam", "mussel"}},
	{Egg, []string{"egg"}},
	{Tofu, []string{"tofu", "tempeh", "seitan"}},
	{Legume, []string{"lentil", "chickpea", "black bean", "kidney bean", "bean"}},
	{Dairy, []string{"cottage cheese", "greek yogurt", "yogurt", "cheese"}},
}

// Detect returns every protein category whose keywords appear anywhere
// across the recipe's ingredient lines, scanned in the fixed order above.
// A recipe can contain more than one protein category (e.g. a
// chicken-and-bean chili).
func Detect(ingredientLines []string) []Category {
	joined := strings.ToLower(strings.Join(ingredientLines, " \n "))

	var found []Category
	seen := make(map[Category]bool)
	for _, group := range keywordOrder {
		for _, kw := range group.keywords {
			if strings.Contains(joined, kw) {
				if !seen[group.category] {
					seen[group.category] = true
					found = append(found, group.category)
				}
				break
			}
		}
	}
	return found
}
