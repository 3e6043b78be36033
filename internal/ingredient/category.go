package ingredient

import (
	"strings"

	"github.com/mealplanner/core/internal/model"
)

// categoryKeywords is checked in this exact order — produce, protein,
// dairy, grains, pantry — per spec.md §4.3 step 6: first match wins.
var categoryKeywords = []struct {
	category model.IngredientCategory
	keywords []string
}{
	{model.IngCategoryProduce, []string{
		"onion", "garlic", "tomato", "potato", "carrot", "celery", "pepper",
		"cilantro", "parsley", "basil", "lettuce", "spinach", "kale",
		"broccoli", "cucumber", "zucchini", "mushroom", "lemon", "lime",
		"apple", "banana", "avocado", "ginger", "scallion", "shallot",
		"cabbage", "corn", "squash",
	}},
	{model.IngCategoryProtein, []string{
		"chicken", "beef", "pork", "turkey", "fish", "salmon", "tuna",
		"shrimp", "egg", "tofu", "tempeh", "bacon", "sausage", "steak",
		"lamb", "shellfish", "lentil", "bean",
	}},
	{model.IngCategoryDairy, []string{
		"milk", "cheese", "butter", "yogurt", "cream", "mozzarella",
		"parmesan", "cheddar", "ricotta", "sour cream",
	}},
	{model.IngCategoryGrains, []string{
		"flour", "rice", "pasta", "bread", "oat", "quinoa", "noodle",
		"tortilla", "cereal", "barley", "couscous",
	}},
	{model.IngCategoryPantry, []string{
		"oil", "salt", "sugar", "vinegar", "sauce", "spice", "stock",
		"broth", "honey", "syrup", "baking powder", "baking soda",
		"vanilla", "cinnamon", "paprika", "cumin", "nut", "seed",
	}},
}

// Categorize assigns an ingredient category by keyword containment,
// iterating the category lists in the fixed order above.
func Categorize(normalizedName string) model.IngredientCategory {
	name := strings.ToLower(normalizedName)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(name, kw) {
				return group.category
			}
		}
	}
	return model.IngCategoryOther
}
