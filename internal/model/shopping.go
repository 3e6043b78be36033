package model

import "time"

// IngredientCategory groups a shopping item for display and for the
// clipboard formatter's section headers.
type IngredientCategory string

const (
	IngCategoryProduce IngredientCategory = "produce"
	IngCategoryProtein IngredientCategory = "protein"
	IngCategoryDairy   IngredientCategory = "dairy"
	IngCategoryGrains  IngredientCategory = "grains"
	IngCategoryPantry  IngredientCategory = "pantry"
	IngCategoryOther   IngredientCategory = "other"
)

// ShoppingItem is one aggregated, normalized line in a ShoppingList.
type ShoppingItem struct {
	ID       string
	Name     string // normalized noun phrase
	Quantity float64
	Unit     string // canonical unit, may be empty
	Checked  bool
	Category IngredientCategory
}

// ShoppingList is derived from a single selected MealPlan.
type ShoppingList struct {
	ID        string
	PlanID    string
	Items     []ShoppingItem
	CreatedAt time.Time
}
