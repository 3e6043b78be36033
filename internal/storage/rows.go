package storage

import (
	"time"

	"github.com/mealplanner/core/internal/model"
)

// recipeRow is the GORM-mapped row for a Recipe. The domain model package
// stays free of storage tags; this package owns the translation both ways.
type recipeRow struct {
	ID             string `gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Name           string `gorm:"not null" validate:"required"`
	Category       string `gorm:"not null;index" validate:"required,oneof=breakfast lunch dinner snack dessert"`
	Macros         macrosColumn      `gorm:"type:jsonb"`
	Ingredients    stringSliceColumn `gorm:"type:jsonb"`
	Instructions   string
	ImageRef       string
	Source         string
	SourceURL      string
	ExternalRef    string `gorm:"index"`
	Rating         *int               `validate:"omitempty,min=1,max=5"`
	FrequencyLimit int                `validate:"required,gt=0"`
	Servings       int                `validate:"required,gt=0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	SyncedAt  *time.Time
}

func (recipeRow) TableName() string { return "recipes" }

func toRecipeRow(r model.Recipe) recipeRow {
	return recipeRow{
		ID:             r.ID,
		Name:           r.Name,
		Category:       string(r.Category),
		Macros:         macrosColumn(r.Macros),
		Ingredients:    stringSliceColumn(r.Ingredients),
		Instructions:   r.Instructions,
		ImageRef:       r.ImageRef,
		Source:         string(r.Source),
		SourceURL:      r.SourceURL,
		ExternalRef:    r.ExternalRef,
		Rating:         r.Rating,
		FrequencyLimit: r.FrequencyLimit,
		Servings:       r.Servings,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		SyncedAt:       r.SyncedAt,
	}
}

func (row recipeRow) toModel() model.Recipe {
	return model.Recipe{
		ID:             row.ID,
		Name:           row.Name,
		Category:       model.RecipeCategory(row.Category),
		Macros:         model.Macros(row.Macros),
		Ingredients:    []string(row.Ingredients),
		Instructions:   row.Instructions,
		ImageRef:       row.ImageRef,
		Source:         model.RecipeSource(row.Source),
		SourceURL:      row.SourceURL,
		ExternalRef:    row.ExternalRef,
		Rating:         row.Rating,
		FrequencyLimit: row.FrequencyLimit,
		Servings:       row.Servings,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		SyncedAt:       row.SyncedAt,
	}
}

// mealPlanRow is the GORM-mapped row for a MealPlan.
type mealPlanRow struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Label    string
	Days     daysColumn         `gorm:"type:jsonb"`
	Summary  macroSummaryColumn `gorm:"type:jsonb"`
	Selected bool               `gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	SyncedAt  *time.Time
}

func (mealPlanRow) TableName() string { return "meal_plans" }

func toMealPlanRow(p model.MealPlan) mealPlanRow {
	return mealPlanRow{
		ID:        p.ID,
		Label:     p.Label,
		Days:      daysColumn(p.Days),
		Summary:   macroSummaryColumn(p.Summary),
		Selected:  p.Selected,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		SyncedAt:  p.SyncedAt,
	}
}

func (row mealPlanRow) toModel() model.MealPlan {
	return model.MealPlan{
		ID:        row.ID,
		Label:     row.Label,
		Days:      []model.DayPlan(row.Days),
		Summary:   model.MacroSummary(row.Summary),
		Selected:  row.Selected,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		SyncedAt:  row.SyncedAt,
	}
}

// shoppingListRow is the GORM-mapped row for a ShoppingList.
type shoppingListRow struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	PlanID    string `gorm:"index"`
	Items     shoppingItemsColumn `gorm:"type:jsonb"`
	CreatedAt time.Time           `gorm:"autoCreateTime"`
}

func (shoppingListRow) TableName() string { return "shopping_lists" }

func toShoppingListRow(s model.ShoppingList) shoppingListRow {
	return shoppingListRow{ID: s.ID, PlanID: s.PlanID, Items: shoppingItemsColumn(s.Items), CreatedAt: s.CreatedAt}
}

func (row shoppingListRow) toModel() model.ShoppingList {
	return model.ShoppingList{ID: row.ID, PlanID: row.PlanID, Items: []model.ShoppingItem(row.Items), CreatedAt: row.CreatedAt}
}

// preferencesRow is the singleton preferences row (id is always 1).
type preferencesRow struct {
	ID                       uint `gorm:"primaryKey"`
	Calories                 macrosTargetColumn `gorm:"type:jsonb"`
	Protein                  macrosTargetColumn `gorm:"type:jsonb"`
	Fat                      macrosTargetColumn `gorm:"type:jsonb"`
	Carbs                    macrosTargetColumn `gorm:"type:jsonb"`
	Fiber                    macrosTargetColumn `gorm:"type:jsonb"`
	DefaultFrequency         int
	NumDays                  int
	IncludeSnacks            bool
	CombineLunchDinner       bool
	PreferSimilarIngredients bool
	SelectedSlots            slotSliceColumn     `gorm:"type:jsonb"`
	PriorityOrder            macroNameSliceColumn `gorm:"type:jsonb"`
}

func (preferencesRow) TableName() string { return "preferences" }

const preferencesSingletonID = 1

func toPreferencesRow(p model.Preferences) preferencesRow {
	return preferencesRow{
		ID:                       preferencesSingletonID,
		Calories:                 macrosTargetColumn(p.Targets.Calories),
		Protein:                  macrosTargetColumn(p.Targets.Protein),
		Fat:                      macrosTargetColumn(p.Targets.Fat),
		Carbs:                    macrosTargetColumn(p.Targets.Carbs),
		Fiber:                    macrosTargetColumn(p.Targets.Fiber),
		DefaultFrequency:         p.DefaultFrequency,
		NumDays:                  p.NumDays,
		IncludeSnacks:            p.IncludeSnacks,
		CombineLunchDinner:       p.CombineLunchDinner,
		PreferSimilarIngredients: p.PreferSimilarIngredients,
		SelectedSlots:            slotSliceColumn(p.SelectedSlots),
		PriorityOrder:            macroNameSliceColumn(p.PriorityOrder),
	}
}

func (row preferencesRow) toModel() model.Preferences {
	return model.Preferences{
		Targets: model.MacroTargets{
			Calories: model.MacroTarget(row.Calories),
			Protein:  model.MacroTarget(row.Protein),
			Fat:      model.MacroTarget(row.Fat),
			Carbs:    model.MacroTarget(row.Carbs),
			Fiber:    model.MacroTarget(row.Fiber),
		},
		DefaultFrequency:         row.DefaultFrequency,
		NumDays:                  row.NumDays,
		IncludeSnacks:            row.IncludeSnacks,
		CombineLunchDinner:       row.CombineLunchDinner,
		PreferSimilarIngredients: row.PreferSimilarIngredients,
		SelectedSlots:            []model.MealSlot(row.SelectedSlots),
		PriorityOrder:            []model.MacroName(row.PriorityOrder),
	}
}

// syncStateRow is the singleton sync-state row (id is always 1).
type syncStateRow struct {
	ID                  uint `gorm:"primaryKey"`
	Email               *string
	ServerToken         *string
	ExternalCredentials *string
	LastSyncAt          *time.Time
}

func (syncStateRow) TableName() string { return "sync_state" }

const syncStateSingletonID = 1

func toSyncStateRow(s model.SyncState) syncStateRow {
	return syncStateRow{
		ID:                  syncStateSingletonID,
		Email:               s.Email,
		ServerToken:         s.ServerToken,
		ExternalCredentials: s.ExternalCredentials,
		LastSyncAt:          s.LastSyncAt,
	}
}

func (row syncStateRow) toModel() model.SyncState {
	return model.SyncState{
		Email:               row.Email,
		ServerToken:         row.ServerToken,
		ExternalCredentials: row.ExternalCredentials,
		LastSyncAt:          row.LastSyncAt,
	}
}
