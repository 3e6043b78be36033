package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

// ShoppingListRepository is the ShoppingList CRUD surface (spec.md §6).
// A shopping list is derived data (spec.md §4.4), so it only needs
// create/get/delete, no update.
type ShoppingListRepository struct {
	db *gorm.DB
}

func (r *ShoppingListRepository) Create(ctx context.Context, list *model.ShoppingList) error {
	if list.ID == "" {
		list.ID = uuid.NewString()
	}
	for i := range list.Items {
		if list.Items[i].ID == "" {
			list.Items[i].ID = uuid.NewString()
		}
	}
	row := toShoppingListRow(*list)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return coreerr.SchemaMismatch("create shopping list", err)
	}
	*list = row.toModel()
	return nil
}

func (r *ShoppingListRepository) GetByPlanID(ctx context.Context, planID string) (model.ShoppingList, error) {
	var row shoppingListRow
	if err := r.db.WithContext(ctx).First(&row, "plan_id = ?", planID).Error; err != nil {
		return model.ShoppingList{}, coreerr.SchemaMismatch("get shopping list", err)
	}
	return row.toModel(), nil
}

func (r *ShoppingListRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&shoppingListRow{}, "id = ?", id).Error; err != nil {
		return coreerr.SchemaMismatch("delete shopping list", err)
	}
	return nil
}
