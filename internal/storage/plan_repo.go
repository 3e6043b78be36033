package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

// MealPlanRepository is the MealPlan CRUD surface (spec.md §6).
type MealPlanRepository struct {
	db *gorm.DB
}

func (r *MealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	row := toMealPlanRow(*plan)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return coreerr.SchemaMismatch("create meal plan", err)
	}
	*plan = row.toModel()
	return nil
}

// GetByID returns the plan and true, or a zero MealPlan and false if no
// row matches (spec.md §6: "analogous" to get_recipe's "Recipe or null").
func (r *MealPlanRepository) GetByID(ctx context.Context, id string) (model.MealPlan, bool, error) {
	var row mealPlanRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.MealPlan{}, false, nil
		}
		return model.MealPlan{}, false, coreerr.SchemaMismatch("get meal plan", err)
	}
	return row.toModel(), true, nil
}

func (r *MealPlanRepository) Update(ctx context.Context, plan model.MealPlan) error {
	row := toMealPlanRow(plan)
	if err := r.db.WithContext(ctx).Model(&mealPlanRow{}).Where("id = ?", plan.ID).Updates(&row).Error; err != nil {
		return coreerr.SchemaMismatch("update meal plan", err)
	}
	return nil
}

func (r *MealPlanRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&mealPlanRow{}, "id = ?", id).Error; err != nil {
		return coreerr.SchemaMismatch("delete meal plan", err)
	}
	return nil
}

func (r *MealPlanRepository) List(ctx context.Context, limit, offset int) ([]model.MealPlan, int64, error) {
	var rows []mealPlanRow
	var total int64
	q := r.db.WithContext(ctx).Model(&mealPlanRow{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, coreerr.SchemaMismatch("count meal plans", err)
	}
	q = q.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, coreerr.SchemaMismatch("list meal plans", err)
	}
	out := make([]model.MealPlan, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, total, nil
}

// SelectPlan marks exactly one plan as Selected, clearing the flag on
// every other plan in the same transaction (spec.md SUPPLEMENT: plan
// selection exclusivity, grounded on the teacher's MarkAsCompleted
// pattern of clearing a prior exclusive flag before setting a new one).
func (r *MealPlanRepository) SelectPlan(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&mealPlanRow{}).Where("selected = ?", true).Update("selected", false).Error; err != nil {
			return err
		}
		return tx.Model(&mealPlanRow{}).Where("id = ?", id).Update("selected", true).Error
	})
	if err != nil {
		return coreerr.SchemaMismatch("select plan", err)
	}
	return nil
}
