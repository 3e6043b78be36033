package storage

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

var validate = validator.New()

// RecipeRepository is the Recipe CRUD surface (spec.md §6), grounded on
// the teacher's recipeRepository.
type RecipeRepository struct {
	db *gorm.DB
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	rec := recipe.WithDefaults()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := rec.Validate(); err != nil {
		return coreerr.SchemaMismatch("create recipe", err)
	}
	row := toRecipeRow(rec)
	if err := validate.Struct(row); err != nil {
		return coreerr.SchemaMismatch("create recipe", err)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return coreerr.SchemaMismatch("create recipe", err)
	}
	*recipe = row.toModel()
	return nil
}

// GetByID returns the recipe and true, or a zero Recipe and false if no
// row matches (spec.md §6 get_recipe: "Recipe or null" — a missing row is
// not an error condition here).
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (model.Recipe, bool, error) {
	var row recipeRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Recipe{}, false, nil
		}
		return model.Recipe{}, false, coreerr.SchemaMismatch("get recipe", err)
	}
	return row.toModel(), true, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe model.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return coreerr.SchemaMismatch("update recipe", err)
	}
	row := toRecipeRow(recipe)
	if err := validate.Struct(row); err != nil {
		return coreerr.SchemaMismatch("update recipe", err)
	}
	if err := r.db.WithContext(ctx).Model(&recipeRow{}).Where("id = ?", recipe.ID).Updates(&row).Error; err != nil {
		return coreerr.SchemaMismatch("update recipe", err)
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&recipeRow{}, "id = ?", id).Error; err != nil {
		return coreerr.SchemaMismatch("delete recipe", err)
	}
	return nil
}

// RecipeFilter narrows list_recipes (spec.md §6): any zero-valued field is
// left unconstrained. Substring matches against the recipe name,
// case-insensitively.
type RecipeFilter struct {
	Category  model.RecipeCategory
	Source    model.RecipeSource
	Substring string
}

// List returns a page of recipes newest-created first (spec.md §6), plus
// the total count matching filter. Pagination (limit, offset) is
// additive (spec.md SUPPLEMENT, grounded on every teacher repository
// method's limit/offset signature); limit=0 means no limit.
func (r *RecipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int) ([]model.Recipe, int64, error) {
	var rows []recipeRow
	var total int64
	q := r.db.WithContext(ctx).Model(&recipeRow{})
	if filter.Category != "" {
		q = q.Where("category = ?", string(filter.Category))
	}
	if filter.Source != "" {
		q = q.Where("source = ?", string(filter.Source))
	}
	if filter.Substring != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Substring+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, coreerr.SchemaMismatch("count recipes", err)
	}
	q = q.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, coreerr.SchemaMismatch("list recipes", err)
	}
	out := make([]model.Recipe, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, total, nil
}

// GetByIDs returns every recipe whose id is in ids (spec.md §6
// get_recipes_by_ids), used by the shopping aggregator and reroll engine
// to resolve a plan's assigned recipes in one round trip.
func (r *RecipeRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []recipeRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, coreerr.SchemaMismatch("get recipes by ids", err)
	}
	out := make([]model.Recipe, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

// UpdatedSince returns recipes that changed locally since t and have not
// yet been reflected to the remote service (spec.md §6
// recipes_updated_since): updated_at > t AND (synced_at IS NULL OR
// updated_at > synced_at). This is exactly the set the sync reconciler's
// Push step sends.
func (r *RecipeRepository) UpdatedSince(ctx context.Context, t time.Time) ([]model.Recipe, error) {
	var rows []recipeRow
	err := r.db.WithContext(ctx).
		Where("updated_at > ?", t).
		Where("synced_at IS NULL OR updated_at > synced_at").
		Find(&rows).Error
	if err != nil {
		return nil, coreerr.SchemaMismatch("recipes updated since", err)
	}
	out := make([]model.Recipe, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

// CopyRecipe duplicates a recipe under a new id (spec.md SUPPLEMENT,
// grounded on the teacher's RecipeRepository.Copy).
func (r *RecipeRepository) CopyRecipe(ctx context.Context, id string) (model.Recipe, error) {
	original, found, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Recipe{}, err
	}
	if !found {
		return model.Recipe{}, coreerr.SchemaMismatch("copy recipe", gorm.ErrRecordNotFound)
	}
	original.ID = uuid.NewString()
	original.ExternalRef = ""
	original.SyncedAt = nil
	if err := r.Create(ctx, &original); err != nil {
		return model.Recipe{}, err
	}
	return original, nil
}

// RecomputeRating averages a recipe's recorded ratings (spec.md
// SUPPLEMENT, grounded on the teacher's UpdateRecipeRating) given the
// caller-supplied set of individual ratings (this core has no comment/
// review entity of its own, so ratings arrive from the caller).
func (r *RecipeRepository) RecomputeRating(ctx context.Context, id string, ratings []int) error {
	if len(ratings) == 0 {
		return nil
	}
	avg := averageRating(ratings)
	return r.db.WithContext(ctx).Model(&recipeRow{}).Where("id = ?", id).Update("rating", &avg).Error
}

// averageRating rounds the mean of ratings to the nearest integer rather
// than truncating (e.g. {4,5} -> 5, not 4), matching spec.md SUPPLEMENT
// #1's "average rating" wording.
func averageRating(ratings []int) int {
	sum := 0
	for _, v := range ratings {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(ratings))))
}
