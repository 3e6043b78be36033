package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

// PreferencesRepository manages the singleton Preferences row (id=1),
// seeded with model.DefaultPreferences on first read, mirroring the
// teacher's seeded-row pattern for singleton configuration.
type PreferencesRepository struct {
	db *gorm.DB
}

func (r *PreferencesRepository) Get(ctx context.Context) (model.Preferences, error) {
	var row preferencesRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", preferencesSingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := model.DefaultPreferences()
		if err := r.Save(ctx, defaults); err != nil {
			return model.Preferences{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return model.Preferences{}, coreerr.SchemaMismatch("get preferences", err)
	}
	return row.toModel(), nil
}

func (r *PreferencesRepository) Save(ctx context.Context, prefs model.Preferences) error {
	row := toPreferencesRow(prefs)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return coreerr.SchemaMismatch("save preferences", err)
	}
	return nil
}
