package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

// SyncStateRepository manages the singleton SyncState row (id=1).
type SyncStateRepository struct {
	db *gorm.DB
}

func (r *SyncStateRepository) Get(ctx context.Context) (model.SyncState, error) {
	var row syncStateRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", syncStateSingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SyncState{}, nil
	}
	if err != nil {
		return model.SyncState{}, coreerr.SchemaMismatch("get sync state", err)
	}
	return row.toModel(), nil
}

// Save persists sync state. LastSyncAt should only be advanced by the
// caller once a sync pass completes with no fatal error (spec.md §4.6);
// this repository just stores whatever it is given.
func (r *SyncStateRepository) Save(ctx context.Context, state model.SyncState) error {
	row := toSyncStateRow(state)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return coreerr.SchemaMismatch("save sync state", err)
	}
	return nil
}
