package storage

import (
	"github.com/mealplanner/core/internal/config"
	"github.com/mealplanner/core/internal/coreerr"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the single gorm.DB handle plus one repository per entity
// family, mirroring the teacher's ORMService: one process-wide object
// created once at startup and handed to every caller.
type Store struct {
	db *gorm.DB

	Recipes      *RecipeRepository
	Plans        *MealPlanRepository
	ShoppingList *ShoppingListRepository
	Preferences  *PreferencesRepository
	SyncState    *SyncStateRepository
}

// Open connects to Postgres and runs AutoMigrate for every row type, then
// wires up the repositories.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	var gormLogger logger.Interface
	if cfg.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, coreerr.SchemaMismatch("open database", err)
	}

	if err := db.AutoMigrate(
		&recipeRow{}, &mealPlanRow{}, &shoppingListRow{}, &preferencesRow{}, &syncStateRow{},
	); err != nil {
		return nil, coreerr.SchemaMismatch("auto-migrate", err)
	}

	return &Store{
		db:           db,
		Recipes:      &RecipeRepository{db: db},
		Plans:        &MealPlanRepository{db: db},
		ShoppingList: &ShoppingListRepository{db: db},
		Preferences:  &PreferencesRepository{db: db},
		SyncState:    &SyncStateRepository{db: db},
	}, nil
}
