// Command mealplanner is a minimal wiring entrypoint for the core
// package: it opens the store, loads preferences and recipes, generates
// a batch of candidate plans, and prints a summary of each. It has no
// HTTP surface of its own; transports are left to callers embedding
// this core.
package main

import (
	"context"
	"log"
	"os"

	"github.com/mealplanner/core/internal/config"
	"github.com/mealplanner/core/internal/milp"
	"github.com/mealplanner/core/internal/planner"
	"github.com/mealplanner/core/internal/storage"
)

func main() {
	ctx := context.Background()

	dbConfig := config.LoadDatabaseConfig()

	store, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}

	prefs, err := store.Preferences.Get(ctx)
	if err != nil {
		log.Fatalf("loading preferences: %v", err)
	}

	recipes, _, err := store.Recipes.List(ctx, storage.RecipeFilter{}, getEnvInt("RECIPE_PAGE_SIZE", 1000), 0)
	if err != nil {
		log.Fatalf("loading recipes: %v", err)
	}
	if len(recipes) == 0 {
		log.Fatalf("no recipes stored; add recipes before generating a plan")
	}

	backend := milp.NewLocalSearchBackend()
	plans, err := planner.GeneratePlans(backend, recipes, prefs, planner.DefaultNumPlans)
	if err != nil {
		log.Fatalf("generating plans: %v", err)
	}

	for _, plan := range plans {
		if err := store.Plans.Create(ctx, &plan); err != nil {
			log.Fatalf("saving plan %q: %v", plan.Label, err)
		}
		log.Printf("generated %s: %d days, %.0f kcal/day avg", plan.Label, len(plan.Days), plan.Summary.Calories)
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return defaultValue
		}
		n = n*10 + int(r-'0')
	}
	return n
}
