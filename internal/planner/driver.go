package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/milp"
	"github.com/mealplanner/core/internal/model"
)

// GeneratePlans drives the tiered solver: it asks Build for a ProblemSpec
// at TierFull, then TierNoProteinCap, then TierSoftOnly, moving to the
// next tier only when a solve comes back infeasible or times out. Recipes
// used by an earlier plan in the same batch are penalized (not forbidden)
// in later plans via UsedRecipeIDs.
//
// Per spec.md §4.2 step 5 / §7, a plan index that stays infeasible across
// every tier is skipped, not fatal: the batch continues and returns
// whatever plans did succeed, possibly an empty list.
func GeneratePlans(backend milp.Backend, recipes []model.Recipe, prefs model.Preferences, numPlans int) ([]model.MealPlan, error) {
	if numPlans <= 0 {
		numPlans = DefaultNumPlans
	}
	if err := checkActiveSlotsCovered(recipes, prefs); err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	plans := make([]model.MealPlan, 0, numPlans)

	for i := 0; i < numPlans; i++ {
		plan, err := generateOne(backend, recipes, prefs, used, i)
		if err != nil {
			if errors.Is(err, coreerr.ErrInfeasibleModel) {
				continue
			}
			return nil, err
		}
		plan.Label = fmt.Sprintf("Plan %d", len(plans)+1)
		plans = append(plans, plan)
		for _, rid := range plan.RecipeIDs() {
			used[rid] = true
		}
	}
	return plans, nil
}

func generateOne(backend milp.Backend, recipes []model.Recipe, prefs model.Preferences, used map[string]bool, planIndex int) (model.MealPlan, error) {
	recipeByID := make(map[string]model.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID] = r
	}

	// Tier 2 only exists to drop the protein-variety cap (constraint 8),
	// so it is a no-op retry when that cap was never added in the first
	// place (spec.md §4.2 steps 3-4: Tier 2 is conditioned on
	// preferSimilarIngredients).
	tiers := []Tier{TierFull}
	if prefs.PreferSimilarIngredients {
		tiers = append(tiers, TierNoProteinCap)
	}
	tiers = append(tiers, TierSoftOnly)
	for _, tier := range tiers {
		spec, meta := Build(BuildInput{
			Recipes:       recipes,
			Prefs:         prefs,
			UsedRecipeIDs: used,
			Tier:          tier,
		})
		status, values := milp.Materialize(backend, spec, SolveTimeLimitSeconds*time.Second)
		if status != milp.StatusOptimal {
			continue
		}
		return Decode("", values, meta, recipeByID), nil
	}
	return model.MealPlan{}, coreerr.InfeasibleModel(planIndex)
}

// checkActiveSlotsCovered fails clearly when an active slot has no
// compatible recipe at all, rather than letting the solver churn on a
// model that can never satisfy its exactly-one constraint for that slot.
func checkActiveSlotsCovered(recipes []model.Recipe, prefs model.Preferences) error {
	byCategory := make(map[model.RecipeCategory]int)
	for _, r := range recipes {
		byCategory[r.Category]++
	}
	for _, slot := range prefs.ActiveSlots() {
		count := byCategory[model.RecipeCategory(slot)]
		if prefs.CombineLunchDinner {
			switch slot {
			case model.SlotLunch:
				count += byCategory[model.CategoryDinner]
			case model.SlotDinner:
				count += byCategory[model.CategoryLunch]
			}
		}
		if count == 0 {
			return coreerr.EmptyCategory(string(slot))
		}
	}
	return nil
}
