// Package reroll implements single-meal replacement (spec.md §4.5): swap
// the recipe at one (day, slot) cell for a different one with a similar
// macro profile, without disturbing the rest of the plan.
package reroll

import (
	"math/rand"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

// tolerance is the macro window within which a reroll candidate is
// considered "similar enough" to pick at random rather than by closest
// match (spec.md §4.5).
var tolerance = model.Macros{Calories: 100, Protein: 10, Fat: 10, Carbs: 10}

// Input bundles everything one reroll call needs.
type Input struct {
	Plan    model.MealPlan
	Day     int
	Slot    model.MealSlot
	Recipes map[string]model.Recipe
	Rand    *rand.Rand // injectable for deterministic tests; a fresh one is used if nil
}

// Reroll replaces the recipe at (Day, Slot) with a different compatible
// one, applying the change at every (day, slot) cell in the plan that
// currently holds the same recipe at the same slot — preserving the block
// consistency invariant a generated plan started with (spec.md §3 P3).
func Reroll(in Input) (model.MealPlan, error) {
	if in.Day < 0 || in.Day >= len(in.Plan.Days) {
		return model.MealPlan{}, coreerr.NoRerollCandidate(string(in.Slot))
	}
	currentID, ok := in.Plan.Days[in.Day].RecipeAt(in.Slot)
	if !ok {
		return model.MealPlan{}, coreerr.NoRerollCandidate(string(in.Slot))
	}
	current, ok := in.Recipes[currentID]
	if !ok {
		return model.MealPlan{}, coreerr.NoRerollCandidate(string(in.Slot))
	}

	used := make(map[string]bool)
	for _, id := range in.Plan.RecipeIDs() {
		used[id] = true
	}

	category := model.RecipeCategory(in.Slot)
	var pool []model.Recipe
	for _, r := range in.Recipes {
		if r.Category != category || r.ID == currentID || used[r.ID] {
			continue
		}
		pool = append(pool, r)
	}
	if len(pool) == 0 {
		return model.MealPlan{}, coreerr.NoRerollCandidate(string(in.Slot))
	}

	var withinTolerance []model.Recipe
	for _, r := range pool {
		if withinWindow(current.Macros, r.Macros) {
			withinTolerance = append(withinTolerance, r)
		}
	}

	var chosen model.Recipe
	if len(withinTolerance) > 0 {
		sortRecipesByID(withinTolerance)
		rng := in.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		chosen = withinTolerance[rng.Intn(len(withinTolerance))]
	} else {
		sortRecipesByID(pool)
		chosen = closestMatch(current.Macros, pool)
	}

	plan := replaceEverywhere(in.Plan, in.Slot, currentID, chosen.ID)
	plan = recomputePlan(plan, in.Recipes)
	return plan, nil
}

func withinWindow(a, b model.Macros) bool {
	return absf(a.Calories-b.Calories) <= tolerance.Calories &&
		absf(a.Protein-b.Protein) <= tolerance.Protein &&
		absf(a.Fat-b.Fat) <= tolerance.Fat &&
		absf(a.Carbs-b.Carbs) <= tolerance.Carbs
}

// closestMatch picks the candidate minimizing Σ((new-old)/max(old,1))²
// over {calories, protein, fat, carbs} (spec.md §4.5 step 5), used only
// when nothing falls inside the tolerance window.
func closestMatch(current model.Macros, pool []model.Recipe) model.Recipe {
	best := pool[0]
	bestScore := deviationScore(current, best.Macros)
	for _, r := range pool[1:] {
		score := deviationScore(current, r.Macros)
		if score < bestScore {
			best, bestScore = r, score
		}
	}
	return best
}

func deviationScore(old, new_ model.Macros) float64 {
	sq := func(oldVal, newVal float64) float64 {
		denom := oldVal
		if denom < 1 {
			denom = 1
		}
		d := (newVal - oldVal) / denom
		return d * d
	}
	return sq(old.Calories, new_.Calories) +
		sq(old.Protein, new_.Protein) +
		sq(old.Fat, new_.Fat) +
		sq(old.Carbs, new_.Carbs)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func sortRecipesByID(rs []model.Recipe) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j].ID < rs[j-1].ID; j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

func replaceEverywhere(plan model.MealPlan, slot model.MealSlot, from, to string) model.MealPlan {
	days := make([]model.DayPlan, len(plan.Days))
	for i, d := range plan.Days {
		if rid, ok := d.RecipeAt(slot); ok && rid == from {
			d = d.WithAssignment(slot, to)
		}
		days[i] = d
	}
	plan.Days = days
	return plan
}

func recomputePlan(plan model.MealPlan, recipes map[string]model.Recipe) model.MealPlan {
	days := make([]model.DayPlan, len(plan.Days))
	for i, d := range plan.Days {
		days[i] = d.RecomputeTotals(recipes)
	}
	plan.Days = days
	plan.Summary = model.ComputeMacroSummary(days, recipes)
	return plan
}
