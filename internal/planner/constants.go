// Package planner implements the LP problem builder (spec.md §4.1) and
// the tiered solver driver (spec.md §4.2): translating a recipe library,
// macro targets, and preferences into a milp.ProblemSpec, then driving the
// MILP backend at up to three progressively relaxed tiers to produce a
// small set of distinct weekly meal plans.
package planner

import "github.com/mealplanner/core/internal/model"

// Tunable solver constants. Per spec.md §6 these are part of the external
// contract: changing them changes observed plan quality and test
// expectations, so they are named constants rather than magic numbers
// scattered through the builder.
const (
	CapPenalty             = 1000.0
	ReusePenalty           = 30.0
	RatingWeight           = 8.0
	ProteinVarietyPenalty  = 500.0
	MaxProteinTypes        = 2
	DefaultNumPlans        = 3
	SolveTimeLimitSeconds  = 10
)

// baseMaxDev is the base allowed daily deviation per macro, before the
// priority-rank widening of spec.md §4.1 constraint 5.
var baseMaxDev = map[model.MacroName]float64{
	model.MacroCalories: 200,
	model.MacroProtein:  20,
	model.MacroFat:      20,
	model.MacroCarbs:    40,
	model.MacroFiber:    15,
}

// directionPrefersAtMost reports whether a macro's soft directional cap
// prefers staying at or below target (true) or at or above it (false).
func directionPrefersAtMost(m model.MacroName) bool {
	switch m {
	case model.MacroCalories, model.MacroFat, model.MacroCarbs:
		return true
	case model.MacroProtein, model.MacroFiber:
		return false
	default:
		return true
	}
}

// maxDevFor computes maxDev_m = base_m * (1 + 0.5*(rank_m-1)).
func maxDevFor(m model.MacroName, rank int) float64 {
	return baseMaxDev[m] * (1 + 0.5*float64(rank-1))
}

// objectiveWeight computes weight_m = max(1000 - 200*(rank_m-1), 200).
func objectiveWeight(rank int) float64 {
	w := 1000 - 200*float64(rank-1)
	if w < 200 {
		w = 200
	}
	return w
}

// macroValue extracts the named macro's value from a Macros struct.
func macroValue(m model.Macros, name model.MacroName) float64 {
	switch name {
	case model.MacroCalories:
		return m.Calories
	case model.MacroProtein:
		return m.Protein
	case model.MacroFat:
		return m.Fat
	case model.MacroCarbs:
		return m.Carbs
	case model.MacroFiber:
		return m.Fiber
	default:
		return 0
	}
}

// enabledMacros returns every macro name whose target is enabled, in the
// fixed canonical order (calories, protein, fat, carbs, fiber).
func enabledMacros(targets model.MacroTargets) []model.MacroName {
	var out []model.MacroName
	for _, name := range model.DefaultPriorityOrder {
		if targets.Get(name).Enabled {
			out = append(out, name)
		}
	}
	return out
}
