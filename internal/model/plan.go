package model

import "time"

// MealSlot is a position within a DayPlan. It shares its value space with
// RecipeCategory but is kept as a distinct type: a slot is a structural
// concept of the plan layout, a category is a property of a recipe.
type MealSlot string

const (
	SlotBreakfast MealSlot = MealSlot(CategoryBreakfast)
	SlotLunch     MealSlot = MealSlot(CategoryLunch)
	SlotDinner    MealSlot = MealSlot(CategoryDinner)
	SlotSnack     MealSlot = MealSlot(CategorySnack)
	SlotDessert   MealSlot = MealSlot(CategoryDessert)
)

// AllSlots lists every recognized slot, in a stable order.
var AllSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack, SlotDessert}

// MealAssignment pairs a slot with the recipe occupying it.
type MealAssignment struct {
	Slot     MealSlot
	RecipeID string
}

// DayPlan is one day's worth of assignments plus a cache of that day's
// macro totals (spec.md §3: "a cache of the sum over meals").
type DayPlan struct {
	Label       string
	Assignments []MealAssignment
	Totals      Macros // calories/protein/fat/carbs only; fiber is not cached daily per spec
}

// RecipeAt returns the recipe id assigned to slot s, and whether one exists.
func (d DayPlan) RecipeAt(s MealSlot) (string, bool) {
	for _, a := range d.Assignments {
		if a.Slot == s {
			return a.RecipeID, true
		}
	}
	return "", false
}

// WithAssignment returns a copy of d with the assignment at slot s replaced
// (or appended if absent). Totals are NOT recomputed here; callers recompute
// via RecomputeTotals once all recipes for the day are known.
func (d DayPlan) WithAssignment(slot MealSlot, recipeID string) DayPlan {
	out := DayPlan{Label: d.Label, Totals: d.Totals}
	out.Assignments = make([]MealAssignment, 0, len(d.Assignments)+1)
	replaced := false
	for _, a := range d.Assignments {
		if a.Slot == slot {
			out.Assignments = append(out.Assignments, MealAssignment{Slot: slot, RecipeID: recipeID})
			replaced = true
			continue
		}
		out.Assignments = append(out.Assignments, a)
	}
	if !replaced {
		out.Assignments = append(out.Assignments, MealAssignment{Slot: slot, RecipeID: recipeID})
	}
	return out
}

// RecomputeTotals recomputes the daily cache from the supplied recipe
// lookup (recipe id -> Recipe), scaled by nothing — a DayPlan's totals are
// a straight sum of one serving of each assigned recipe's macros.
func (d DayPlan) RecomputeTotals(recipes map[string]Recipe) DayPlan {
	var totals Macros
	for _, a := range d.Assignments {
		r, ok := recipes[a.RecipeID]
		if !ok {
			continue
		}
		totals.Calories += r.Macros.Calories
		totals.Protein += r.Macros.Protein
		totals.Fat += r.Macros.Fat
		totals.Carbs += r.Macros.Carbs
	}
	d.Totals = totals
	return d
}

// MacroSummary is a plan-level daily average, used both as the plan's
// target-at-insertion record and as the recomputed average after a reroll
// (spec.md §9 open question: implementers must not confuse the two roles,
// but the type itself is the same in both cases).
type MacroSummary struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Fiber    float64
}

// ComputeMacroSummary averages each DayPlan's cached totals over numDays.
// Fiber is summed fresh from the recipe lookup since DayPlan.Totals does
// not cache it.
func ComputeMacroSummary(days []DayPlan, recipes map[string]Recipe) MacroSummary {
	if len(days) == 0 {
		return MacroSummary{}
	}
	var sum MacroSummary
	for _, d := range days {
		sum.Calories += d.Totals.Calories
		sum.Protein += d.Totals.Protein
		sum.Fat += d.Totals.Fat
		sum.Carbs += d.Totals.Carbs
		for _, a := range d.Assignments {
			if r, ok := recipes[a.RecipeID]; ok {
				sum.Fiber += r.Macros.Fiber
			}
		}
	}
	n := float64(len(days))
	return MacroSummary{
		Calories: sum.Calories / n,
		Protein:  sum.Protein / n,
		Fat:      sum.Fat / n,
		Carbs:    sum.Carbs / n,
		Fiber:    sum.Fiber / n,
	}
}

// MealPlan is one full weekly (or N-day) plan produced by a single
// generate-plans call, or persisted once the user selects it.
type MealPlan struct {
	ID       string
	Label    string // "Plan 1", "Plan 2", ...
	Days     []DayPlan
	Summary  MacroSummary
	Selected bool

	CreatedAt time.Time
	UpdatedAt time.Time
	SyncedAt  *time.Time
}

// RecipeIDs returns every distinct recipe id used anywhere in the plan.
func (p MealPlan) RecipeIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, d := range p.Days {
		for _, a := range d.Assignments {
			if !seen[a.RecipeID] {
				seen[a.RecipeID] = true
				ids = append(ids, a.RecipeID)
			}
		}
	}
	return ids
}

// CountUses returns how many (day, slot) cells hold recipeID.
func (p MealPlan) CountUses(recipeID string) int {
	n := 0
	for _, d := range p.Days {
		for _, a := range d.Assignments {
			if a.RecipeID == recipeID {
				n++
			}
		}
	}
	return n
}
