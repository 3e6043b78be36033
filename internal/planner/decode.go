package planner

import (
	"github.com/mealplanner/core/internal/milp"
	"github.com/mealplanner/core/internal/model"
)

// Decode turns a solved variable assignment back into a MealPlan, using the
// BuildMeta produced alongside the ProblemSpec. Every day within a block
// gets an identical set of assignments, since Build only ever declares one
// x variable per (block, slot, recipe) (constraint 3 holds by construction).
func Decode(label string, values map[milp.VarID]float64, meta *BuildMeta, recipes map[string]model.Recipe) model.MealPlan {
	dayBlock := make([]int, meta.NumDays)
	for bi, b := range meta.Blocks {
		for _, d := range b.days {
			dayBlock[d] = bi
		}
	}

	blockChoice := make(map[int]map[model.MealSlot]string) // block -> slot -> recipe id
	for key, id := range meta.XVars {
		if values[id] < 0.5 {
			continue
		}
		if blockChoice[key.Block] == nil {
			blockChoice[key.Block] = make(map[model.MealSlot]string)
		}
		blockChoice[key.Block][key.Slot] = key.Recipe
	}

	days := make([]model.DayPlan, meta.NumDays)
	for d := 0; d < meta.NumDays; d++ {
		var day model.DayPlan
		choice := blockChoice[dayBlock[d]]
		for _, slot := range meta.ActiveSlots {
			if rid, ok := choice[slot]; ok {
				day = day.WithAssignment(slot, rid)
			}
		}
		days[d] = day.RecomputeTotals(recipes)
	}

	plan := model.MealPlan{Label: label, Days: days}
	plan.Summary = model.ComputeMacroSummary(days, recipes)
	return plan
}
