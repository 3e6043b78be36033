package reroll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplanner/core/internal/model"
)

func macros(cal, prot, fat, carb float64) model.Macros {
	return model.Macros{Calories: cal, Protein: prot, Fat: fat, Carbs: carb}
}

func dinnerRecipe(id string, m model.Macros) model.Recipe {
	return model.Recipe{ID: id, Name: id, Category: model.CategoryDinner, Macros: m}
}

func twoDayDinnerBlockPlan(recipeID string) model.MealPlan {
	day := model.DayPlan{}.WithAssignment(model.SlotDinner, recipeID)
	return model.MealPlan{Days: []model.DayPlan{day, day}}
}

// Rerolling a block-consistent plan updates the recipe at every day in
// the block, not just the day the caller named.
func TestReroll_PreservesBlockConsistency(t *testing.T) {
	recipes := map[string]model.Recipe{
		"d1": dinnerRecipe("d1", macros(600, 40, 20, 55)),
		"d2": dinnerRecipe("d2", macros(650, 45, 25, 60)), // within tolerance of d1
	}
	plan := twoDayDinnerBlockPlan("d1")

	out, err := Reroll(Input{
		Plan:    plan,
		Day:     0,
		Slot:    model.SlotDinner,
		Recipes: recipes,
		Rand:    rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	d0, _ := out.Days[0].RecipeAt(model.SlotDinner)
	d1, _ := out.Days[1].RecipeAt(model.SlotDinner)
	assert.Equal(t, "d2", d0)
	assert.Equal(t, "d2", d1)
}

// When a candidate falls within the tolerance window, it is chosen over any
// candidate that requires a closest-match computation, regardless of which
// is numerically closer.
func TestReroll_PrefersWithinToleranceOverCloserOutOfWindow(t *testing.T) {
	recipes := map[string]model.Recipe{
		"cur":    dinnerRecipe("cur", macros(600, 40, 20, 55)),
		"inwin":  dinnerRecipe("inwin", macros(690, 48, 28, 64)), // just inside every tolerance bound
		"closer": dinnerRecipe("closer", macros(600, 40, 20, 65)),
	}
	// push "closer" out of the window on one macro so only "inwin" qualifies
	recipes["closer"] = dinnerRecipe("closer", macros(600, 40, 31, 55))

	plan := twoDayDinnerBlockPlan("cur")
	out, err := Reroll(Input{
		Plan:    plan,
		Day:     0,
		Slot:    model.SlotDinner,
		Recipes: recipes,
		Rand:    rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	chosen, _ := out.Days[0].RecipeAt(model.SlotDinner)
	assert.Equal(t, "inwin", chosen)
}

// When nothing falls inside the tolerance window, the candidate minimizing
// the deviation score is chosen.
func TestReroll_FallsBackToClosestMatch(t *testing.T) {
	recipes := map[string]model.Recipe{
		"cur": dinnerRecipe("cur", macros(600, 40, 20, 55)),
		"far": dinnerRecipe("far", macros(900, 80, 50, 100)),
		"mid": dinnerRecipe("mid", macros(750, 60, 35, 77)),
	}
	plan := twoDayDinnerBlockPlan("cur")
	out, err := Reroll(Input{
		Plan:    plan,
		Day:     0,
		Slot:    model.SlotDinner,
		Recipes: recipes,
	})
	require.NoError(t, err)
	chosen, _ := out.Days[0].RecipeAt(model.SlotDinner)
	assert.Equal(t, "mid", chosen, "mid has the smaller relative deviation from cur")
}

func TestReroll_NoCandidateErrorsWhenPoolEmpty(t *testing.T) {
	recipes := map[string]model.Recipe{
		"cur": dinnerRecipe("cur", macros(600, 40, 20, 55)),
	}
	plan := twoDayDinnerBlockPlan("cur")
	_, err := Reroll(Input{
		Plan:    plan,
		Day:     0,
		Slot:    model.SlotDinner,
		Recipes: recipes,
	})
	assert.Error(t, err)
}

func TestReroll_NoCandidateErrorsWhenAllOthersAlreadyUsed(t *testing.T) {
	recipes := map[string]model.Recipe{
		"cur":  dinnerRecipe("cur", macros(600, 40, 20, 55)),
		"used": dinnerRecipe("used", macros(610, 41, 21, 56)),
	}
	day0 := model.DayPlan{}.WithAssignment(model.SlotDinner, "cur")
	day1 := model.DayPlan{}.WithAssignment(model.SlotDinner, "used")
	plan := model.MealPlan{Days: []model.DayPlan{day0, day1}}

	_, err := Reroll(Input{
		Plan:    plan,
		Day:     0,
		Slot:    model.SlotDinner,
		Recipes: recipes,
	})
	assert.Error(t, err)
}

func TestReroll_InvalidDayIndexErrors(t *testing.T) {
	plan := twoDayDinnerBlockPlan("cur")
	_, err := Reroll(Input{Plan: plan, Day: 5, Slot: model.SlotDinner, Recipes: map[string]model.Recipe{}})
	assert.Error(t, err)
}

func TestDeviationScore_PenalizesRelativeNotAbsoluteChange(t *testing.T) {
	old := macros(100, 10, 10, 10)
	small := macros(110, 10, 10, 10) // +10% on calories only
	large := macros(100, 20, 10, 10) // +100% on protein only
	assert.Less(t, deviationScore(old, small), deviationScore(old, large))
}
