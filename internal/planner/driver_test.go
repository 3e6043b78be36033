package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplanner/core/internal/milp"
	"github.com/mealplanner/core/internal/model"
	"github.com/mealplanner/core/internal/planner"
)

// alwaysInfeasibleProblem satisfies milp.Problem but never reports a
// feasible solve, regardless of what is added to it.
type alwaysInfeasibleProblem struct{}

func (alwaysInfeasibleProblem) AddBinaryVar(string) milp.VarID                            { return 0 }
func (alwaysInfeasibleProblem) AddContinuousVar(string) milp.VarID                        { return 0 }
func (alwaysInfeasibleProblem) AddLinearConstraint(string, map[milp.VarID]float64, milp.Sense, float64) {
}
func (alwaysInfeasibleProblem) SetObjective(map[milp.VarID]float64) {}
func (alwaysInfeasibleProblem) Solve(time.Duration) milp.Status     { return milp.StatusInfeasible }
func (alwaysInfeasibleProblem) VarValue(milp.VarID) float64         { return 0 }
func (alwaysInfeasibleProblem) Status() milp.Status                 { return milp.StatusInfeasible }

// flakyBackend delegates to a real backend except on designated 1-based
// CreateProblem call indices, where it hands back a problem that can
// never solve — simulating a solve attempt that stays infeasible across
// every tier for one particular plan index.
type flakyBackend struct {
	inner  milp.Backend
	calls  int
	failOn map[int]bool
}

func (b *flakyBackend) CreateProblem() milp.Problem {
	b.calls++
	if b.failOn[b.calls] {
		return alwaysInfeasibleProblem{}
	}
	return b.inner.CreateProblem()
}

func recipe(id string, cat model.RecipeCategory, cal, prot, fat, carb float64) model.Recipe {
	return model.Recipe{
		ID:             id,
		Name:           id,
		Category:       cat,
		Macros:         model.Macros{Calories: cal, Protein: prot, Fat: fat, Carbs: carb},
		FrequencyLimit: 3,
		Servings:       1,
	}
}

func s1Recipes() []model.Recipe {
	return []model.Recipe{
		recipe("b1", model.CategoryBreakfast, 300, 20, 10, 30),
		recipe("b2", model.CategoryBreakfast, 400, 25, 15, 40),
		recipe("b3", model.CategoryBreakfast, 350, 22, 12, 35),
		recipe("l1", model.CategoryLunch, 500, 30, 15, 45),
		recipe("l2", model.CategoryLunch, 520, 32, 16, 47),
		recipe("l3", model.CategoryLunch, 480, 28, 14, 42),
		recipe("d1", model.CategoryDinner, 600, 40, 20, 55),
		recipe("d2", model.CategoryDinner, 620, 42, 21, 57),
		recipe("d3", model.CategoryDinner, 580, 38, 19, 52),
	}
}

func s1Prefs(numDays int) model.Preferences {
	return model.Preferences{
		Targets: model.MacroTargets{
			Calories: model.MacroTarget{Enabled: true, Value: 1500},
			Protein:  model.MacroTarget{Enabled: true, Value: 80},
		},
		NumDays:       numDays,
		SelectedSlots: []model.MealSlot{model.SlotBreakfast, model.SlotLunch, model.SlotDinner},
		PriorityOrder: model.DefaultPriorityOrder,
	}
}

// A modest recipe library with a calorie/protein target should produce a
// full plan whose daily totals land inside the macro tolerance window.
func TestGeneratePlans_S1(t *testing.T) {
	backend := milp.NewLocalSearchBackend()
	plans, err := planner.GeneratePlans(backend, s1Recipes(), s1Prefs(2), 3)
	require.NoError(t, err)
	require.NotEmpty(t, plans, "expected at least one plan")

	freqUsed := make(map[string]int)
	for _, plan := range plans {
		for _, day := range plan.Days {
			assert.GreaterOrEqual(t, day.Totals.Calories, 1300.0)
			assert.LessOrEqual(t, day.Totals.Calories, 1700.0)
		}
		for _, id := range plan.RecipeIDs() {
			freqUsed[id] += plan.CountUses(id)
		}
	}
	for id, n := range freqUsed {
		assert.LessOrEqual(t, n, 3, "recipe %s exceeded its frequency limit across plans", id)
	}
}

// Every active slot gets exactly one assignment per day, with no
// duplicate slots within a day.
func TestGeneratePlans_OneAssignmentPerSlotPerDay(t *testing.T) {
	backend := milp.NewLocalSearchBackend()
	plans, err := planner.GeneratePlans(backend, s1Recipes(), s1Prefs(3), 1)
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	active := s1Prefs(3).ActiveSlots()
	for _, plan := range plans {
		for _, day := range plan.Days {
			seen := make(map[model.MealSlot]bool)
			for _, a := range day.Assignments {
				assert.False(t, seen[a.Slot], "duplicate slot %s within a day", a.Slot)
				seen[a.Slot] = true
			}
			for _, s := range active {
				assert.True(t, seen[s], "missing slot %s", s)
			}
		}
	}
}

// Within a block, the recipe at each slot is identical across days.
func TestGeneratePlans_BlockConsistency(t *testing.T) {
	recipes := s1Recipes()
	// Give every recipe a frequency limit of 2, so with numDays=4 the block
	// size is min(2,4)=2: two blocks of two days each.
	for i := range recipes {
		recipes[i].FrequencyLimit = 2
	}
	prefs := s1Prefs(4)

	backend := milp.NewLocalSearchBackend()
	plans, err := planner.GeneratePlans(backend, recipes, prefs, 1)
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	plan := plans[0]
	require.Len(t, plan.Days, 4)
	for _, slot := range prefs.ActiveSlots() {
		d0, _ := plan.Days[0].RecipeAt(slot)
		d1, _ := plan.Days[1].RecipeAt(slot)
		assert.Equal(t, d0, d1, "slot %s should match within block 1", slot)

		d2, _ := plan.Days[2].RecipeAt(slot)
		d3, _ := plan.Days[3].RecipeAt(slot)
		assert.Equal(t, d2, d3, "slot %s should match within block 2", slot)
	}
}

// Plan labels are sequential ("Plan 1", "Plan 2", ...).
func TestGeneratePlans_LabelsAreSequential(t *testing.T) {
	backend := milp.NewLocalSearchBackend()
	plans, err := planner.GeneratePlans(backend, s1Recipes(), s1Prefs(2), 3)
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	for i, plan := range plans {
		assert.Equal(t, "Plan "+string(rune('1'+i)), plan.Label)
	}
}

// Empty-category failure: an active slot with zero compatible recipes
// returns EmptyCategory rather than calling the solver.
func TestGeneratePlans_EmptyCategoryFailsClearly(t *testing.T) {
	recipes := []model.Recipe{
		recipe("b1", model.CategoryBreakfast, 300, 20, 10, 30),
		recipe("l1", model.CategoryLunch, 500, 30, 15, 45),
		// no dinner recipes at all
	}
	prefs := s1Prefs(2)
	backend := milp.NewLocalSearchBackend()
	_, err := planner.GeneratePlans(backend, recipes, prefs, 1)
	assert.Error(t, err)
}

// CombineLunchDinner means no recipe appears in both a lunch slot and
// a dinner slot of the same plan.
func TestGeneratePlans_CombineLunchDinnerExclusive(t *testing.T) {
	recipes := []model.Recipe{
		recipe("b1", model.CategoryBreakfast, 300, 20, 10, 30),
		recipe("ld1", model.CategoryLunch, 500, 30, 15, 45),
		recipe("ld2", model.CategoryDinner, 520, 32, 16, 47),
		recipe("ld3", model.CategoryLunch, 600, 35, 18, 50),
	}
	prefs := s1Prefs(3)
	prefs.CombineLunchDinner = true

	backend := milp.NewLocalSearchBackend()
	plans, err := planner.GeneratePlans(backend, recipes, prefs, 1)
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	plan := plans[0]
	for _, day := range plan.Days {
		lunchID, _ := day.RecipeAt(model.SlotLunch)
		dinnerID, _ := day.RecipeAt(model.SlotDinner)
		assert.NotEqual(t, lunchID, dinnerID)
	}
	// no recipe id appears across both a lunch slot and a dinner slot in
	// the whole plan
	lunchIDs := make(map[string]bool)
	dinnerIDs := make(map[string]bool)
	for _, day := range plan.Days {
		if id, ok := day.RecipeAt(model.SlotLunch); ok {
			lunchIDs[id] = true
		}
		if id, ok := day.RecipeAt(model.SlotDinner); ok {
			dinnerIDs[id] = true
		}
	}
	for id := range lunchIDs {
		assert.False(t, dinnerIDs[id], "recipe %s used in both lunch and dinner", id)
	}
}

// An infeasible plan index is skipped, not fatal: the batch keeps going
// and returns the plans that did succeed, sequentially labeled with no
// gap for the skipped index.
func TestGeneratePlans_SkipsInfeasiblePlanAndContinues(t *testing.T) {
	prefs := s1Prefs(2)
	backend := &flakyBackend{
		inner: milp.NewLocalSearchBackend(),
		// Plan 0 resolves on its first (and only needed) attempt. Plan 1's
		// every tier attempt (calls 2 and 3, since PreferSimilarIngredients
		// is off) is forced infeasible. Plan 2 then resolves normally.
		failOn: map[int]bool{2: true, 3: true},
	}

	plans, err := planner.GeneratePlans(backend, s1Recipes(), prefs, 3)
	require.NoError(t, err)
	require.Len(t, plans, 2, "the infeasible middle plan should be skipped, not fatal")
	assert.Equal(t, "Plan 1", plans[0].Label)
	assert.Equal(t, "Plan 2", plans[1].Label)
}
