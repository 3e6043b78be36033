package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampedNumDays(t *testing.T) {
	assert.Equal(t, 1, Preferences{NumDays: 0}.ClampedNumDays())
	assert.Equal(t, 1, Preferences{NumDays: -3}.ClampedNumDays())
	assert.Equal(t, 7, Preferences{NumDays: 10}.ClampedNumDays())
	assert.Equal(t, 5, Preferences{NumDays: 5}.ClampedNumDays())
}

func TestRank_DefaultsToLastWhenMissing(t *testing.T) {
	p := Preferences{PriorityOrder: []MacroName{MacroProtein, MacroCalories}}
	assert.Equal(t, 1, p.Rank(MacroProtein))
	assert.Equal(t, 2, p.Rank(MacroCalories))
	assert.Equal(t, 3, p.Rank(MacroFat))
}

func TestRank_FallsBackToDefaultOrderWhenUnset(t *testing.T) {
	p := Preferences{}
	assert.Equal(t, 1, p.Rank(MacroCalories))
	assert.Equal(t, 5, p.Rank(MacroFiber))
}

func TestActiveSlots_DefaultsAndSnacks(t *testing.T) {
	p := Preferences{}
	assert.Equal(t, []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}, p.ActiveSlots())

	p.IncludeSnacks = true
	assert.Equal(t, []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}, p.ActiveSlots())
}

func TestActiveSlots_RespectsSelectionAndDedups(t *testing.T) {
	p := Preferences{SelectedSlots: []MealSlot{SlotDinner, SlotDinner, SlotBreakfast}}
	assert.Equal(t, []MealSlot{SlotDinner, SlotBreakfast}, p.ActiveSlots())
}

func TestDefaultPreferences_HasSevenDaysAndDefaultOrder(t *testing.T) {
	p := DefaultPreferences()
	assert.Equal(t, 7, p.NumDays)
	assert.Equal(t, DefaultPriorityOrder, p.PriorityOrder)
	assert.True(t, p.Targets.Calories.Enabled)
	assert.False(t, p.Targets.Fiber.Enabled)
}
