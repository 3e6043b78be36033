package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplanner/core/internal/model"
)

func TestMacrosColumn_RoundTrips(t *testing.T) {
	in := macrosColumn{Calories: 500, Protein: 30, Fat: 15, Carbs: 40, Fiber: 5}
	raw, err := in.Value()
	require.NoError(t, err)

	var out macrosColumn
	require.NoError(t, out.Scan(raw.([]byte)))
	assert.Equal(t, in, out)
}

func TestMacrosColumn_ScanNilResetsToZero(t *testing.T) {
	out := macrosColumn{Calories: 100}
	require.NoError(t, out.Scan(nil))
	assert.Equal(t, macrosColumn{}, out)
}

func TestMacrosColumn_ScanRejectsNonBytes(t *testing.T) {
	var out macrosColumn
	assert.Error(t, out.Scan("not bytes"))
}

func TestStringSliceColumn_EmptyValueIsNil(t *testing.T) {
	var s stringSliceColumn
	v, err := s.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStringSliceColumn_RoundTrips(t *testing.T) {
	in := stringSliceColumn{"1 cup flour", "2 eggs"}
	raw, err := in.Value()
	require.NoError(t, err)

	var out stringSliceColumn
	require.NoError(t, out.Scan(raw.([]byte)))
	assert.Equal(t, in, out)
}

func TestDaysColumn_RoundTrips(t *testing.T) {
	in := daysColumn{
		{Label: "Mon", Totals: model.Macros{Calories: 1500}},
	}
	raw, err := in.Value()
	require.NoError(t, err)

	var out daysColumn
	require.NoError(t, out.Scan(raw.([]byte)))
	assert.Equal(t, in, out)
}

func TestShoppingItemsColumn_RoundTrips(t *testing.T) {
	in := shoppingItemsColumn{{Name: "garlic", Quantity: 2, Unit: "clove"}}
	raw, err := in.Value()
	require.NoError(t, err)

	var out shoppingItemsColumn
	require.NoError(t, out.Scan(raw.([]byte)))
	assert.Equal(t, in, out)
}

func TestMacroNameSliceColumn_RoundTrips(t *testing.T) {
	in := macroNameSliceColumn{model.MacroCalories, model.MacroProtein}
	raw, err := in.Value()
	require.NoError(t, err)

	var out macroNameSliceColumn
	require.NoError(t, out.Scan(raw.([]byte)))
	assert.Equal(t, in, out)
}

func TestSlotSliceColumn_RoundTrips(t *testing.T) {
	in := slotSliceColumn{model.SlotBreakfast, model.SlotDinner}
	raw, err := in.Value()
	require.NoError(t, err)

	var out slotSliceColumn
	require.NoError(t, out.Scan(raw.([]byte)))
	assert.Equal(t, in, out)
}
