// Package storage is the GORM+Postgres persistence adapter (spec.md §6),
// grounded on the teacher's internal/services/orm repository style: one
// gorm.DB handle, one repository per entity family, ormerrors-pattern
// typed errors, and JSON columns for the nested shapes GORM can't map to
// plain SQL types directly (the teacher's RecipeSteps Scan/Value pattern).
package storage

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/mealplanner/core/internal/model"
)

// macrosColumn stores a model.Macros as a jsonb column.
type macrosColumn model.Macros

func (m *macrosColumn) Scan(value interface{}) error {
	if value == nil {
		*m = macrosColumn{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into macrosColumn")
	}
	return json.Unmarshal(b, m)
}

func (m macrosColumn) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// macrosTargetColumn stores one model.MacroTarget (enabled+value pair) as
// jsonb; Preferences has five of these, one per tracked macro.
type macrosTargetColumn model.MacroTarget

func (m *macrosTargetColumn) Scan(value interface{}) error {
	if value == nil {
		*m = macrosTargetColumn{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into macrosTargetColumn")
	}
	return json.Unmarshal(b, m)
}

func (m macrosTargetColumn) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// stringSliceColumn stores []string (e.g. Recipe.Ingredients) as jsonb.
type stringSliceColumn []string

func (s *stringSliceColumn) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into stringSliceColumn")
	}
	return json.Unmarshal(b, s)
}

func (s stringSliceColumn) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal([]string(s))
}

// daysColumn stores []model.DayPlan (a MealPlan's full week) as jsonb.
type daysColumn []model.DayPlan

func (d *daysColumn) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into daysColumn")
	}
	return json.Unmarshal(b, d)
}

func (d daysColumn) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return json.Marshal([]model.DayPlan(d))
}

// macroSummaryColumn stores a model.MacroSummary as jsonb.
type macroSummaryColumn model.MacroSummary

func (m *macroSummaryColumn) Scan(value interface{}) error {
	if value == nil {
		*m = macroSummaryColumn{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into macroSummaryColumn")
	}
	return json.Unmarshal(b, m)
}

func (m macroSummaryColumn) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// shoppingItemsColumn stores []model.ShoppingItem as jsonb.
type shoppingItemsColumn []model.ShoppingItem

func (s *shoppingItemsColumn) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into shoppingItemsColumn")
	}
	return json.Unmarshal(b, s)
}

func (s shoppingItemsColumn) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal([]model.ShoppingItem(s))
}

// macroNameSliceColumn stores []model.MacroName (Preferences.PriorityOrder)
// as jsonb.
type macroNameSliceColumn []model.MacroName

func (s *macroNameSliceColumn) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into macroNameSliceColumn")
	}
	return json.Unmarshal(b, s)
}

func (s macroNameSliceColumn) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal([]model.MacroName(s))
}

// slotSliceColumn stores []model.MealSlot (Preferences.SelectedSlots) as jsonb.
type slotSliceColumn []model.MealSlot

func (s *slotSliceColumn) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("cannot scan non-[]byte into slotSliceColumn")
	}
	return json.Unmarshal(b, s)
}

func (s slotSliceColumn) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal([]model.MealSlot(s))
}
