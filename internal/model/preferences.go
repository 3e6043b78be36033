package model

// MacroName identifies one of the five tracked macros, used as the key
// for MacroTargets, priority ordering, and per-macro solver constants.
type MacroName string

const (
	MacroCalories MacroName = "calories"
	MacroProtein  MacroName = "protein"
	MacroFat      MacroName = "fat"
	MacroCarbs    MacroName = "carbs"
	MacroFiber    MacroName = "fiber"
)

// DefaultPriorityOrder is the priority order used when Preferences does
// not specify one: calories first, fiber last.
var DefaultPriorityOrder = []MacroName{MacroCalories, MacroProtein, MacroFat, MacroCarbs, MacroFiber}

// MacroTarget is a single {enabled, value} pair.
type MacroTarget struct {
	Enabled bool
	Value   float64
}

// MacroTargets holds one target per tracked macro.
type MacroTargets struct {
	Calories MacroTarget
	Protein  MacroTarget
	Fat      MacroTarget
	Carbs    MacroTarget
	Fiber    MacroTarget
}

// Get returns the target for the named macro.
func (t MacroTargets) Get(name MacroName) MacroTarget {
	switch name {
	case MacroCalories:
		return t.Calories
	case MacroProtein:
		return t.Protein
	case MacroFat:
		return t.Fat
	case MacroCarbs:
		return t.Carbs
	case MacroFiber:
		return t.Fiber
	default:
		return MacroTarget{}
	}
}

// DefaultMacroTargets mirrors the teacher's pattern of a seeded default
// singleton row: a moderate-calorie, higher-protein target with fat and
// carbs enabled at conservative values and fiber disabled.
func DefaultMacroTargets() MacroTargets {
	return MacroTargets{
		Calories: MacroTarget{Enabled: true, Value: 2000},
		Protein:  MacroTarget{Enabled: true, Value: 100},
		Fat:      MacroTarget{Enabled: true, Value: 65},
		Carbs:    MacroTarget{Enabled: true, Value: 225},
		Fiber:    MacroTarget{Enabled: false, Value: 30},
	}
}

// Preferences is the singleton plan-generation configuration.
type Preferences struct {
	Targets MacroTargets

	DefaultFrequency        int
	NumDays                 int // 1-7
	IncludeSnacks           bool
	CombineLunchDinner      bool
	PreferSimilarIngredients bool
	SelectedSlots           []MealSlot
	PriorityOrder           []MacroName // permutation of the five macro names
}

// DefaultPreferences mirrors the teacher's seeded preferences row (id=1).
func DefaultPreferences() Preferences {
	return Preferences{
		Targets:                  DefaultMacroTargets(),
		DefaultFrequency:         DefaultFrequencyLimit,
		NumDays:                  7,
		IncludeSnacks:            false,
		CombineLunchDinner:       false,
		PreferSimilarIngredients: false,
		SelectedSlots:            []MealSlot{SlotBreakfast, SlotLunch, SlotDinner},
		PriorityOrder:            append([]MacroName(nil), DefaultPriorityOrder...),
	}
}

// ClampedNumDays returns NumDays clamped to [1,7] per spec.md §4.2.
func (p Preferences) ClampedNumDays() int {
	n := p.NumDays
	if n < 1 {
		n = 1
	}
	if n > 7 {
		n = 7
	}
	return n
}

// Rank returns the 1-based priority rank of a macro, defaulting to last
// place if the macro is missing from PriorityOrder (should not happen for
// a well-formed Preferences, but keeps the solver builder total).
func (p Preferences) Rank(name MacroName) int {
	order := p.PriorityOrder
	if len(order) == 0 {
		order = DefaultPriorityOrder
	}
	for i, m := range order {
		if m == name {
			return i + 1
		}
	}
	return len(order) + 1
}

// ActiveSlots computes the active slot set per spec.md §4.2: SelectedSlots
// intersected with the valid set, defaulting to {breakfast,lunch,dinner},
// plus "snack" when IncludeSnacks is set.
func (p Preferences) ActiveSlots() []MealSlot {
	selected := p.SelectedSlots
	if len(selected) == 0 {
		selected = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}
	}
	valid := make(map[MealSlot]bool, len(AllSlots))
	for _, s := range AllSlots {
		valid[s] = true
	}
	seen := make(map[MealSlot]bool, len(selected))
	var active []MealSlot
	for _, s := range selected {
		if valid[s] && !seen[s] {
			seen[s] = true
			active = append(active, s)
		}
	}
	if p.IncludeSnacks && !seen[SlotSnack] {
		active = append(active, SlotSnack)
	}
	return active
}
