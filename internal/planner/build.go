package planner

import (
	"fmt"
	"sort"

	"github.com/mealplanner/core/internal/milp"
	"github.com/mealplanner/core/internal/model"
	"github.com/mealplanner/core/internal/protein"
)

// Tier selects which of the three constraint relaxations the builder
// applies.
type Tier int

const (
	// TierFull applies every constraint: hard macro bounds and the
	// protein-variety cap.
	TierFull Tier = iota
	// TierNoProteinCap drops constraint 8's MaxProteinTypes cap.
	TierNoProteinCap
	// TierSoftOnly additionally drops constraint 5's hard macro bounds,
	// leaving only the soft deviation/cap penalties in the objective.
	TierSoftOnly
)

// BuildInput is everything the declarative builder needs to produce a
// ProblemSpec for one generate-plans call.
type BuildInput struct {
	Recipes       []model.Recipe
	Prefs         model.Preferences
	UsedRecipeIDs map[string]bool // recipes used in earlier plans this batch
	Tier          Tier
}

// block is a contiguous run of days sharing one assignment per slot
// (constraint 3 is satisfied by construction: there is exactly one x
// variable per (block, slot, recipe), not one per (day, slot, recipe)).
type block struct {
	days []int
}

// xKey identifies one decision variable among the collapsed (block, slot,
// recipe) choices.
type xKey struct {
	Block int
	Slot  model.MealSlot
	Recipe string
}

// BuildMeta records how a ProblemSpec's variables map back onto the
// planning domain, so the driver can decode a solved assignment into a
// MealPlan without re-parsing variable names.
type BuildMeta struct {
	Blocks      []block
	XVars       map[xKey]milp.VarID
	SlotChoice  map[string]milp.VarID // recipe id -> slot_choice var (dual-eligible recipes only)
	ActiveSlots []model.MealSlot
	NumDays     int
}

// Build constructs the declarative ProblemSpec for one tier. It is a pure
// function of its input: no I/O, no randomness, fully testable on its own.
func Build(in BuildInput) (*milp.ProblemSpec, *BuildMeta) {
	spec := milp.NewProblemSpec()
	prefs := in.Prefs
	numDays := prefs.ClampedNumDays()
	active := prefs.ActiveSlots()

	recipes := append([]model.Recipe(nil), in.Recipes...)
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })

	blockSize := numDays
	if len(recipes) > 0 && recipes[0].FrequencyLimit > 0 && recipes[0].FrequencyLimit < blockSize {
		blockSize = recipes[0].FrequencyLimit
	}
	if blockSize < 1 {
		blockSize = 1
	}
	blocks := partitionBlocks(numDays, blockSize)

	byCategory := make(map[model.RecipeCategory][]model.Recipe)
	for _, r := range recipes {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	dualEligible := make(map[string]model.Recipe)
	if prefs.CombineLunchDinner {
		for _, r := range byCategory[model.CategoryLunch] {
			dualEligible[r.ID] = r
		}
		for _, r := range byCategory[model.CategoryDinner] {
			dualEligible[r.ID] = r
		}
	}

	meta := &BuildMeta{
		Blocks:      blocks,
		XVars:       make(map[xKey]milp.VarID),
		SlotChoice:  make(map[string]milp.VarID),
		ActiveSlots: active,
		NumDays:     numDays,
	}

	eligibleFor := func(slot model.MealSlot) []model.Recipe {
		cat := model.RecipeCategory(slot)
		out := append([]model.Recipe(nil), byCategory[cat]...)
		if prefs.CombineLunchDinner {
			switch slot {
			case model.SlotLunch:
				out = append(out, byCategory[model.CategoryDinner]...)
			case model.SlotDinner:
				out = append(out, byCategory[model.CategoryLunch]...)
			}
		}
		return out
	}

	// Variables: one binary x per (block, slot, eligible recipe).
	for bi, b := range blocks {
		for _, slot := range active {
			for _, r := range eligibleFor(slot) {
				name := fmt.Sprintf("x|block=%d|slot=%s|recipe=%s", bi, slot, r.ID)
				id := spec.NewBinaryVar(name)
				meta.XVars[xKey{Block: bi, Slot: slot, Recipe: r.ID}] = id
			}
		}
		_ = b
	}

	// slot_choice vars for dual-eligible recipes (constraint 4).
	dualIDs := make([]string, 0, len(dualEligible))
	for id := range dualEligible {
		dualIDs = append(dualIDs, id)
	}
	sort.Strings(dualIDs)
	for _, rid := range dualIDs {
		name := fmt.Sprintf("slot_choice|recipe=%s", rid)
		meta.SlotChoice[rid] = spec.NewBinaryVar(name)
	}

	// Constraint 1: exactly one recipe per (block, slot).
	for bi := range blocks {
		for _, slot := range active {
			coeffs := make(map[milp.VarID]float64)
			for _, r := range eligibleFor(slot) {
				if id, ok := meta.XVars[xKey{Block: bi, Slot: slot, Recipe: r.ID}]; ok {
					coeffs[id] = 1
				}
			}
			if len(coeffs) == 0 {
				continue
			}
			spec.AddConstraint(fmt.Sprintf("exactly_one|block=%d|slot=%s", bi, slot), coeffs, milp.EQ, 1)
		}
	}

	// Constraint 2: frequency limit, weighted by block size (a collapsed
	// var represents len(block.days) actual day-slot cells).
	for _, r := range recipes {
		coeffs := make(map[milp.VarID]float64)
		for bi, b := range blocks {
			for _, slot := range active {
				if id, ok := meta.XVars[xKey{Block: bi, Slot: slot, Recipe: r.ID}]; ok {
					coeffs[id] += float64(len(b.days))
				}
			}
		}
		if len(coeffs) == 0 {
			continue
		}
		limit := r.FrequencyLimit
		if limit <= 0 {
			limit = model.DefaultFrequencyLimit
		}
		spec.AddConstraint(fmt.Sprintf("frequency|recipe=%s", r.ID), coeffs, milp.LE, float64(limit))
	}

	// Constraint 4: combined lunch/dinner consistency.
	if prefs.CombineLunchDinner {
		hasLunch, hasDinner := false, false
		for _, s := range active {
			if s == model.SlotLunch {
				hasLunch = true
			}
			if s == model.SlotDinner {
				hasDinner = true
			}
		}
		for _, rid := range dualIDs {
			sc := meta.SlotChoice[rid]
			for bi := range blocks {
				if hasLunch {
					if x, ok := meta.XVars[xKey{Block: bi, Slot: model.SlotLunch, Recipe: rid}]; ok {
						spec.AddConstraint(
							fmt.Sprintf("combined_lunch|recipe=%s|block=%d", rid, bi),
							map[milp.VarID]float64{x: 1, sc: -1}, milp.LE, 0)
					}
				}
				if hasDinner {
					if x, ok := meta.XVars[xKey{Block: bi, Slot: model.SlotDinner, Recipe: rid}]; ok {
						spec.AddConstraint(
							fmt.Sprintf("combined_dinner|recipe=%s|block=%d", rid, bi),
							map[milp.VarID]float64{x: 1, sc: 1}, milp.LE, 1)
					}
				}
			}
		}
	}

	recipeByID := make(map[string]model.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID] = r
	}
	dayBlock := make([]int, numDays)
	for bi, b := range blocks {
		for _, d := range b.days {
			dayBlock[d] = bi
		}
	}

	macros := enabledMacros(prefs.Targets)
	for _, m := range macros {
		rank := prefs.Rank(m)
		target := prefs.Targets.Get(m).Value
		maxDev := maxDevFor(m, rank)
		weight := objectiveWeight(rank)

		for d := 0; d < numDays; d++ {
			bi := dayBlock[d]
			termCoeffs := make(map[milp.VarID]float64)
			for _, slot := range active {
				for _, r := range eligibleFor(slot) {
					id, ok := meta.XVars[xKey{Block: bi, Slot: slot, Recipe: r.ID}]
					if !ok {
						continue
					}
					termCoeffs[id] += macroValue(r.Macros, m)
				}
			}

			// Constraint 5: hard daily bounds, dropped entirely at TierSoftOnly.
			if in.Tier != TierSoftOnly {
				lower := make(map[milp.VarID]float64, len(termCoeffs))
				upper := make(map[milp.VarID]float64, len(termCoeffs))
				for v, c := range termCoeffs {
					lower[v] = c
					upper[v] = c
				}
				spec.AddConstraint(fmt.Sprintf("macro_hard_lower|macro=%s|day=%d", m, d), lower, milp.GE, target-maxDev)
				spec.AddConstraint(fmt.Sprintf("macro_hard_upper|macro=%s|day=%d", m, d), upper, milp.LE, target+maxDev)
			}

			// Constraint 6: directional soft cap.
			capSlack := spec.NewContinuousVar(fmt.Sprintf("cap_slack|macro=%s|day=%d", m, d))
			capCoeffs := make(map[milp.VarID]float64, len(termCoeffs)+1)
			if directionPrefersAtMost(m) {
				for v, c := range termCoeffs {
					capCoeffs[v] = c
				}
				capCoeffs[capSlack] = -1
				spec.AddConstraint(fmt.Sprintf("cap_slack|macro=%s|day=%d", m, d), capCoeffs, milp.LE, target)
			} else {
				for v, c := range termCoeffs {
					capCoeffs[v] = -c
				}
				capCoeffs[capSlack] = -1
				spec.AddConstraint(fmt.Sprintf("cap_slack|macro=%s|day=%d", m, d), capCoeffs, milp.LE, -target)
			}
			spec.AddObjectiveTerm(capSlack, CapPenalty/target)

			// Constraint 7: deviation decomposition.
			devPlus := spec.NewContinuousVar(fmt.Sprintf("dev_plus|macro=%s|day=%d", m, d))
			devMinus := spec.NewContinuousVar(fmt.Sprintf("dev_minus|macro=%s|day=%d", m, d))
			devCoeffs := make(map[milp.VarID]float64, len(termCoeffs)+2)
			for v, c := range termCoeffs {
				devCoeffs[v] = c
			}
			devCoeffs[devPlus] = -1
			devCoeffs[devMinus] = 1
			spec.AddConstraint(fmt.Sprintf("deviation|macro=%s|day=%d", m, d), devCoeffs, milp.EQ, target)
			spec.AddObjectiveTerm(devPlus, weight/target)
			spec.AddObjectiveTerm(devMinus, weight/target)
		}
	}

	// Constraint 8: protein variety indicator + cap.
	if prefs.PreferSimilarIngredients {
		proteinVars := make(map[protein.Category]milp.VarID)
		proteinsOf := make(map[string][]protein.Category, len(recipes))
		for _, r := range recipes {
			cats := protein.Detect(r.Ingredients)
			proteinsOf[r.ID] = cats
			for _, c := range cats {
				if _, ok := proteinVars[c]; !ok {
					proteinVars[c] = spec.NewBinaryVar(fmt.Sprintf("use_prot|protein=%s", c))
				}
			}
		}
		for bi := range blocks {
			for _, slot := range active {
				for _, r := range eligibleFor(slot) {
					x, ok := meta.XVars[xKey{Block: bi, Slot: slot, Recipe: r.ID}]
					if !ok {
						continue
					}
					for _, c := range proteinsOf[r.ID] {
						up := proteinVars[c]
						spec.AddConstraint(
							fmt.Sprintf("protein_indicator|protein=%s|block=%d|slot=%s|recipe=%s", c, bi, slot, r.ID),
							map[milp.VarID]float64{x: 1, up: -1}, milp.LE, 0)
					}
				}
			}
		}
		if in.Tier == TierFull {
			capCoeffs := make(map[milp.VarID]float64, len(proteinVars))
			for _, v := range proteinVars {
				capCoeffs[v] = 1
			}
			if len(capCoeffs) > 0 {
				spec.AddConstraint("protein_cap", capCoeffs, milp.LE, float64(MaxProteinTypes))
			}
		}
		for _, v := range proteinVars {
			spec.AddObjectiveTerm(v, ProteinVarietyPenalty)
		}
	}

	// Reuse penalty and rating penalty, weighted by block size.
	for bi, b := range blocks {
		for _, slot := range active {
			for _, r := range eligibleFor(slot) {
				id, ok := meta.XVars[xKey{Block: bi, Slot: slot, Recipe: r.ID}]
				if !ok {
					continue
				}
				weight := float64(len(b.days))
				if in.UsedRecipeIDs[r.ID] {
					spec.AddObjectiveTerm(id, ReusePenalty*weight)
				}
				ratingPenalty := RatingWeight * float64(5-r.EffectiveRating()) / 5
				if ratingPenalty > 0 {
					spec.AddObjectiveTerm(id, ratingPenalty*weight)
				}
			}
		}
	}

	_ = recipeByID
	return spec, meta
}

func partitionBlocks(numDays, blockSize int) []block {
	var blocks []block
	for start := 0; start < numDays; start += blockSize {
		end := start + blockSize
		if end > numDays {
			end = numDays
		}
		days := make([]int, 0, end-start)
		for d := start; d < end; d++ {
			days = append(days, d)
		}
		blocks = append(blocks, block{days: days})
	}
	return blocks
}
