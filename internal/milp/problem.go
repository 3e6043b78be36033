// Package milp implements the abstract MILP backend contract of spec.md
// §6 (create problem, add binary/continuous variables, add linear
// constraints, set a linear objective, solve with a time limit, query
// status and variable values) plus one concrete backend satisfying it.
//
// Per the design note in spec.md §9, model construction is split from
// solving: ProblemSpec is a pure-data description of variables,
// constraints, and an objective, built by a declarative function of the
// planning inputs (planner.Build). It can be inspected and tested
// without ever touching a Backend. Materialize then replays a
// ProblemSpec's contents through the granular Backend/Problem calls.
package milp

import "fmt"

// VarKind distinguishes a binary decision variable from a non-negative
// continuous one.
type VarKind int

const (
	Binary VarKind = iota
	Continuous
)

// VarID indexes a variable within a ProblemSpec.
type VarID int

// Var is one decision variable.
type Var struct {
	ID   VarID
	Name string
	Kind VarKind
}

// Sense is the relational operator of a linear constraint.
type Sense int

const (
	LE Sense = iota // <=
	GE              // >=
	EQ              // =
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Constraint is one linear row: sum(Coeffs[v] * v) <sense> RHS.
type Constraint struct {
	Name   string
	Coeffs map[VarID]float64
	Sense  Sense
	RHS    float64
}

// ProblemSpec is the full declarative model: every variable, every
// constraint, and the (minimization) objective's coefficients.
type ProblemSpec struct {
	Vars        []Var
	Constraints []Constraint
	Objective   map[VarID]float64
}

// NewProblemSpec returns an empty, buildable spec.
func NewProblemSpec() *ProblemSpec {
	return &ProblemSpec{Objective: make(map[VarID]float64)}
}

// NewBinaryVar declares a new binary decision variable and returns its id.
func (p *ProblemSpec) NewBinaryVar(name string) VarID {
	id := VarID(len(p.Vars))
	p.Vars = append(p.Vars, Var{ID: id, Name: name, Kind: Binary})
	return id
}

// NewContinuousVar declares a new non-negative continuous variable.
func (p *ProblemSpec) NewContinuousVar(name string) VarID {
	id := VarID(len(p.Vars))
	p.Vars = append(p.Vars, Var{ID: id, Name: name, Kind: Continuous})
	return id
}

// AddConstraint appends a linear constraint. coeffs is not retained; a
// defensive copy is made.
func (p *ProblemSpec) AddConstraint(name string, coeffs map[VarID]float64, sense Sense, rhs float64) {
	cp := make(map[VarID]float64, len(coeffs))
	for k, v := range coeffs {
		if v != 0 {
			cp[k] = v
		}
	}
	p.Constraints = append(p.Constraints, Constraint{Name: name, Coeffs: cp, Sense: sense, RHS: rhs})
}

// AddObjectiveTerm accumulates coeff onto the objective's term for v
// (objective terms are summed across the whole model, e.g. one deviation
// penalty per macro per day).
func (p *ProblemSpec) AddObjectiveTerm(v VarID, coeff float64) {
	p.Objective[v] += coeff
}

// Validate does basic structural sanity checks useful in tests:
// every constraint and objective term must reference a declared variable.
func (p *ProblemSpec) Validate() error {
	n := VarID(len(p.Vars))
	for v := range p.Objective {
		if v < 0 || v >= n {
			return fmt.Errorf("objective references unknown var %d", v)
		}
	}
	for _, c := range p.Constraints {
		for v := range c.Coeffs {
			if v < 0 || v >= n {
				return fmt.Errorf("constraint %q references unknown var %d", c.Name, v)
			}
		}
	}
	return nil
}
