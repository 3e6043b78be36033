package milp

import "time"

// Status is the outcome of a solve attempt.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Problem is the stateful, granular object the spec's MILP backend
// contract exposes: add variables and constraints to it, set its
// objective, solve it, then read back status and variable values.
type Problem interface {
	AddBinaryVar(name string) VarID
	AddContinuousVar(name string) VarID
	AddLinearConstraint(name string, coeffs map[VarID]float64, sense Sense, rhs float64)
	SetObjective(coeffs map[VarID]float64)
	Solve(timeLimit time.Duration) Status
	VarValue(v VarID) float64
	Status() Status
}

// Backend creates fresh Problem instances. This package keeps no
// process-wide Backend and does no lazy initialization: callers construct
// one (e.g. NewLocalSearchBackend) and pass it to each solve.
type Backend interface {
	CreateProblem() Problem
}

// Materialize replays a ProblemSpec through the granular Backend/Problem
// contract and returns the resulting variable-value assignment. This is
// the one place a ProblemSpec and a Backend meet; everything upstream of
// it (planner.Build) is pure and backend-agnostic.
func Materialize(backend Backend, spec *ProblemSpec, timeLimit time.Duration) (Status, map[VarID]float64) {
	prob := backend.CreateProblem()

	remap := make(map[VarID]VarID, len(spec.Vars))
	for _, v := range spec.Vars {
		switch v.Kind {
		case Binary:
			remap[v.ID] = prob.AddBinaryVar(v.Name)
		default:
			remap[v.ID] = prob.AddContinuousVar(v.Name)
		}
	}

	for _, c := range spec.Constraints {
		coeffs := make(map[VarID]float64, len(c.Coeffs))
		for v, coeff := range c.Coeffs {
			coeffs[remap[v]] = coeff
		}
		prob.AddLinearConstraint(c.Name, coeffs, c.Sense, c.RHS)
	}

	obj := make(map[VarID]float64, len(spec.Objective))
	for v, coeff := range spec.Objective {
		obj[remap[v]] = coeff
	}
	prob.SetObjective(obj)

	status := prob.Solve(timeLimit)

	values := make(map[VarID]float64, len(spec.Vars))
	if status == StatusOptimal {
		for _, v := range spec.Vars {
			values[v.ID] = prob.VarValue(remap[v.ID])
		}
	}
	return status, values
}
