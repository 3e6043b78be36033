package milp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSearchBackend_SolvesSimpleChoiceGroup(t *testing.T) {
	spec := NewProblemSpec()
	v0 := spec.NewBinaryVar("v0")
	v1 := spec.NewBinaryVar("v1")
	v2 := spec.NewBinaryVar("v2")
	spec.AddConstraint("choice", map[VarID]float64{v0: 1, v1: 1, v2: 1}, EQ, 1)
	spec.AddObjectiveTerm(v0, 10)
	spec.AddObjectiveTerm(v1, 1)
	spec.AddObjectiveTerm(v2, 5)

	backend := NewLocalSearchBackend()
	status, values := Materialize(backend, spec, 2*time.Second)

	require.Equal(t, StatusOptimal, status)
	assert.Equal(t, 1.0, values[v1])
	assert.Equal(t, 0.0, values[v0])
	assert.Equal(t, 0.0, values[v2])
}

func TestLocalSearchBackend_InfeasibleWithoutChoiceGroup(t *testing.T) {
	spec := NewProblemSpec()
	spec.NewBinaryVar("v0")

	backend := NewLocalSearchBackend()
	status, _ := Materialize(backend, spec, 100*time.Millisecond)
	assert.Equal(t, StatusInfeasible, status)
}

func TestLocalSearchBackend_ResolvesDeviationPair(t *testing.T) {
	spec := NewProblemSpec()
	v0 := spec.NewBinaryVar("v0")
	v1 := spec.NewBinaryVar("v1")
	spec.AddConstraint("choice", map[VarID]float64{v0: 1, v1: 1}, EQ, 1)

	devPlus := spec.NewContinuousVar("dev_plus")
	devMinus := spec.NewContinuousVar("dev_minus")
	// value(v1)*10 - target(5) = devPlus - devMinus
	spec.AddConstraint("deviation", map[VarID]float64{v1: 10, devPlus: -1, devMinus: 1}, EQ, 5)
	spec.AddObjectiveTerm(devPlus, 1)
	spec.AddObjectiveTerm(devMinus, 1)
	spec.AddObjectiveTerm(v1, 0.0001) // break ties toward using v1

	backend := NewLocalSearchBackend()
	status, values := Materialize(backend, spec, 2*time.Second)

	require.Equal(t, StatusOptimal, status)
	// v1=1 gives sum=10, deviation from target 5 is +5 => devPlus=5, devMinus=0, cost 5.0001
	// v1=0 gives sum=0, deviation is -5 => devMinus=5, devPlus=0, cost 5
	// v1=0 is cheaper, so the solver should settle there.
	assert.Equal(t, 0.0, values[v1])
	assert.Equal(t, 0.0, values[devPlus])
	assert.Equal(t, 5.0, values[devMinus])
}
