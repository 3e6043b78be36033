package coreerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoreError_UnwrapMatchesSentinel(t *testing.T) {
	err := InfeasibleModel(2)
	assert.True(t, errors.Is(err, ErrInfeasibleModel))
	assert.False(t, errors.Is(err, ErrEmptyCategory))
}

func TestCoreError_WrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := TransientRemote("push_create", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "TRANSIENT_REMOTE")
	assert.Contains(t, err.Error(), "dial tcp: timeout")
}

func TestCoreError_ErrorStringWithoutCause(t *testing.T) {
	err := EmptyCategory("dinner")
	assert.Contains(t, err.Error(), "EMPTY_CATEGORY")
	assert.Contains(t, err.Error(), "dinner")
}
