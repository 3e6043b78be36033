package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncState_LoggedIn(t *testing.T) {
	empty := ""
	token := "abc123"
	assert.False(t, SyncState{}.LoggedIn())
	assert.False(t, SyncState{ServerToken: &empty}.LoggedIn())
	assert.True(t, SyncState{ServerToken: &token}.LoggedIn())
}
