package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemIsAdmin(t *testing.T) {
	system := &System{}
	assert.False(t, system.IsAdmin("alice"))

	system.Admins = []string{"alice", "bob"}
	assert.True(t, system.IsAdmin("alice"))
	assert.True(t, system.IsAdmin("bob"))
	assert.False(t, system.IsAdmin("mallory"))
	assert.False(t, system.IsAdmin(""))
}
