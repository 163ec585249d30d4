package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminSetMembership(t *testing.T) {
	admins := NewAdminSet([]int64{42, 7})

	assert.True(t, admins.IsAdmin(42))
	assert.True(t, admins.IsAdmin(7))
	assert.False(t, admins.IsAdmin(1))
	assert.False(t, admins.IsAdmin(0))
}

func TestAdminSetEmpty(t *testing.T) {
	admins := NewAdminSet(nil)
	assert.False(t, admins.IsAdmin(42))
	assert.Empty(t, admins.IDs())
}

func TestAdminSetNilReceiver(t *testing.T) {
	var admins *AdminSet
	assert.False(t, admins.IsAdmin(42))
	assert.Nil(t, admins.IDs())
}

func TestAdminSetIDsStableOrder(t *testing.T) {
	admins := NewAdminSet([]int64{30, 10, 20})
	assert.Equal(t, []int64{10, 20, 30}, admins.IDs())
}
