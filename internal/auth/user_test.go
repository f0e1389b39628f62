package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Clone(t *testing.T) {
	assert.Nil(t, (*User)(nil).Clone())

	u := &User{ID: "user_1", Email: "a@b.c", PublicMetadata: map[string]any{"role": RoleSeller}}
	c := u.Clone()

	assert.Equal(t, u, c)
	assert.NotSame(t, u, c)

	c.PublicMetadata["role"] = "buyer"
	assert.Equal(t, RoleSeller, u.Role())

	assert.Nil(t, (&User{ID: "user_2"}).Clone().PublicMetadata)
}
