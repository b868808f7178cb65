package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("username", "bob@x.com"))
	assert.NotNil(t, Required("username", ""))
	assert.NotNil(t, Required("username", "   "))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("username", "bob@x.com"))
	assert.Nil(t, Email("username", " bob@x.com "))
	assert.NotNil(t, Email("username", "bob"))
	assert.NotNil(t, Email("username", ""))
}

func TestLengths(t *testing.T) {
	assert.Nil(t, MinLen("password", "secret1", 6))
	assert.NotNil(t, MinLen("password", "short", 6))
	assert.Nil(t, MaxLen("firstName", "Ada", 50))
	assert.NotNil(t, MaxLen("firstName", string(make([]byte, 51)), 50))
}

func TestCollect(t *testing.T) {
	assert.NoError(t, Collect(nil, nil))

	err := Collect(
		Required("username", ""),
		MinLen("password", "abc", 6),
	)
	require.Error(t, err)

	errs, ok := err.(Errs)
	require.True(t, ok)
	assert.Len(t, errs, 2)
	assert.Equal(t, "username: required", errs.First())
	assert.Contains(t, errs.Error(), "password: must be at least 6 characters")
}
