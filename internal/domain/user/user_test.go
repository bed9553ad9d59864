package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhall/backend/internal/domain/user"
)

func TestNewUser(t *testing.T) {
	u, err := user.New("  ann@example.com ", "Ann", "Lee")
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "Lee Ann ann@example.com", u.DisplayName())
}

func TestNewUser_InvalidEmail(t *testing.T) {
	_, err := user.New("nobody", "", "")
	assert.Error(t, err)
}

func TestDisplayName_EmailOnly(t *testing.T) {
	u := user.User{Email: "x@y.z"}
	assert.Equal(t, "x@y.z", u.DisplayName())
}
