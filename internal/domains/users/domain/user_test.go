package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultsAndNormalizes(t *testing.T) {
	user, err := NewUser("  Rahim  ", " Rahim@CellTech.io ")
	require.NoError(t, err)
	require.Equal(t, "Rahim", user.Name)
	require.Equal(t, "rahim@celltech.io", user.Email)
	require.Equal(t, RoleUser, user.Role)
	require.Equal(t, StatusActive, user.Status)
}

func TestNewUser_RejectsInvalidFields(t *testing.T) {
	_, err := NewUser("", "a@b.c")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("Rahim", "rahim.celltech.io")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAssignRoleAndStatus(t *testing.T) {
	user, err := NewUser("Rahim", "rahim@celltech.io")
	require.NoError(t, err)

	require.NoError(t, user.AssignRole(RoleAdmin))
	require.ErrorIs(t, user.AssignRole("owner"), ErrInvalidRole)
	require.Equal(t, RoleAdmin, user.Role)

	require.NoError(t, user.UpdateStatus(StatusBlocked))
	require.True(t, user.Blocked())
	require.ErrorIs(t, user.UpdateStatus("gone"), ErrInvalidStatus)
}

func TestValidatePassword(t *testing.T) {
	require.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	require.NoError(t, ValidatePassword("123456"))
}
