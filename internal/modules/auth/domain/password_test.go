package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_PasswordHasher_Verifies_The_Original_Password(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotContains(t, hash, "correct horse")

	require.NoError(t, hasher.Verify(hash, "correct horse battery staple"))
}

func Test_PasswordHasher_Rejects_A_Different_Password(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.HashPassword("hunter2")
	require.NoError(t, err)

	err = hasher.Verify(hash, "hunter3")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func Test_PasswordHasher_Produces_Distinct_Hashes_For_The_Same_Password(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.HashPassword("hunter2")
	require.NoError(t, err)

	second, err := hasher.HashPassword("hunter2")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
