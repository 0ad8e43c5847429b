package domain

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_RegisterUser_Hashes_The_Password(t *testing.T) {
	hasher := NewPasswordHasher()

	user, err := RegisterUser("alice", "alice@test.com", "hunter2", *hasher)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, user.ID)
	require.NotEqual(t, uuid.Nil, user.SecurityStamp)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice", user.DisplayName)
	require.NotEqual(t, "hunter2", user.PasswordHash)
	require.False(t, user.EmailConfirmed)
	require.False(t, user.Anonymous)
}

func Test_Authenticate_Locks_Account_After_Three_Failures(t *testing.T) {
	hasher := NewPasswordHasher()

	user, err := RegisterUser("bob", "bob@test.com", "hunter2", *hasher)
	require.NoError(t, err)

	stampBefore := user.SecurityStamp

	require.Error(t, user.Authenticate("wrong", *hasher))
	require.Error(t, user.Authenticate("wrong", *hasher))
	require.False(t, user.Locked)

	require.Error(t, user.Authenticate("wrong", *hasher))
	require.True(t, user.Locked)
	require.NotEqual(t, stampBefore, user.SecurityStamp)

	// Locked accounts refuse even the correct password.
	require.Error(t, user.Authenticate("hunter2", *hasher))
}

func Test_Authenticate_Resets_Failure_Count_On_Success(t *testing.T) {
	hasher := NewPasswordHasher()

	user, err := RegisterUser("carol", "carol@test.com", "hunter2", *hasher)
	require.NoError(t, err)

	require.Error(t, user.Authenticate("wrong", *hasher))
	require.Equal(t, 1, user.UnsuccessfulLoginAttempts)

	require.NoError(t, user.Authenticate("hunter2", *hasher))
	require.Zero(t, user.UnsuccessfulLoginAttempts)
}

func Test_NewAnonymousUser_Generates_A_Guest_Name(t *testing.T) {
	user := NewAnonymousUser()

	require.True(t, user.Anonymous)
	require.True(t, user.EmailConfirmed)
	require.True(t, strings.HasPrefix(user.DisplayName, "Guest_"))

	n, err := strconv.Atoi(strings.TrimPrefix(user.DisplayName, "Guest_"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 100)
	require.LessOrEqual(t, n, 999)
}

func Test_Session_Validate_Rejects_Expired_Sessions(t *testing.T) {
	session := NewSession(uuid.New())
	require.NoError(t, session.Validate())

	session.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.Error(t, session.Validate())
}

func Test_ActivationCode_Round_Trip(t *testing.T) {
	hasher := NewPasswordHasher()

	user, err := RegisterUser("dave", "dave@test.com", "hunter2", *hasher)
	require.NoError(t, err)

	code, err := CreateRegistrationActivationCode(user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, code.Token)
	require.Equal(t, user.ID, code.UserID)
	require.Equal(t, user.SecurityStamp, code.SecurityStamp)

	require.NoError(t, ValidateUserActivationCode(code, user))
}

func Test_ActivationCode_Validation_Failures(t *testing.T) {
	hasher := NewPasswordHasher()

	user, err := RegisterUser("erin", "erin@test.com", "hunter2", *hasher)
	require.NoError(t, err)

	expired, err := CreateRegistrationActivationCode(user, -time.Minute)
	require.NoError(t, err)
	require.Error(t, ValidateUserActivationCode(expired, user))

	used, err := CreateRegistrationActivationCode(user, time.Hour)
	require.NoError(t, err)
	used.Used = true
	require.Error(t, ValidateUserActivationCode(used, user))

	stale, err := CreateRegistrationActivationCode(user, time.Hour)
	require.NoError(t, err)
	user.SecurityStamp = uuid.New()
	require.Error(t, ValidateUserActivationCode(stale, user))
}
