package domain

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

type User struct {
	ID                        uuid.UUID `db:"id" json:"id"`
	SecurityStamp             uuid.UUID `db:"security_stamp" json:"-"`
	Username                  string    `db:"username" json:"username"`
	Email                     string    `db:"email" json:"email"`
	DisplayName               string    `db:"display_name" json:"display_name"`
	PasswordHash              string    `db:"password_hash" json:"-"`
	Anonymous                 bool      `db:"anonymous" json:"anonymous"`
	EmailConfirmed            bool      `db:"email_confirmed" json:"-"`
	Locked                    bool      `db:"locked" json:"-"`
	UnsuccessfulLoginAttempts int       `db:"unsuccessful_login_attempts" json:"-"`
}

func RegisterUser(
	username string,
	email string,
	password string,
	passwordHasher PasswordHasher,
) (User, error) {
	passwordHash, err := passwordHasher.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:            uuid.New(),
		SecurityStamp: uuid.New(),
		Username:      username,
		Email:         email,
		DisplayName:   username,
		PasswordHash:  passwordHash,
	}, nil
}

// NewAnonymousUser creates a guest identity with a generated
// display name in the Guest_100 to Guest_999 range.
func NewAnonymousUser() User {
	name := fmt.Sprintf("Guest_%d", 100+rand.Intn(900))

	return User{
		ID:             uuid.New(),
		SecurityStamp:  uuid.New(),
		Username:       name,
		DisplayName:    name,
		Anonymous:      true,
		EmailConfirmed: true,
	}
}

// NewExternalUser creates an identity backed by an OAuth provider.
// There is no local password; the provider vouches for the email.
func NewExternalUser(email, displayName string) User {
	if displayName == "" {
		displayName = email
	}

	return User{
		ID:             uuid.New(),
		SecurityStamp:  uuid.New(),
		Username:       email,
		Email:          email,
		DisplayName:    displayName,
		EmailConfirmed: true,
	}
}

func (u *User) Authenticate(password string, passwordHasher PasswordHasher) error {
	if u.Locked {
		return fmt.Errorf("authentication failed: account locked")
	}

	err := passwordHasher.Verify(u.PasswordHash, password)
	if err == nil {
		u.UnsuccessfulLoginAttempts = 0
		return nil
	}

	reason := err.Error()

	u.UnsuccessfulLoginAttempts++

	if u.UnsuccessfulLoginAttempts >= 3 {
		u.Locked = true
		u.SecurityStamp = uuid.New()
		reason = "account locked"
	}

	return fmt.Errorf("authentication failed: %s", reason)
}
