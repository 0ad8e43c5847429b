package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/core"

	"github.com/jmoiron/sqlx"
)

type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c LoginCommand) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("invalid Email: '%s'", c.Email)
	}

	if c.Password == "" {
		return fmt.Errorf("invalid Password")
	}

	return nil
}

type LoginCommandHandler struct {
	db             *sqlx.DB
	passwordHasher domain.PasswordHasher
}

func NewLoginCommandHandler(db *sqlx.DB, passwordHasher domain.PasswordHasher) *LoginCommandHandler {
	return &LoginCommandHandler{db, passwordHasher}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, request LoginCommand) (domain.Session, error) {
	const userQuery = `
		SELECT
			*
		FROM
			auth.user
		WHERE
			email = $1;`

	var user domain.User
	err := h.db.GetContext(ctx, &user, userQuery, request.Email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Session{}, core.NewCommandError(401, err, core.WithReason("invalid credentials"))
	case err != nil:
		return domain.Session{}, core.NewCommandError(500, err)
	}

	if !user.EmailConfirmed {
		return domain.Session{}, core.NewCommandError(
			401,
			fmt.Errorf("email not confirmed"),
			core.WithReason("confirm your email before logging in"),
		)
	}

	authErr := user.Authenticate(request.Password, h.passwordHasher)

	// Authenticate mutates the lockout counters - persist them
	// regardless of the outcome.
	const updateStmt = `
		UPDATE
			auth.user
		SET
			security_stamp = :security_stamp,
			locked = :locked,
			unsuccessful_login_attempts = :unsuccessful_login_attempts
		WHERE
			id = :id;`

	if _, err := h.db.NamedExecContext(ctx, updateStmt, user); err != nil {
		return domain.Session{}, core.NewCommandError(500, err)
	}

	if authErr != nil {
		return domain.Session{}, core.NewCommandError(401, authErr, core.WithReason("invalid credentials"))
	}

	session := domain.NewSession(user.ID)

	const sessionStmt = `
		INSERT INTO
			auth.session (id, user_id, created_at, expires_at)
		VALUES
			(:id, :user_id, :created_at, :expires_at);`

	if _, err := h.db.NamedExecContext(ctx, sessionStmt, session); err != nil {
		return domain.Session{}, core.NewCommandError(500, err, core.WithReason("failed to create session"))
	}

	return session, nil
}
