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

// LoginExternalCommand completes an OAuth sign-in once the provider
// has vouched for the email. Creates the user on first sign-in.
type LoginExternalCommand struct {
	Email       string
	DisplayName string
}

func (c LoginExternalCommand) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("invalid Email: '%s'", c.Email)
	}

	return nil
}

type LoginExternalCommandHandler struct {
	db *sqlx.DB
}

func NewLoginExternalCommandHandler(db *sqlx.DB) *LoginExternalCommandHandler {
	return &LoginExternalCommandHandler{db}
}

func (h *LoginExternalCommandHandler) Handle(
	ctx context.Context,
	request LoginExternalCommand,
) (domain.Session, error) {
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
		user = domain.NewExternalUser(request.Email, request.DisplayName)

		const userStmt = `
			INSERT INTO
				auth.user (id, security_stamp, username, email, display_name, email_confirmed)
			VALUES
				(:id, :security_stamp, :username, :email, :display_name, :email_confirmed);`

		if _, err := h.db.NamedExecContext(ctx, userStmt, user); err != nil {
			return domain.Session{}, core.NewCommandError(500, err, core.WithReason("failed to create user"))
		}
	case err != nil:
		return domain.Session{}, core.NewCommandError(500, err)
	}

	if user.Locked {
		return domain.Session{}, core.NewCommandError(
			401,
			fmt.Errorf("account locked"),
			core.WithReason("account locked"),
		)
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
