package commands

import (
	"context"
	"fmt"
	"time"

	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/core"

	"github.com/jmoiron/sqlx"
)

const activationCodeExpiration = 24 * time.Hour

type RegisterCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (c RegisterCommand) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("invalid Username: '%s'", c.Username)
	}

	if c.Password == "" {
		return fmt.Errorf("invalid Password")
	}

	if c.Email == "" {
		return fmt.Errorf("invalid Email: '%s'", c.Email)
	}

	return nil
}

type RegisterCommandHandler struct {
	db             *sqlx.DB
	passwordHasher domain.PasswordHasher
}

func NewRegisterCommandHandler(db *sqlx.DB, passwordHasher domain.PasswordHasher) *RegisterCommandHandler {
	return &RegisterCommandHandler{db, passwordHasher}
}

func (h *RegisterCommandHandler) Handle(ctx context.Context, request RegisterCommand) (core.Unit, error) {
	var count int
	const existingUserQuery = `
		SELECT
			count(id)
		FROM
			auth.user
		WHERE
			username = $1 OR email = $2;`

	if err := h.db.GetContext(ctx, &count, existingUserQuery, request.Username, request.Email); err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to reach database"))
	}

	if count > 0 {
		// Just return ok if the user already exists. If it's a valid request,
		// the user will check their email.
		return core.Unit{}, nil
	}

	user, err := domain.RegisterUser(request.Username, request.Email, request.Password, h.passwordHasher)
	if err != nil {
		return core.Unit{}, core.NewCommandError(400, err, core.WithReason("user registration failed"))
	}

	code, err := domain.CreateRegistrationActivationCode(user, activationCodeExpiration)
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to create activation code"))
	}

	tx, err := h.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err)
	}
	defer tx.Rollback() //nolint:errcheck

	const userStmt = `
		INSERT INTO
			auth.user (id, security_stamp, username, email, display_name, password_hash)
		VALUES
			(:id, :security_stamp, :username, :email, :display_name, :password_hash);`

	if _, err := tx.NamedExecContext(ctx, userStmt, user); err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to create new user entry"))
	}

	const codeStmt = `
		INSERT INTO
			auth.activation_code (user_id, security_stamp, expires_at, token)
		VALUES
			(:user_id, :security_stamp, :expires_at, :token);`

	if _, err := tx.NamedExecContext(ctx, codeStmt, code); err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to create activation code entry"))
	}

	if err := tx.Commit(); err != nil {
		return core.Unit{}, core.NewCommandError(500, err)
	}

	return core.Unit{}, nil
}
