package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/core"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type VerifyRegistrationCommand struct {
	Token string `json:"token"`
}

func (c VerifyRegistrationCommand) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("invalid Token: '%s'", c.Token)
	}

	return nil
}

type VerifyRegistrationCommandHandler struct {
	db *sqlx.DB
}

func NewVerifyRegistrationCommandHandler(db *sqlx.DB) *VerifyRegistrationCommandHandler {
	return &VerifyRegistrationCommandHandler{db}
}

func (h *VerifyRegistrationCommandHandler) Handle(
	ctx context.Context,
	request VerifyRegistrationCommand,
) (core.Unit, error) {
	const invalidTokenMessage = "invalid confirmation token"

	const getCodeQuery = `
		SELECT
			*
		FROM
			auth.activation_code
		WHERE
			token = $1;`

	var activationCode domain.ActivationCode
	if err := h.db.GetContext(ctx, &activationCode, getCodeQuery, request.Token); err != nil {
		return core.Unit{}, core.NewCommandError(400, err, core.WithReason(invalidTokenMessage))
	}

	const userQuery = `
		SELECT
			*
		FROM
			auth.user
		WHERE
			id = $1 AND security_stamp = $2;`

	var user domain.User
	err := h.db.GetContext(ctx, &user, userQuery, activationCode.UserID, activationCode.SecurityStamp)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return core.Unit{}, core.NewCommandError(400, err, core.WithReason(invalidTokenMessage))
	case err != nil:
		return core.Unit{}, core.NewCommandError(500, err)
	}

	if err := domain.ValidateUserActivationCode(activationCode, user); err != nil {
		return core.Unit{}, core.NewCommandError(400, err, core.WithReason(invalidTokenMessage))
	}

	err = core.Tx(ctx, h.db.DB, func(ctx context.Context, tx *sql.Tx) error {
		const updateUserStmt = `
			UPDATE
				auth.user
			SET
				security_stamp = $1,
				email_confirmed = true
			WHERE
				id = $2 AND security_stamp = $3;`

		if _, err := tx.ExecContext(ctx, updateUserStmt, uuid.New(), user.ID, activationCode.SecurityStamp); err != nil {
			return err
		}

		const updateActivationCodeStmt = `
			UPDATE
				auth.activation_code
			SET
				used = true
			WHERE
				token = $1;`

		_, err := tx.ExecContext(ctx, updateActivationCodeStmt, activationCode.Token)
		return err
	})
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err)
	}

	return core.Unit{}, nil
}
