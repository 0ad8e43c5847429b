package commands

import (
	"context"
	"fmt"

	"cardtable/internal/modules/core"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UpdateProfileCommand updates the caller's display-name metadata.
type UpdateProfileCommand struct {
	UserID      uuid.UUID `json:"-"`
	DisplayName string    `json:"display_name"`
}

func (c UpdateProfileCommand) Validate() error {
	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	if c.DisplayName == "" {
		return fmt.Errorf("invalid DisplayName - '%s'", c.DisplayName)
	}

	return nil
}

type UpdateProfileCommandHandler struct {
	db *sqlx.DB
}

func NewUpdateProfileCommandHandler(db *sqlx.DB) *UpdateProfileCommandHandler {
	return &UpdateProfileCommandHandler{db}
}

func (h *UpdateProfileCommandHandler) Handle(ctx context.Context, request UpdateProfileCommand) (core.Unit, error) {
	const stmt = `
		UPDATE
			auth.user
		SET
			display_name = $1
		WHERE
			id = $2;`

	result, err := h.db.ExecContext(ctx, stmt, request.DisplayName, request.UserID)
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err)
	}

	if affected == 0 {
		return core.Unit{}, core.NewCommandError(404, fmt.Errorf("user not found"), core.WithReason("user not found"))
	}

	return core.Unit{}, nil
}
