package commands

import (
	"context"
	"fmt"

	"cardtable/internal/modules/core"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type LogoutCommand struct {
	SessionID uuid.UUID
}

func (c LogoutCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	return nil
}

type LogoutCommandHandler struct {
	db *sqlx.DB
}

func NewLogoutCommandHandler(db *sqlx.DB) *LogoutCommandHandler {
	return &LogoutCommandHandler{db}
}

func (h *LogoutCommandHandler) Handle(ctx context.Context, request LogoutCommand) (core.Unit, error) {
	const stmt = `
		DELETE FROM
			auth.session
		WHERE
			id = $1;`

	if _, err := h.db.ExecContext(ctx, stmt, request.SessionID); err != nil {
		return core.Unit{}, core.NewCommandError(500, err)
	}

	return core.Unit{}, nil
}
