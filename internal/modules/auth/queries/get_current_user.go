package queries

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

type GetCurrentUserQuery struct {
	UserID uuid.UUID
}

func (q GetCurrentUserQuery) Validate() error {
	if q.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

type GetCurrentUserQueryHandler struct {
	db *sqlx.DB
}

func NewGetCurrentUserQueryHandler(db *sqlx.DB) *GetCurrentUserQueryHandler {
	return &GetCurrentUserQueryHandler{db}
}

func (h *GetCurrentUserQueryHandler) Handle(
	ctx context.Context,
	request GetCurrentUserQuery,
) (domain.User, error) {
	const query = `
		SELECT
			*
		FROM
			auth.user
		WHERE
			id = $1;`

	var user domain.User
	err := h.db.GetContext(ctx, &user, query, request.UserID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.User{}, core.NewCommandError(404, err, core.WithReason("user not found"))
	case err != nil:
		return domain.User{}, core.NewCommandError(500, err)
	}

	return user, nil
}
