package commands

import (
	"context"

	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/core"

	"github.com/jmoiron/sqlx"
)

type LoginAnonymousCommand struct{}

type LoginAnonymousCommandHandler struct {
	db *sqlx.DB
}

func NewLoginAnonymousCommandHandler(db *sqlx.DB) *LoginAnonymousCommandHandler {
	return &LoginAnonymousCommandHandler{db}
}

func (h *LoginAnonymousCommandHandler) Handle(
	ctx context.Context,
	_ LoginAnonymousCommand,
) (domain.Session, error) {
	user := domain.NewAnonymousUser()

	const userStmt = `
		INSERT INTO
			auth.user (id, security_stamp, username, email, display_name, anonymous, email_confirmed)
		VALUES
			(:id, :security_stamp, :username, :email, :display_name, :anonymous, :email_confirmed);`

	if _, err := h.db.NamedExecContext(ctx, userStmt, user); err != nil {
		return domain.Session{}, core.NewCommandError(500, err, core.WithReason("failed to create guest user"))
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
