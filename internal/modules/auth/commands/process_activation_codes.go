package commands

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/core"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ProcessActivationCodesCommand struct{}

// ProcessActivationCodesCommandHandler sweeps unsent activation codes
// and mails them out. It is preferred to not send an email over
// sending duplicates - codes are marked sent even if delivery failed,
// and the user can request a re-send.
type ProcessActivationCodesCommandHandler struct {
	db          *sqlx.DB
	emailClient *core.EmailClient
	sender      string
}

func NewProcessActivationCodesCommandHandler(
	db *sqlx.DB,
	emailClient *core.EmailClient,
	sender string,
) *ProcessActivationCodesCommandHandler {
	return &ProcessActivationCodesCommandHandler{db, emailClient, sender}
}

func (h *ProcessActivationCodesCommandHandler) Handle(
	ctx context.Context,
	_ ProcessActivationCodesCommand,
) (core.Unit, error) {
	const stmt = `
		SELECT
			c.*
		FROM
			auth.activation_code c
		INNER JOIN
			auth.user u ON c.user_id = u.id AND u.security_stamp = c.security_stamp
		WHERE
			u.email_confirmed = false AND c.sent_at IS NULL AND c.expires_at > $1;`

	var codes []domain.ActivationCode
	err := h.db.SelectContext(ctx, &codes, stmt, time.Now().UTC())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return core.Unit{}, nil
	case err != nil:
		return core.Unit{}, core.NewCommandError(500, err)
	}

	if len(codes) == 0 {
		return core.Unit{}, nil
	}

	userIDs := core.Map(codes, func(c domain.ActivationCode) uuid.UUID {
		return c.UserID
	})

	const usersQuery = `SELECT * FROM auth.user WHERE id = ANY($1);`
	var users []domain.User
	if err := h.db.SelectContext(ctx, &users, usersQuery, pq.Array(userIDs)); err != nil {
		return core.Unit{}, err
	}

	usersMap := make(map[uuid.UUID]domain.User, len(users))
	for _, user := range users {
		usersMap[user.ID] = user
	}

	var errs []error
	for _, code := range codes {
		email := domain.RegistrationActivationEmail(usersMap[code.UserID], code, h.sender)
		if err := h.emailClient.Send(email); err != nil {
			errs = append(errs, err)
		}
	}

	codeIDs := core.Map(codes, func(c domain.ActivationCode) int64 {
		return c.ID
	})

	const updateCodesStmt = `
		UPDATE
			auth.activation_code
		SET
			sent_at = $1
		WHERE
			id = ANY($2);`
	if _, err := h.db.ExecContext(ctx, updateCodesStmt, time.Now().UTC(), pq.Array(codeIDs)); err != nil {
		errs = append(errs, err)
	}

	return core.Unit{}, errors.Join(errs...)
}
