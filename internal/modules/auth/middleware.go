package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/core"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const SessionCookieName = "cardtable-session"

func AuthenticationMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				core.WriteUnauthorized(w, r, nil)
				return
			}

			sessionID, err := uuid.Parse(cookie.Value)
			if err != nil {
				core.WriteUnauthorized(w, r, nil)
				return
			}

			const q = `
				SELECT
					*
				FROM
					auth.session
				WHERE
					id = $1;`

			var session domain.Session
			err = db.GetContext(r.Context(), &session, q, sessionID)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				core.WriteUnauthorized(w, r, nil)
				return
			case err != nil:
				core.WriteInternalServerError(w, r, nil)
				return
			}

			if err := session.Validate(); err != nil {
				core.WriteUnauthorized(w, r, nil)
				return
			}

			const userQ = `
				SELECT
					display_name
				FROM
					auth.user
				WHERE
					id = $1;`

			var displayName string
			if err := db.GetContext(r.Context(), &displayName, userQ, session.UserID); err != nil {
				core.WriteUnauthorized(w, r, nil)
				return
			}

			authContext := context.WithValue(r.Context(), core.SessionContextKey, core.ContextSession{
				UserID:      session.UserID,
				DisplayName: displayName,
			})
			next.ServeHTTP(w, r.WithContext(authContext))
		})
	}
}

// SessionCookie builds the cookie carrying the session identifier.
func SessionCookie(session domain.Session) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID.String(),
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
