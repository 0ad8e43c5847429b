package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cardtable/internal/modules/auth/commands"
	"cardtable/internal/modules/auth/domain"
	"cardtable/internal/modules/auth/queries"
	"cardtable/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const oauthStateCookieName = "cardtable-oauth-state"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthHTTPHandler struct {
	googleOAuth *oauth2.Config
}

func NewAuthHTTPHandler(googleOAuth *oauth2.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{googleOAuth}
}

func (h *AuthHTTPHandler) HandleRegistration(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.RegisterCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	if _, err = mediator.Send[commands.RegisterCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandleVerifyRegistration(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid token"))
		return
	}

	command := commands.VerifyRegistrationCommand{Token: token}
	if _, err := mediator.Send[commands.VerifyRegistrationCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandlePublishConfirmationEmails(w http.ResponseWriter, r *http.Request) {
	command := commands.ProcessActivationCodesCommand{}
	if _, err := mediator.Send[commands.ProcessActivationCodesCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.LoginCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[commands.LoginCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	http.SetCookie(w, SessionCookie(session))
	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandleLoginAnonymous(w http.ResponseWriter, r *http.Request) {
	command := commands.LoginAnonymousCommand{}

	session, err := mediator.Send[commands.LoginAnonymousCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	http.SetCookie(w, SessionCookie(session))
	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if sessionID, err := uuid.Parse(cookie.Value); err == nil {
			command := commands.LogoutCommand{SessionID: sessionID}
			if _, err := mediator.Send[commands.LogoutCommand, core.Unit](r.Context(), command); err != nil {
				core.WriteCommandError(w, r, err)
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Path: "/", MaxAge: -1})
	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	query := queries.GetCurrentUserQuery{UserID: core.Session(r.Context()).UserID}

	user, err := mediator.Send[queries.GetCurrentUserQuery, domain.User](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, user)
}

func (h *AuthHTTPHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.UpdateProfileCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.UserID = core.Session(r.Context()).UserID

	if _, err := mediator.Send[commands.UpdateProfileCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *AuthHTTPHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil {
		core.WriteInternalServerError(w, r, fmt.Errorf("google sign-in is not configured"))
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.googleOAuth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHTTPHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil {
		core.WriteInternalServerError(w, r, fmt.Errorf("google sign-in is not configured"))
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value != r.URL.Query().Get("state") {
		core.WriteBadRequest(w, r, fmt.Errorf("oauth state mismatch"))
		return
	}

	token, err := h.googleOAuth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		core.WriteUnauthorized(w, r, fmt.Errorf("code exchange failed"))
		return
	}

	resp, err := h.googleOAuth.Client(r.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		core.WriteResponse(w, r, 502, fmt.Errorf("failed to fetch user info"))
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		core.WriteResponse(w, r, 502, fmt.Errorf("failed to decode user info"))
		return
	}

	command := commands.LoginExternalCommand{Email: userInfo.Email, DisplayName: userInfo.Name}
	session, err := mediator.Send[commands.LoginExternalCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	http.SetCookie(w, SessionCookie(session))
	http.Redirect(w, r, "/games", http.StatusFound)
}
