package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"cardtable/internal/modules/auth"
	"cardtable/internal/modules/auth/commands"
	"cardtable/internal/modules/auth/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type responseAssertion func(*http.Response)

func sendRequest[TReq any, TResp any](
	c *http.Client,
	url string,
	method string,
	req TReq,
	sessionCookie string,
	opts ...responseAssertion,
) (TResp, error) {
	var resp TResp

	payload, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}

	httpReq, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return resp, err
	}

	if sessionCookie != "" {
		httpReq.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionCookie})
	}

	httpResp, err := c.Do(httpReq)
	if err != nil {
		return resp, err
	}

	for _, opt := range opts {
		opt(httpResp)
	}

	if httpResp.ContentLength > 0 {
		defer func() {
			_ = httpResp.Body.Close()
		}()

		responsePayload, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return resp, err
		}

		if err := json.Unmarshal(responsePayload, &resp); err != nil {
			return resp, err
		}
	}

	return resp, err
}

func extractSessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			return c.Value
		}
	}

	return ""
}

// registerAndLogin runs the full registration flow for a fresh user and
// returns the session cookie value.
func registerAndLogin(t *testing.T) string {
	t.Helper()

	registerCommand := commands.RegisterCommand{
		Email:    fmt.Sprintf("%s@tests.com", uuid.NewString()),
		Username: uuid.New().String(),
		Password: uuid.New().String(),
	}

	_, err := sendRequest[commands.RegisterCommand, any](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/auth/registrations"),
		http.MethodPost,
		registerCommand,
		"",
		func(resp *http.Response) { require.Equal(t, http.StatusOK, resp.StatusCode) },
	)
	require.NoError(t, err)

	token, err := tql.QueryFirst[string](
		context.Background(),
		fixture.db,
		`SELECT
			token
		FROM
			auth.activation_code ac
		INNER JOIN auth.user u ON u.id = ac.user_id
		WHERE u.email = $1;`,
		registerCommand.Email,
	)
	require.NoError(t, err)

	_, err = sendRequest[any, any](
		fixture.client,
		fmt.Sprintf("%s%s?token=%s", fixture.baseURL, "/auth/registrations/actions/confirm", token),
		http.MethodPost,
		nil,
		"",
		func(resp *http.Response) { require.Equal(t, http.StatusOK, resp.StatusCode) },
	)
	require.NoError(t, err)

	loginCommand := commands.LoginCommand{
		Email:    registerCommand.Email,
		Password: registerCommand.Password,
	}

	var cookie string

	_, err = sendRequest[commands.LoginCommand, any](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/auth/login"),
		http.MethodPost,
		loginCommand,
		"",
		func(resp *http.Response) {
			require.Equal(t, http.StatusOK, resp.StatusCode)
			cookie = extractSessionCookie(t, resp)
		},
	)
	require.NoError(t, err)

	if cookie == "" {
		t.Fatalf("found no cookie %q", auth.SessionCookieName)
	}

	return cookie
}

// loginAnonymous creates a guest session and returns the session cookie value.
func loginAnonymous(t *testing.T) string {
	t.Helper()

	var cookie string

	_, err := sendRequest[any, any](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/auth/login/anonymous"),
		http.MethodPost,
		nil,
		"",
		func(resp *http.Response) {
			require.Equal(t, http.StatusOK, resp.StatusCode)
			cookie = extractSessionCookie(t, resp)
		},
	)
	require.NoError(t, err)

	if cookie == "" {
		t.Fatalf("found no cookie %q", auth.SessionCookieName)
	}

	return cookie
}

func currentUser(t *testing.T, cookie string) domain.User {
	t.Helper()

	user, err := sendRequest[any, domain.User](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/auth/me"),
		http.MethodGet,
		nil,
		cookie,
		func(resp *http.Response) { require.Equal(t, http.StatusOK, resp.StatusCode) },
	)
	require.NoError(t, err)

	return user
}
