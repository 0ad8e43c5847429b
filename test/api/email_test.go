package main

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"cardtable/internal/modules/auth/commands"
	"cardtable/internal/modules/core"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Send_Sends_Email_To_Server(t *testing.T) {
	// Arrange
	host, err := url.Parse("smtp://127.0.0.1:1025")
	require.NoError(t, err)

	c, err := core.NewEmailClient(host, "", "")
	require.NoError(t, err)

	m := core.MailMessage{
		Subject:    "I am the subject of an email",
		From:       "hello@cardtable.local",
		To:         []string{"tests@tests.com", "tests.testersson@mail.com"},
		Cc:         []string{"tests.testersson@tests.com"},
		Bcc:        []string{"tests@tests.tests"},
		BodyString: "<html><b>HI THERE</b></html>",
		IsHTML:     true,
	}

	// Act
	err = c.Send(m)

	// Assert
	require.NoError(t, err)
}

func Test_PublishConfirmationEmails_Marks_Pending_Codes_As_Sent(t *testing.T) {
	// Arrange
	registerCommand := commands.RegisterCommand{
		Email:    fmt.Sprintf("%s@test.com", uuid.New().String()),
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

	// Act
	_, err = sendRequest[any, any](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/auth/registrations/actions/publish-confirmation-emails"),
		http.MethodPost,
		nil,
		"",
		func(resp *http.Response) { require.Equal(t, http.StatusOK, resp.StatusCode) },
	)
	require.NoError(t, err)

	// Assert
	var sentAt *time.Time
	err = fixture.db.Get(
		&sentAt,
		`SELECT
			ac.sent_at
		FROM
			auth.activation_code ac
		INNER JOIN auth.user u ON u.id = ac.user_id
		WHERE u.email = $1;`,
		registerCommand.Email,
	)
	require.NoError(t, err)
	require.NotNil(t, sentAt)
}
