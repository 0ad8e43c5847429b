package config

import (
	"net/url"
	"path"

	"cardtable/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"

	EmailServerHostEnv     = "EMAIL_SERVER_HOST"
	EmailServerUsernameEnv = "EMAIL_SERVER_USERNAME"
	EmailServerPasswordEnv = "EMAIL_SERVER_PASSWORD"
	EmailServerSenderEnv   = "EMAIL_SERVER_SENDER"

	GoogleClientIDEnv     = "GOOGLE_CLIENT_ID"
	GoogleClientSecretEnv = "GOOGLE_CLIENT_SECRET"
	GoogleRedirectURLEnv  = "GOOGLE_REDIRECT_URL"
)

type EmailConfiguration struct {
	Host     *url.URL
	Username string
	Password string
	Sender   string
}

type OAuthConfiguration struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	Email EmailConfiguration
	OAuth OAuthConfiguration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)

	rootPath := env.MustGetString(RootPathEnv)
	migrationsPath := path.Join(rootPath, "db", "migrations")

	emailServerURL := env.MustGetURL(EmailServerHostEnv)
	emailServerUsername := env.MustGetString(EmailServerUsernameEnv)
	emailServerPassword := env.MustGetString(EmailServerPasswordEnv)
	emailServerSender := env.MustGetString(EmailServerSenderEnv)

	// OAuth sign-in is optional - the server runs without it and only
	// the Google endpoints report it as unconfigured.
	oauth := OAuthConfiguration{
		GoogleClientID:     env.GetStringOrDefault(GoogleClientIDEnv, ""),
		GoogleClientSecret: env.GetStringOrDefault(GoogleClientSecretEnv, ""),
		GoogleRedirectURL:  env.GetStringOrDefault(GoogleRedirectURLEnv, ""),
	}

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
		Email: EmailConfiguration{
			Host:     emailServerURL,
			Username: emailServerUsername,
			Password: emailServerPassword,
			Sender:   emailServerSender,
		},
		OAuth: oauth,
	}, nil
}
