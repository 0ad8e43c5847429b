package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"

	"cardtable/internal/config"
	"cardtable/internal/modules/auth"
	authcommands "cardtable/internal/modules/auth/commands"
	authdomain "cardtable/internal/modules/auth/domain"
	authqueries "cardtable/internal/modules/auth/queries"
	"cardtable/internal/modules/core"
	"cardtable/internal/modules/game"
	gamecommands "cardtable/internal/modules/game/commands"
	gamedomain "cardtable/internal/modules/game/domain"
	gamequeries "cardtable/internal/modules/game/queries"

	"github.com/eskrenkovic/mediator-go"
	migrate "github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
	db     *sql.DB
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	core.SetLogger(config.Logger)

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	sqlxDB := sqlx.NewDb(db, "postgres")

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// auth

	passwordHasher := authdomain.NewPasswordHasher()

	emailClient, err := core.NewEmailClient(
		config.Email.Host,
		config.Email.Username,
		config.Email.Password,
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.RegisterCommand, core.Unit](
		authcommands.NewRegisterCommandHandler(sqlxDB, *passwordHasher),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.VerifyRegistrationCommand, core.Unit](
		authcommands.NewVerifyRegistrationCommandHandler(sqlxDB),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.ProcessActivationCodesCommand, core.Unit](
		authcommands.NewProcessActivationCodesCommandHandler(sqlxDB, emailClient, config.Email.Sender),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.LoginCommand, authdomain.Session](
		authcommands.NewLoginCommandHandler(sqlxDB, *passwordHasher),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.LoginAnonymousCommand, authdomain.Session](
		authcommands.NewLoginAnonymousCommandHandler(sqlxDB),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.LoginExternalCommand, authdomain.Session](
		authcommands.NewLoginExternalCommandHandler(sqlxDB),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.LogoutCommand, core.Unit](
		authcommands.NewLogoutCommandHandler(sqlxDB),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authcommands.UpdateProfileCommand, core.Unit](
		authcommands.NewUpdateProfileCommandHandler(sqlxDB),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[authqueries.GetCurrentUserQuery, authdomain.User](
		authqueries.NewGetCurrentUserQueryHandler(sqlxDB),
	)
	if err != nil {
		return nil, err
	}

	// game

	err = mediator.RegisterRequestHandler[gamecommands.CreateGameCommand, gamecommands.CreateGameResponse](
		gamecommands.NewCreateGameCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamecommands.JoinGameCommand, gamedomain.Game](
		gamecommands.NewJoinGameCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamecommands.ShuffleDeckCommand, gamedomain.Game](
		gamecommands.NewShuffleDeckCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamecommands.DealCardCommand, gamedomain.Game](
		gamecommands.NewDealCardCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamecommands.EndHandCommand, gamedomain.Game](
		gamecommands.NewEndHandCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamecommands.RevealHandCommand, gamedomain.Game](
		gamecommands.NewRevealHandCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamecommands.TogglePeekCommand, gamedomain.Game](
		gamecommands.NewTogglePeekCommandHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamequeries.GetGameQuery, gamequeries.GameView](
		gamequeries.NewGetGameQueryHandler(db),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[gamequeries.ListGamesQuery, []gamedomain.Game](
		gamequeries.NewListGamesQueryHandler(db),
	)
	if err != nil {
		return nil, err
	}

	// http

	authHandler := auth.NewAuthHTTPHandler(googleOAuthConfig(config.OAuth))
	gameHandler := game.NewGameHTTPHandler()

	authenticated := auth.AuthenticationMiddleware(sqlxDB)

	r := chi.NewRouter()
	r.Use(core.CorrelationIDHTTPMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/registrations", authHandler.HandleRegistration)
		r.Post("/registrations/actions/confirm", authHandler.HandleVerifyRegistration)
		r.Post("/registrations/actions/publish-confirmation-emails", authHandler.HandlePublishConfirmationEmails)

		r.Post("/login", authHandler.HandleLogin)
		r.Post("/login/anonymous", authHandler.HandleLoginAnonymous)
		r.Post("/logout", authHandler.HandleLogout)

		r.Get("/oauth/google", authHandler.HandleGoogleLogin)
		r.Get("/oauth/google/callback", authHandler.HandleGoogleCallback)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/me", authHandler.HandleGetCurrentUser)
			r.Put("/profile", authHandler.HandleUpdateProfile)
		})
	})

	r.Route("/games", func(r chi.Router) {
		r.Use(authenticated)

		r.Get("/", gameHandler.HandleListGames)
		r.Post("/", gameHandler.HandleCreateGame)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", gameHandler.HandleGetGame)

			r.Put("/actions/join", gameHandler.HandleJoinGame)
			r.Put("/actions/shuffle", gameHandler.HandleShuffleDeck)
			r.Put("/actions/deal", gameHandler.HandleDealCard)
			r.Put("/actions/end-hand", gameHandler.HandleEndHand)
			r.Put("/actions/reveal", gameHandler.HandleRevealHand)
			r.Put("/actions/peek", gameHandler.HandleTogglePeek)
		})
	})

	server := http.Server{
		Addr:    net.JoinHostPort("", fmt.Sprintf("%d", config.Port)),
		Handler: r,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	return &HTTPServer{server: &server, db: db}, nil
}

func googleOAuthConfig(conf config.OAuthConfiguration) *oauth2.Config {
	if conf.GoogleClientID == "" {
		return nil
	}

	return &oauth2.Config{
		ClientID:     conf.GoogleClientID,
		ClientSecret: conf.GoogleClientSecret,
		RedirectURL:  conf.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	if err := s.server.Close(); err != nil {
		return err
	}

	return s.db.Close()
}
