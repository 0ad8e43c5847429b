package commands

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

const (
	lobbyMinPlayers = 2
	lobbyMaxPlayers = 7
)

type CreateGameCommand struct {
	DealerID   uuid.UUID `json:"-"`
	DealerName string    `json:"-"`

	Name       string `json:"name"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
	NumDecks   int    `json:"num_decks"`
}

func (c CreateGameCommand) Validate() error {
	if c.DealerID == uuid.Nil {
		return fmt.Errorf("invalid DealerID - '%s'", c.DealerID)
	}

	if c.MinPlayers < lobbyMinPlayers || c.MinPlayers > lobbyMaxPlayers {
		return fmt.Errorf("invalid MinPlayers - %d", c.MinPlayers)
	}

	if c.MaxPlayers < c.MinPlayers || c.MaxPlayers > lobbyMaxPlayers {
		return fmt.Errorf("invalid MaxPlayers - %d", c.MaxPlayers)
	}

	if c.NumDecks < 1 || c.NumDecks > 4 {
		return fmt.Errorf("invalid NumDecks - %d", c.NumDecks)
	}

	return nil
}

type CreateGameResponse struct {
	GameID string `json:"game_id"`
}

type CreateGameCommandHandler struct {
	db *sql.DB
}

func NewCreateGameCommandHandler(db *sql.DB) *CreateGameCommandHandler {
	return &CreateGameCommandHandler{db}
}

func (h *CreateGameCommandHandler) Handle(
	ctx context.Context,
	request CreateGameCommand,
) (CreateGameResponse, error) {
	name := request.Name
	if name == "" {
		name = fmt.Sprintf("Game %d", time.Now().UnixMilli())
	}

	dealer := domain.Player{ID: request.DealerID, Name: request.DealerName}
	game := domain.NewGame(name, dealer, request.MinPlayers, request.MaxPlayers, request.NumDecks)

	if err := storage.Insert(ctx, h.db, game); err != nil {
		return CreateGameResponse{}, commandError(err)
	}

	return CreateGameResponse{GameID: game.ID.String()}, nil
}
