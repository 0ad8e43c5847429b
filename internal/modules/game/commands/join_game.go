package commands

import (
	"context"
	"database/sql"
	"fmt"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

type JoinGameCommand struct {
	GameID     uuid.UUID
	PlayerID   uuid.UUID
	PlayerName string
}

func (c JoinGameCommand) Validate() error {
	if c.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID)
	}

	if c.PlayerName == "" {
		return fmt.Errorf("invalid PlayerName - '%s'", c.PlayerName)
	}

	return nil
}

type JoinGameCommandHandler struct {
	db *sql.DB
}

func NewJoinGameCommandHandler(db *sql.DB) *JoinGameCommandHandler {
	return &JoinGameCommandHandler{db}
}

func (h *JoinGameCommandHandler) Handle(ctx context.Context, request JoinGameCommand) (domain.Game, error) {
	game, err := storage.Mutate(ctx, h.db, request.GameID, func(g *domain.Game) error {
		return g.Join(domain.Player{ID: request.PlayerID, Name: request.PlayerName})
	})
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	return game, nil
}
