package commands

import (
	"context"
	"database/sql"
	"fmt"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

type TogglePeekCommand struct {
	GameID uuid.UUID
	UserID uuid.UUID
}

func (c TogglePeekCommand) Validate() error {
	if c.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type TogglePeekCommandHandler struct {
	db *sql.DB
}

func NewTogglePeekCommandHandler(db *sql.DB) *TogglePeekCommandHandler {
	return &TogglePeekCommandHandler{db}
}

func (h *TogglePeekCommandHandler) Handle(ctx context.Context, request TogglePeekCommand) (domain.Game, error) {
	game, err := storage.Mutate(ctx, h.db, request.GameID, func(g *domain.Game) error {
		return g.TogglePeek(request.UserID)
	})
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	return game, nil
}
