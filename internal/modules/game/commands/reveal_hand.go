package commands

import (
	"context"
	"database/sql"
	"fmt"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

// RevealHandCommand flips every card in the caller's own hand
// face-up. Revealing another player's hand is not a thing.
type RevealHandCommand struct {
	GameID uuid.UUID
	UserID uuid.UUID
}

func (c RevealHandCommand) Validate() error {
	if c.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type RevealHandCommandHandler struct {
	db *sql.DB
}

func NewRevealHandCommandHandler(db *sql.DB) *RevealHandCommandHandler {
	return &RevealHandCommandHandler{db}
}

func (h *RevealHandCommandHandler) Handle(ctx context.Context, request RevealHandCommand) (domain.Game, error) {
	game, err := storage.Mutate(ctx, h.db, request.GameID, func(g *domain.Game) error {
		return g.RevealHand(request.UserID)
	})
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	return game, nil
}
