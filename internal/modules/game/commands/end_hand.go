package commands

import (
	"context"
	"database/sql"
	"fmt"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

type EndHandCommand struct {
	GameID uuid.UUID
	UserID uuid.UUID
}

func (c EndHandCommand) Validate() error {
	if c.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type EndHandCommandHandler struct {
	db *sql.DB
}

func NewEndHandCommandHandler(db *sql.DB) *EndHandCommandHandler {
	return &EndHandCommandHandler{db}
}

func (h *EndHandCommandHandler) Handle(ctx context.Context, request EndHandCommand) (domain.Game, error) {
	_, err := storage.Mutate(ctx, h.db, request.GameID, func(g *domain.Game) error {
		if !g.IsDealer(request.UserID) {
			return domain.ErrNotDealer
		}

		g.EndHand()
		return nil
	})
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	// Report the stored record, not the local echo of the write.
	game, err := storage.Load(ctx, h.db, request.GameID)
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	return game, nil
}
