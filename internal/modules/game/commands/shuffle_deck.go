package commands

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

type ShuffleDeckCommand struct {
	GameID uuid.UUID
	UserID uuid.UUID
}

func (c ShuffleDeckCommand) Validate() error {
	if c.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type ShuffleDeckCommandHandler struct {
	db *sql.DB
}

func NewShuffleDeckCommandHandler(db *sql.DB) *ShuffleDeckCommandHandler {
	return &ShuffleDeckCommandHandler{db}
}

func (h *ShuffleDeckCommandHandler) Handle(ctx context.Context, request ShuffleDeckCommand) (domain.Game, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	game, err := storage.Mutate(ctx, h.db, request.GameID, func(g *domain.Game) error {
		if !g.IsDealer(request.UserID) {
			return domain.ErrNotDealer
		}

		g.Shuffle(rng)
		return nil
	})
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	return game, nil
}
