package commands

import (
	"context"
	"database/sql"
	"fmt"

	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

type DealCardCommand struct {
	GameID uuid.UUID `json:"-"`
	UserID uuid.UUID `json:"-"`

	Visibility string `json:"visibility"`
}

func (c DealCardCommand) Validate() error {
	if c.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	if _, err := domain.ParseVisibility(c.Visibility); err != nil {
		return err
	}

	return nil
}

type DealCardCommandHandler struct {
	db *sql.DB
}

func NewDealCardCommandHandler(db *sql.DB) *DealCardCommandHandler {
	return &DealCardCommandHandler{db}
}

func (h *DealCardCommandHandler) Handle(ctx context.Context, request DealCardCommand) (domain.Game, error) {
	visibility, err := domain.ParseVisibility(request.Visibility)
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	game, err := storage.Mutate(ctx, h.db, request.GameID, func(g *domain.Game) error {
		if !g.IsDealer(request.UserID) {
			return domain.ErrNotDealer
		}

		_, err := g.Deal(visibility)
		return err
	})
	if err != nil {
		return domain.Game{}, commandError(err)
	}

	return game, nil
}
