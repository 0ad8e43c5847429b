package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cardtable/internal/modules/core"
	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"

	"github.com/google/uuid"
)

type GetGameQuery struct {
	GameID          uuid.UUID
	UserID          uuid.UUID
	UserDisplayName string
}

func (q GetGameQuery) Validate() error {
	if q.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", q.GameID)
	}

	if q.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

// GameView joins the record with the caller's identity: the record
// itself plus "am I seated, and as whom".
type GameView struct {
	Game   domain.Game   `json:"game"`
	Player domain.Player `json:"player"`
	Seated bool          `json:"seated"`
}

type GetGameQueryHandler struct {
	db *sql.DB
}

func NewGetGameQueryHandler(db *sql.DB) *GetGameQueryHandler {
	return &GetGameQueryHandler{db}
}

func (h *GetGameQueryHandler) Handle(ctx context.Context, request GetGameQuery) (GameView, error) {
	game, err := storage.Load(ctx, h.db, request.GameID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return GameView{}, core.NewCommandError(404, err, core.WithReason("game not found"))
	case err != nil:
		return GameView{}, core.NewCommandError(500, err)
	}

	player, seated := game.Seat(request.UserID)
	if !seated {
		player = domain.Player{
			ID:   request.UserID,
			Name: request.UserDisplayName,
			Hand: []domain.Card{},
		}
	}

	return GameView{Game: game, Player: player, Seated: seated}, nil
}
