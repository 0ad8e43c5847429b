package queries

import (
	"context"
	"database/sql"

	"cardtable/internal/modules/core"
	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"
)

type ListGamesQuery struct{}

type ListGamesQueryHandler struct {
	db *sql.DB
}

func NewListGamesQueryHandler(db *sql.DB) *ListGamesQueryHandler {
	return &ListGamesQueryHandler{db}
}

func (h *ListGamesQueryHandler) Handle(ctx context.Context, _ ListGamesQuery) ([]domain.Game, error) {
	games, err := storage.ListOpen(ctx, h.db)
	if err != nil {
		return nil, core.NewCommandError(500, err)
	}

	return games, nil
}
