package commands

import (
	"errors"

	"cardtable/internal/modules/core"
	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/storage"
)

// commandError maps domain and storage sentinels onto the HTTP status
// codes the operation should be reported with.
func commandError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return core.NewCommandError(404, err, core.WithReason("game not found"))
	case errors.Is(err, storage.ErrConflict):
		return core.NewCommandError(409, err, core.WithReason("game was modified concurrently, retry"))
	case errors.Is(err, domain.ErrNotDealer):
		return core.NewCommandError(403, err, core.WithReason(err.Error()))
	case errors.Is(err, domain.ErrDeckEmpty),
		errors.Is(err, domain.ErrNoPlayers),
		errors.Is(err, domain.ErrAlreadySeated),
		errors.Is(err, domain.ErrGameFull),
		errors.Is(err, domain.ErrGameNotOpen),
		errors.Is(err, domain.ErrPlayerNotSeated):
		return core.NewCommandError(409, err, core.WithReason(err.Error()))
	default:
		return core.NewCommandError(500, err)
	}
}
