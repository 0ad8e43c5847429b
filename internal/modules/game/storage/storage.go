package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardtable/internal/modules/game/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

var (
	// ErrNotFound distinguishes a missing game from a storage failure.
	ErrNotFound = errors.New("game not found")

	// ErrConflict signals a stale-version write. Callers reload and
	// re-apply rather than silently dropping the other writer's update.
	ErrConflict = errors.New("game was modified concurrently")
)

const casRetries = 3

type gameRecord struct {
	ID             uuid.UUID     `db:"id"`
	Name           string        `db:"name"`
	Status         string        `db:"status"`
	DealerID       uuid.UUID     `db:"dealer_id"`
	MinPlayers     int           `db:"min_players"`
	MaxPlayers     int           `db:"max_players"`
	NumDecks       int           `db:"num_decks"`
	Players        string        `db:"players"`
	Deck           string        `db:"deck"`
	LastDealtIndex sql.NullInt64 `db:"last_dealt_index"`
	Version        int64         `db:"version"`
	CreatedAt      time.Time     `db:"created_at"`
}

// decodePlayers accepts the canonical jsonb array as well as legacy
// rows where the array arrived double-encoded as a JSON string.
// Anything else is a hard decode failure, not a silent default.
func decodePlayers(raw string) ([]domain.Player, error) {
	if len(raw) == 0 || raw == "null" {
		return []domain.Player{}, nil
	}

	var players []domain.Player
	if err := json.Unmarshal([]byte(raw), &players); err == nil {
		return players, nil
	}

	var encoded string
	if err := json.Unmarshal([]byte(raw), &encoded); err != nil {
		return nil, fmt.Errorf("malformed players column: %w", err)
	}

	if err := json.Unmarshal([]byte(encoded), &players); err != nil {
		return nil, fmt.Errorf("malformed players column: %w", err)
	}

	return players, nil
}

func decodeDeck(raw string) ([]domain.Card, error) {
	if len(raw) == 0 || raw == "null" {
		return []domain.Card{}, nil
	}

	var deck []domain.Card
	if err := json.Unmarshal([]byte(raw), &deck); err != nil {
		return nil, fmt.Errorf("malformed deck column: %w", err)
	}

	return deck, nil
}

func (r gameRecord) toDomain() (domain.Game, error) {
	players, err := decodePlayers(r.Players)
	if err != nil {
		return domain.Game{}, err
	}

	deck, err := decodeDeck(r.Deck)
	if err != nil {
		return domain.Game{}, err
	}

	game := domain.Game{
		ID:         r.ID,
		Name:       r.Name,
		Status:     r.Status,
		DealerID:   r.DealerID,
		MinPlayers: r.MinPlayers,
		MaxPlayers: r.MaxPlayers,
		NumDecks:   r.NumDecks,
		Players:    players,
		Deck:       deck,
		Version:    r.Version,
	}

	if r.LastDealtIndex.Valid {
		idx := int(r.LastDealtIndex.Int64)
		game.LastDealtIndex = &idx
	}

	return game, nil
}

func toRecord(g domain.Game) (gameRecord, error) {
	players, err := json.Marshal(g.Players)
	if err != nil {
		return gameRecord{}, err
	}

	deck, err := json.Marshal(g.Deck)
	if err != nil {
		return gameRecord{}, err
	}

	record := gameRecord{
		ID:         g.ID,
		Name:       g.Name,
		Status:     g.Status,
		DealerID:   g.DealerID,
		MinPlayers: g.MinPlayers,
		MaxPlayers: g.MaxPlayers,
		NumDecks:   g.NumDecks,
		Players:    string(players),
		Deck:       string(deck),
		Version:    g.Version,
	}

	if g.LastDealtIndex != nil {
		record.LastDealtIndex = sql.NullInt64{Int64: int64(*g.LastDealtIndex), Valid: true}
	}

	return record, nil
}

func Load(ctx context.Context, db *sql.DB, id uuid.UUID) (domain.Game, error) {
	const query = `
		SELECT
			*
		FROM
			game
		WHERE
			id = $1;`

	record, err := tql.QueryFirst[gameRecord](ctx, db, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Game{}, ErrNotFound
	case err != nil:
		return domain.Game{}, err
	}

	return record.toDomain()
}

func ListOpen(ctx context.Context, db *sql.DB) ([]domain.Game, error) {
	const query = `
		SELECT
			*
		FROM
			game
		WHERE
			status = $1
		ORDER BY
			created_at DESC;`

	records, err := tql.Query[gameRecord](ctx, db, query, domain.StatusOpen)
	if err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0, len(records))
	for _, record := range records {
		game, err := record.toDomain()
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

func Insert(ctx context.Context, db *sql.DB, game domain.Game) error {
	record, err := toRecord(game)
	if err != nil {
		return err
	}
	record.CreatedAt = time.Now().UTC()

	const stmt = `
		INSERT INTO
			game (id, name, status, dealer_id, min_players, max_players, num_decks, players, deck, last_dealt_index, version, created_at)
		VALUES
			(:id, :name, :status, :dealer_id, :min_players, :max_players, :num_decks, :players, :deck, :last_dealt_index, :version, :created_at);`

	_, err = tql.Exec(ctx, db, stmt, record)
	return err
}

// update writes the full record back, guarded by the version the game
// was read at. Zero rows affected means another writer got there
// first and the caller's state is stale.
func update(ctx context.Context, db *sql.DB, game domain.Game) error {
	record, err := toRecord(game)
	if err != nil {
		return err
	}

	const stmt = `
		UPDATE
			game
		SET
			name = $1,
			status = $2,
			players = $3,
			deck = $4,
			last_dealt_index = $5,
			version = version + 1
		WHERE
			id = $6 AND version = $7;`

	result, err := tql.Exec(
		ctx,
		db,
		stmt,
		record.Name,
		record.Status,
		record.Players,
		record.Deck,
		record.LastDealtIndex,
		record.ID,
		record.Version,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrConflict
	}

	return nil
}

// Mutate runs a read-modify-write cycle under optimistic concurrency:
// load at a version, apply the mutation, write back guarded by that
// version, and retry from a fresh read when another writer won.
func Mutate(
	ctx context.Context,
	db *sql.DB,
	id uuid.UUID,
	apply func(*domain.Game) error,
) (domain.Game, error) {
	var lastErr error

	for attempt := 0; attempt < casRetries; attempt++ {
		game, err := Load(ctx, db, id)
		if err != nil {
			return domain.Game{}, err
		}

		if err := apply(&game); err != nil {
			return domain.Game{}, err
		}

		err = update(ctx, db, game)
		if err == nil {
			game.Version++
			return game, nil
		}

		if !errors.Is(err, ErrConflict) {
			return domain.Game{}, err
		}

		lastErr = err
	}

	return domain.Game{}, lastErr
}
