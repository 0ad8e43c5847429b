package storage

import (
	"math/rand"
	"testing"

	"cardtable/internal/modules/game/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_DecodePlayers_Accepts_Canonical_Array(t *testing.T) {
	id := uuid.New()

	players, err := decodePlayers(`[{"id":"` + id.String() + `","name":"alice","hand":[]}]`)

	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, id, players[0].ID)
	require.Equal(t, "alice", players[0].Name)
	require.Empty(t, players[0].Hand)
}

func Test_DecodePlayers_Accepts_Legacy_Double_Encoded_Rows(t *testing.T) {
	id := uuid.New()

	// Some rows written by the old client hold the array serialized
	// as a JSON string.
	raw := `"[{\"id\":\"` + id.String() + `\",\"name\":\"bob\",\"hand\":[]}]"`

	players, err := decodePlayers(raw)

	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "bob", players[0].Name)
}

func Test_DecodePlayers_Fails_On_Malformed_Input(t *testing.T) {
	_, err := decodePlayers(`{"not":"an array"}`)
	require.Error(t, err)

	_, err = decodePlayers(`"not even nested json"`)
	require.Error(t, err)
}

func Test_DecodePlayers_Treats_Empty_And_Null_As_No_Players(t *testing.T) {
	players, err := decodePlayers("")
	require.NoError(t, err)
	require.Empty(t, players)

	players, err = decodePlayers("null")
	require.NoError(t, err)
	require.Empty(t, players)
}

func Test_GameRecord_Round_Trips_Through_Storage_Encoding(t *testing.T) {
	dealer := domain.Player{ID: uuid.New(), Name: "dealer"}
	game := domain.NewGame("round trip", dealer, 2, 5, 1)
	game.Shuffle(rand.New(rand.NewSource(7)))

	_, err := game.Deal(domain.FaceDown)
	require.NoError(t, err)

	record, err := toRecord(game)
	require.NoError(t, err)

	decoded, err := record.toDomain()
	require.NoError(t, err)

	require.Equal(t, game.ID, decoded.ID)
	require.Equal(t, game.Name, decoded.Name)
	require.Equal(t, game.Status, decoded.Status)
	require.Equal(t, game.DealerID, decoded.DealerID)
	require.Equal(t, game.Players, decoded.Players)
	require.Equal(t, game.Deck, decoded.Deck)
	require.NotNil(t, decoded.LastDealtIndex)
	require.Equal(t, *game.LastDealtIndex, *decoded.LastDealtIndex)
	require.Equal(t, game.Version, decoded.Version)
}
