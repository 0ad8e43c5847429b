package domain

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testGame(t *testing.T, playerCount int) Game {
	t.Helper()

	dealer := Player{ID: uuid.New(), Name: "dealer"}
	game := NewGame("test game", dealer, 2, 7, 1)

	for i := 1; i < playerCount; i++ {
		player := Player{ID: uuid.New(), Name: uuid.NewString()}
		require.NoError(t, game.Join(player))
	}

	return game
}

func Test_NewGame_Seats_Dealer_With_Empty_Hand(t *testing.T) {
	dealer := Player{ID: uuid.New(), Name: "dealer"}

	game := NewGame("test game", dealer, 2, 7, 1)

	require.Equal(t, StatusOpen, game.Status)
	require.Equal(t, dealer.ID, game.DealerID)
	require.Len(t, game.Players, 1)
	require.Empty(t, game.Players[0].Hand)
	require.Empty(t, game.Deck)
	require.Nil(t, game.LastDealtIndex)
}

func Test_Shuffle_Produces_52_Cards_Regardless_Of_Prior_Deck(t *testing.T) {
	game := testGame(t, 2)
	game.Deck = []Card{{Suit: Hearts, Value: "A"}}
	idx := 5
	game.LastDealtIndex = &idx

	game.Shuffle(rand.New(rand.NewSource(1)))

	require.Len(t, game.Deck, 52)
	require.Nil(t, game.LastDealtIndex)

	seen := map[Card]bool{}
	for _, card := range game.Deck {
		key := Card{Suit: card.Suit, Value: card.Value}
		require.False(t, seen[key])
		seen[key] = true
	}
}

func Test_Deal_Moves_One_Card_From_Deck_To_Exactly_One_Hand(t *testing.T) {
	game := testGame(t, 3)
	game.Shuffle(rand.New(rand.NewSource(1)))

	top := game.Deck[len(game.Deck)-1]

	recipient, err := game.Deal(FaceDown)
	require.NoError(t, err)

	require.Len(t, game.Deck, 51)
	require.Len(t, recipient.Hand, 1)
	require.Equal(t, top.Suit, recipient.Hand[0].Suit)
	require.Equal(t, top.Value, recipient.Hand[0].Value)
	require.Equal(t, FaceDown, recipient.Hand[0].Type)

	handCards := 0
	for _, p := range game.Players {
		handCards += len(p.Hand)
	}
	require.Equal(t, 1, handCards)
}

func Test_Deal_Selects_Recipients_Round_Robin(t *testing.T) {
	game := testGame(t, 3)
	game.Shuffle(rand.New(rand.NewSource(1)))

	// First deal with no prior marker goes to index 0.
	recipient, err := game.Deal(FaceUp)
	require.NoError(t, err)
	require.Equal(t, game.Players[0].ID, recipient.ID)
	require.Equal(t, 0, *game.LastDealtIndex)

	idx := 1
	game.LastDealtIndex = &idx
	recipient, err = game.Deal(FaceUp)
	require.NoError(t, err)
	require.Equal(t, game.Players[2].ID, recipient.ID)
	require.Equal(t, 2, *game.LastDealtIndex)

	// Dealing past the last seat wraps around to index 0.
	recipient, err = game.Deal(FaceUp)
	require.NoError(t, err)
	require.Equal(t, game.Players[0].ID, recipient.ID)
	require.Equal(t, 0, *game.LastDealtIndex)
}

func Test_Deal_From_Empty_Deck_Performs_No_Mutation(t *testing.T) {
	game := testGame(t, 2)

	_, err := game.Deal(FaceUp)
	require.ErrorIs(t, err, ErrDeckEmpty)

	require.Empty(t, game.Deck)
	require.Nil(t, game.LastDealtIndex)
	for _, p := range game.Players {
		require.Empty(t, p.Hand)
	}
}

func Test_Deal_With_No_Seated_Players_Fails(t *testing.T) {
	game := testGame(t, 2)
	game.Shuffle(rand.New(rand.NewSource(1)))
	game.Players = nil

	_, err := game.Deal(FaceUp)
	require.ErrorIs(t, err, ErrNoPlayers)
	require.Len(t, game.Deck, 52)
}

func Test_EndHand_Clears_Every_Hand_And_The_Deck(t *testing.T) {
	game := testGame(t, 3)
	game.Shuffle(rand.New(rand.NewSource(1)))

	for i := 0; i < 9; i++ {
		_, err := game.Deal(FaceDown)
		require.NoError(t, err)
	}

	game.EndHand()

	require.Empty(t, game.Deck)
	require.Nil(t, game.LastDealtIndex)
	for _, p := range game.Players {
		require.NotNil(t, p.Hand)
		require.Empty(t, p.Hand)
	}
}

func Test_RevealHand_Flips_Only_The_Target_Players_Cards(t *testing.T) {
	game := testGame(t, 2)
	game.Shuffle(rand.New(rand.NewSource(1)))

	for i := 0; i < 4; i++ {
		_, err := game.Deal(FaceDown)
		require.NoError(t, err)
	}

	target := game.Players[0]
	require.NoError(t, game.RevealHand(target.ID))

	for _, card := range game.Players[0].Hand {
		require.Equal(t, FaceUp, card.Type)
	}

	for _, card := range game.Players[1].Hand {
		require.Equal(t, FaceDown, card.Type)
	}
}

func Test_RevealHand_For_Unseated_Player_Fails(t *testing.T) {
	game := testGame(t, 2)

	err := game.RevealHand(uuid.New())
	require.ErrorIs(t, err, ErrPlayerNotSeated)
}

func Test_TogglePeek_Inverts_Peeked_On_The_Callers_Hand_Only(t *testing.T) {
	game := testGame(t, 2)
	game.Shuffle(rand.New(rand.NewSource(1)))

	for i := 0; i < 4; i++ {
		_, err := game.Deal(FaceDown)
		require.NoError(t, err)
	}

	caller := game.Players[0]
	require.NoError(t, game.TogglePeek(caller.ID))

	for _, card := range game.Players[0].Hand {
		require.True(t, card.Peeked)
	}
	for _, card := range game.Players[1].Hand {
		require.False(t, card.Peeked)
	}

	require.NoError(t, game.TogglePeek(caller.ID))
	for _, card := range game.Players[0].Hand {
		require.False(t, card.Peeked)
	}
}

func Test_Join_Seats_Player_With_Empty_Hand(t *testing.T) {
	game := testGame(t, 1)

	player := Player{ID: uuid.New(), Name: "joiner"}
	require.NoError(t, game.Join(player))

	require.Len(t, game.Players, 2)
	require.NotNil(t, game.Players[1].Hand)
	require.Empty(t, game.Players[1].Hand)
}

func Test_Join_Rejects_Already_Seated_Player(t *testing.T) {
	game := testGame(t, 2)

	err := game.Join(Player{ID: game.Players[1].ID, Name: "again"})
	require.ErrorIs(t, err, ErrAlreadySeated)
	require.Len(t, game.Players, 2)
}

func Test_Join_Rejects_When_Game_Is_Full(t *testing.T) {
	game := testGame(t, 7)

	err := game.Join(Player{ID: uuid.New(), Name: "late"})
	require.ErrorIs(t, err, ErrGameFull)
	require.Len(t, game.Players, 7)
}

func Test_Join_Rejects_When_Game_Is_Not_Open(t *testing.T) {
	game := testGame(t, 2)
	game.Status = "closed"

	err := game.Join(Player{ID: uuid.New(), Name: "late"})
	require.ErrorIs(t, err, ErrGameNotOpen)
}
