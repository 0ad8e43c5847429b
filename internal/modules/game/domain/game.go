package domain

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

const StatusOpen = "open"

var (
	ErrDeckEmpty       = errors.New("no cards left in the deck")
	ErrNoPlayers       = errors.New("game has no seated players")
	ErrAlreadySeated   = errors.New("player is already seated")
	ErrGameFull        = errors.New("game is at max players")
	ErrGameNotOpen     = errors.New("game is not open")
	ErrNotDealer       = errors.New("operation allowed for the dealer only")
	ErrPlayerNotSeated = errors.New("player is not seated at this game")
)

type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Hand []Card    `json:"hand"`
}

// Game is the single persisted aggregate. Players and Deck live in
// jsonb columns; Version is the optimistic-concurrency token every
// write compares against.
type Game struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	DealerID       uuid.UUID `json:"dealer_id"`
	MinPlayers     int       `json:"min_players"`
	MaxPlayers     int       `json:"max_players"`
	NumDecks       int       `json:"num_decks"`
	Players        []Player  `json:"players"`
	Deck           []Card    `json:"deck"`
	LastDealtIndex *int      `json:"last_dealt_index"`
	Version        int64     `json:"version"`
}

func NewGame(name string, dealer Player, minPlayers, maxPlayers, numDecks int) Game {
	dealer.Hand = []Card{}

	return Game{
		ID:         uuid.New(),
		Name:       name,
		Status:     StatusOpen,
		DealerID:   dealer.ID,
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
		NumDecks:   numDecks,
		Players:    []Player{dealer},
		Deck:       []Card{},
	}
}

func (g *Game) IsDealer(userID uuid.UUID) bool {
	return g.DealerID == userID
}

// Seat returns the seated player entry for the given identity.
func (g *Game) Seat(userID uuid.UUID) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == userID {
			return p, true
		}
	}

	return Player{}, false
}

// Shuffle replaces the deck with a freshly enumerated, uniformly
// permuted 52-card deck and clears the round-robin marker. A single
// deck is built regardless of NumDecks, matching the table rules the
// lobby advertises.
func (g *Game) Shuffle(rng *rand.Rand) {
	g.Deck = ShuffledDeck(rng)
	g.LastDealtIndex = nil
}

// Deal pops the top card off the deck, tags it with the requested
// visibility, and hands it to the next player in round-robin order.
func (g *Game) Deal(visibility Visibility) (Player, error) {
	if len(g.Players) == 0 {
		return Player{}, ErrNoPlayers
	}

	if len(g.Deck) == 0 {
		return Player{}, ErrDeckEmpty
	}

	next := 0
	if g.LastDealtIndex != nil {
		next = (*g.LastDealtIndex + 1) % len(g.Players)
	}

	card := g.Deck[len(g.Deck)-1]
	card.Type = visibility

	g.Deck = g.Deck[:len(g.Deck)-1]
	g.Players[next].Hand = append(g.Players[next].Hand, card)
	g.LastDealtIndex = &next

	return g.Players[next], nil
}

// EndHand clears every hand and the deck, returning the game to its
// pre-deal state.
func (g *Game) EndHand() {
	for i := range g.Players {
		g.Players[i].Hand = []Card{}
	}

	g.Deck = []Card{}
	g.LastDealtIndex = nil
}

// RevealHand flips every card in the given player's hand face-up.
func (g *Game) RevealHand(playerID uuid.UUID) error {
	for i := range g.Players {
		if g.Players[i].ID != playerID {
			continue
		}

		for j := range g.Players[i].Hand {
			g.Players[i].Hand[j].Type = FaceUp
		}

		return nil
	}

	return ErrPlayerNotSeated
}

// TogglePeek inverts the peeked flag on every card in the given
// player's hand. The flag is persisted with the record, so it is
// readable by every client of the game - a known leak inherited from
// the data model.
func (g *Game) TogglePeek(playerID uuid.UUID) error {
	for i := range g.Players {
		if g.Players[i].ID != playerID {
			continue
		}

		for j := range g.Players[i].Hand {
			g.Players[i].Hand[j].Peeked = !g.Players[i].Hand[j].Peeked
		}

		return nil
	}

	return ErrPlayerNotSeated
}

// Join seats the given identity with an empty hand. A seat is refused
// when the identity is already seated, the table is full, or the game
// is no longer open.
func (g *Game) Join(player Player) error {
	if g.Status != StatusOpen {
		return ErrGameNotOpen
	}

	if _, seated := g.Seat(player.ID); seated {
		return ErrAlreadySeated
	}

	if g.MaxPlayers > 0 && len(g.Players) >= g.MaxPlayers {
		return ErrGameFull
	}

	player.Hand = []Card{}
	g.Players = append(g.Players, player)

	return nil
}
