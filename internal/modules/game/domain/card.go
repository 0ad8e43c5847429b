package domain

import (
	"fmt"
	"math/rand"
	"strings"
)

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var Values = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Visibility is assigned to a card at deal time.
type Visibility string

const (
	FaceUp   Visibility = "face-up"
	FaceDown Visibility = "face-down"
)

func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case FaceUp:
		return FaceUp, nil
	case FaceDown:
		return FaceDown, nil
	default:
		return "", fmt.Errorf("invalid visibility: '%s'", s)
	}
}

type Card struct {
	Suit   Suit       `json:"suit"`
	Value  string     `json:"value"`
	Image  string     `json:"image"`
	Type   Visibility `json:"type,omitempty"`
	Peeked bool       `json:"peeked,omitempty"`
}

// cardImageURL points at the public card image set the original
// client renders. The "10" value maps to the "0" image code.
func cardImageURL(value string, suit Suit) string {
	code := value
	if code == "10" {
		code = "0"
	}

	suitCode := strings.ToUpper(string(suit)[:1])
	return fmt.Sprintf("https://deckofcardsapi.com/static/img/%s%s.png", code, suitCode)
}

// NewDeck enumerates a single ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Values))
	for _, suit := range Suits {
		for _, value := range Values {
			deck = append(deck, Card{
				Suit:  suit,
				Value: value,
				Image: cardImageURL(value, suit),
			})
		}
	}

	return deck
}

// ShuffledDeck returns a fresh deck under a uniform permutation.
func ShuffledDeck(rng *rand.Rand) []Card {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
