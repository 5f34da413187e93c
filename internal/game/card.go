package game

import (
	"errors"
	"fmt"
)

// Rank is a card's face value. Joker is 0 and King is 13.
type Rank uint8

const (
	Joker Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suit is a card's suit. Glitch belongs to the joker alone.
type Suit uint8

const (
	Glitch Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

// NumRanks and NumSuits bound the index space: index = rank + NumRanks*suit.
const (
	NumRanks = 14
	NumSuits = 5
	NumIndex = NumRanks * NumSuits
)

// Power is a bit set of suit effects.
type Power uint8

const (
	PowerDouble    Power = 1 << iota // clubs
	PowerDraw                        // diamonds
	PowerReplenish                   // hearts
	PowerBlock                       // spades
	PowerNerf                        // joker
)

var ErrInvalidCard = errors.New("invalid card")

var rankLetters = [NumRanks]byte{'X', 'A', '2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K'}
var suitLetters = [NumSuits]byte{'!', 'C', 'D', 'H', 'S'}

// Card is an immutable (rank, suit) pair. The zero value is the joker.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard builds a card, rejecting out-of-range values and any pairing
// that breaks the rule rank == Joker iff suit == Glitch.
func NewCard(r Rank, s Suit) (Card, error) {
	if r >= NumRanks || s >= NumSuits {
		return Card{}, fmt.Errorf("%w: rank %d suit %d out of range", ErrInvalidCard, r, s)
	}
	if (r == Joker) != (s == Glitch) {
		return Card{}, fmt.Errorf("%w: rank %d cannot pair with suit %d", ErrInvalidCard, r, s)
	}
	return Card{rank: r, suit: s}, nil
}

// MustCard is NewCard for literals known to be valid.
func MustCard(r Rank, s Suit) Card {
	c, err := NewCard(r, s)
	if err != nil {
		panic(err)
	}
	return c
}

// CardFromIndex decodes an index produced by Index.
func CardFromIndex(n int) (Card, bool) {
	if n < 0 || n >= NumIndex {
		return Card{}, false
	}
	c, err := NewCard(Rank(n%NumRanks), Suit(n/NumRanks))
	if err != nil {
		return Card{}, false
	}
	return c, true
}

func (c Card) Rank() Rank { return c.rank }
func (c Card) Suit() Suit { return c.suit }

func (c Card) IsJoker() bool { return c.rank == Joker }

// Index returns rank + 14*suit.
func (c Card) Index() int {
	return int(c.rank) + NumRanks*int(c.suit)
}

// Strength is the card's attack value and, for enemies, their attack.
func (c Card) Strength() int {
	switch c.rank {
	case King:
		return 20
	case Queen:
		return 15
	case Jack:
		return 10
	default:
		return int(c.rank)
	}
}

// Power returns the effect bit of the card's suit.
func (c Card) Power() Power {
	switch c.suit {
	case Clubs:
		return PowerDouble
	case Diamonds:
		return PowerDraw
	case Hearts:
		return PowerReplenish
	case Spades:
		return PowerBlock
	default:
		return PowerNerf
	}
}

// Compare orders cards by suit, then rank.
func (c Card) Compare(o Card) int {
	switch {
	case c.suit != o.suit:
		if c.suit < o.suit {
			return -1
		}
		return 1
	case c.rank < o.rank:
		return -1
	case c.rank > o.rank:
		return 1
	}
	return 0
}

func (c Card) Less(o Card) bool {
	return c.Compare(o) < 0
}

func (c Card) String() string {
	return string([]byte{rankLetters[c.rank], suitLetters[c.suit]})
}

// HandStrength sums the strength of every card.
func HandStrength(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Strength()
	}
	return total
}
