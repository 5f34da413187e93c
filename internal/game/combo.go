package game

import "strings"

// MaxComboRankSum caps the summed ranks of a multi-card same-rank combo.
const MaxComboRankSum = 10

// Combo is a group of cards played together. The empty combo is a yield.
type Combo struct {
	cards  []Card
	mask   uint32 // positions in the sorted hand the combo was built from
	damage int
	powers Power
}

// NewCombo copies cards into a combo with details loaded.
func NewCombo(cards ...Card) Combo {
	c := Combo{cards: append([]Card(nil), cards...)}
	c.LoadDetails()
	return c
}

func (c Combo) Cards() []Card { return c.cards }
func (c Combo) Len() int      { return len(c.cards) }
func (c Combo) IsYield() bool { return len(c.cards) == 0 }
func (c Combo) Mask() uint32  { return c.mask }

// BaseDamage is the summed strength recorded by LoadDetails.
func (c Combo) BaseDamage() int { return c.damage }

// Powers is the OR of suit powers recorded by LoadDetails.
func (c Combo) Powers() Power { return c.powers }

func (c Combo) Has(p Power) bool { return c.powers&p != 0 }

// Valid reports whether the combo may be played as an attack.
func (c Combo) Valid(yieldAllowed bool) bool {
	switch len(c.cards) {
	case 0:
		return yieldAllowed
	case 1:
		return true
	}

	for _, card := range c.cards {
		if card.IsJoker() {
			return false
		}
	}

	// animal companion: an ace pairs with anything
	if len(c.cards) == 2 && (c.cards[0].Rank() == Ace || c.cards[1].Rank() == Ace) {
		return true
	}

	rank := c.cards[0].Rank()
	sum := 0
	for _, card := range c.cards {
		if card.Rank() != rank || card.Rank() == Ace {
			return false
		}
		sum += int(card.Rank())
	}
	return sum <= MaxComboRankSum
}

// LoadDetails computes damage and powers. Calling it again is harmless.
func (c *Combo) LoadDetails() {
	c.damage = 0
	c.powers = 0
	for _, card := range c.cards {
		c.damage += card.Strength()
		c.powers |= card.Power()
	}
}

// BaseDefense is the summed strength, regardless of legality or loading.
func (c Combo) BaseDefense() int {
	return HandStrength(c.cards)
}

// Equal compares card sequences.
func (c Combo) Equal(o Combo) bool {
	if len(c.cards) != len(o.cards) {
		return false
	}
	for i := range c.cards {
		if c.cards[i] != o.cards[i] {
			return false
		}
	}
	return true
}

func (c Combo) String() string {
	if len(c.cards) == 0 {
		return "(yield)"
	}
	parts := make([]string, len(c.cards))
	for i, card := range c.cards {
		parts[i] = card.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// push and pop drive the in-place search.
func (c *Combo) push(card Card, bit uint32) {
	c.cards = append(c.cards, card)
	c.mask |= bit
}

func (c *Combo) pop(bit uint32) {
	c.cards = c.cards[:len(c.cards)-1]
	c.mask &^= bit
}

func (c Combo) clone() Combo {
	return Combo{cards: append([]Card(nil), c.cards...), mask: c.mask}
}
