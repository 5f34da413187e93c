package game

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Snapshot separators, outermost first.
const (
	sepSection = '!'
	sepGroup   = '#'
	sepItem    = ','
)

// Bounds enforced by DecodeSnapshot.
const (
	maxEnemyHP    = 40
	maxComboCards = 4
	maxHandTotal  = 9 // a player's hand holds at most maxHandTotal - players
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the portable state of a game between phases.
type Snapshot struct {
	Outcome          int // 0 running, 1 won, -1 lost
	AttackPhase      bool
	NumPlayers       int
	ActivePlayer     int
	PastYieldsInARow int
	Hands            [][]Card
	EnemyPile        []Enemy
	DrawPile         []Card
	DiscardPile      []Card
	UsedPile         []Combo
}

// Snapshot exports the current state.
func (g *GameState) Snapshot() *Snapshot {
	s := &Snapshot{
		AttackPhase:      g.AttackPhase,
		NumPlayers:       len(g.Players),
		ActivePlayer:     g.ActivePlayer,
		PastYieldsInARow: g.PastYieldsInARow,
		EnemyPile:        clonePile(g.EnemyPile),
		DrawPile:         clonePile(g.DrawPile),
		DiscardPile:      clonePile(g.DiscardPile),
	}
	if g.Ended() {
		s.Outcome = -1
		if !g.EnemiesAlive() {
			s.Outcome = 1
		}
	}
	for _, p := range g.Players {
		s.Hands = append(s.Hands, clonePile(p.Cards))
	}
	for _, c := range g.UsedPile {
		s.UsedPile = append(s.UsedPile, NewCombo(c.Cards()...))
	}
	return s
}

// Encode renders the snapshot in its compact text form.
func (s *Snapshot) Encode() string {
	var b strings.Builder

	writeInts(&b, sepGroup, s.Outcome, boolInt(s.AttackPhase), s.NumPlayers, s.ActivePlayer, s.PastYieldsInARow)
	b.WriteByte(sepSection)

	for i, hand := range s.Hands {
		if i > 0 {
			b.WriteByte(sepGroup)
		}
		b.WriteString(strconv.Itoa(len(hand)))
		b.WriteByte(sepGroup)
		writeCards(&b, sepItem, hand)
	}
	b.WriteByte(sepSection)

	b.WriteString(strconv.Itoa(len(s.EnemyPile)))
	b.WriteByte(sepSection)
	for i, e := range s.EnemyPile {
		if i > 0 {
			b.WriteByte(sepGroup)
		}
		writeInts(&b, sepItem, e.Card.Index(), e.HP)
	}
	b.WriteByte(sepSection)

	for _, pile := range [][]Card{s.DrawPile, s.DiscardPile} {
		b.WriteString(strconv.Itoa(len(pile)))
		b.WriteByte(sepSection)
		writeCards(&b, sepGroup, pile)
		b.WriteByte(sepSection)
	}

	b.WriteString(strconv.Itoa(len(s.UsedPile)))
	b.WriteByte(sepSection)
	for i, c := range s.UsedPile {
		if i > 0 {
			b.WriteByte(sepGroup)
		}
		b.WriteString(strconv.Itoa(c.Len()))
		b.WriteByte(sepGroup)
		writeCards(&b, sepItem, c.Cards())
	}
	b.WriteByte(sepSection)

	return b.String()
}

func (s *Snapshot) String() string { return s.Encode() }

// clonePile copies s, mapping empty to nil so exported and decoded
// snapshots compare equal.
func clonePile[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func writeInts(b *strings.Builder, sep byte, vals ...int) {
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(strconv.Itoa(v))
	}
}

func writeCards(b *strings.Builder, sep byte, cards []Card) {
	for i, c := range cards {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(strconv.Itoa(c.Index()))
	}
}

// DecodeSnapshot parses an encoded snapshot. Every field is range checked
// and the whole input must be consumed; on any violation no snapshot is
// returned.
func DecodeSnapshot(text string) (*Snapshot, error) {
	r := &snapReader{s: text}
	s, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.s) {
		return nil, r.fail("trailing data")
	}
	return s, nil
}

type snapReader struct {
	s   string
	pos int
}

func (r *snapReader) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformedSnapshot, fmt.Sprintf(format, args...), r.pos)
}

func (r *snapReader) expect(sep byte) error {
	if r.pos >= len(r.s) || r.s[r.pos] != sep {
		return r.fail("expected %q", sep)
	}
	r.pos++
	return nil
}

// number reads a decimal integer in [lo, hi].
func (r *snapReader) number(lo, hi int) (int, error) {
	start := r.pos
	if r.pos < len(r.s) && r.s[r.pos] == '-' {
		r.pos++
	}
	digits := r.pos
	for r.pos < len(r.s) && r.s[r.pos] >= '0' && r.s[r.pos] <= '9' {
		r.pos++
	}
	if r.pos == digits || r.pos-digits > 4 {
		r.pos = start
		return 0, r.fail("expected number")
	}
	v, err := strconv.Atoi(r.s[start:r.pos])
	if err != nil {
		r.pos = start
		return 0, r.fail("expected number")
	}
	if v < lo || v > hi {
		r.pos = start
		return 0, r.fail("%d outside [%d,%d]", v, lo, hi)
	}
	return v, nil
}

func (r *snapReader) card() (Card, error) {
	n, err := r.number(0, NumIndex)
	if err != nil {
		return Card{}, err
	}
	c, ok := CardFromIndex(n)
	if !ok {
		return Card{}, r.fail("card index %d", n)
	}
	return c, nil
}

// cards reads n cards separated by sep.
func (r *snapReader) cards(n int, sep byte) ([]Card, error) {
	var cards []Card
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := r.expect(sep); err != nil {
				return nil, err
			}
		}
		c, err := r.card()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *snapReader) snapshot() (*Snapshot, error) {
	s := &Snapshot{}
	var err error

	if err = r.header(s); err != nil {
		return nil, err
	}
	if err = r.hands(s); err != nil {
		return nil, err
	}
	if err = r.enemies(s); err != nil {
		return nil, err
	}
	if s.DrawPile, err = r.pile(); err != nil {
		return nil, err
	}
	if s.DiscardPile, err = r.pile(); err != nil {
		return nil, err
	}
	if err = r.used(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *snapReader) header(s *Snapshot) error {
	var err error
	if s.Outcome, err = r.number(-1, 1); err != nil {
		return err
	}
	if err = r.expect(sepGroup); err != nil {
		return err
	}
	phase, err := r.number(0, 1)
	if err != nil {
		return err
	}
	s.AttackPhase = phase == 1
	if err = r.expect(sepGroup); err != nil {
		return err
	}
	if s.NumPlayers, err = r.number(MinPlayers, MaxPlayers); err != nil {
		return err
	}
	if err = r.expect(sepGroup); err != nil {
		return err
	}
	if s.ActivePlayer, err = r.number(0, s.NumPlayers-1); err != nil {
		return err
	}
	if err = r.expect(sepGroup); err != nil {
		return err
	}
	if s.PastYieldsInARow, err = r.number(0, s.NumPlayers-1); err != nil {
		return err
	}
	return r.expect(sepSection)
}

func (r *snapReader) hands(s *Snapshot) error {
	s.Hands = make([][]Card, s.NumPlayers)
	for i := range s.Hands {
		if i > 0 {
			if err := r.expect(sepGroup); err != nil {
				return err
			}
		}
		size, err := r.number(0, maxHandTotal-s.NumPlayers)
		if err != nil {
			return err
		}
		if err := r.expect(sepGroup); err != nil {
			return err
		}
		if s.Hands[i], err = r.cards(size, sepItem); err != nil {
			return err
		}
	}
	return r.expect(sepSection)
}

func (r *snapReader) enemies(s *Snapshot) error {
	n, err := r.number(0, NumEnemies)
	if err != nil {
		return err
	}
	if err := r.expect(sepSection); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := r.expect(sepGroup); err != nil {
				return err
			}
		}
		c, err := r.card()
		if err != nil {
			return err
		}
		if err := r.expect(sepItem); err != nil {
			return err
		}
		hp, err := r.number(-maxEnemyHP, maxEnemyHP)
		if err != nil {
			return err
		}
		s.EnemyPile = append(s.EnemyPile, Enemy{Card: c, HP: hp})
	}
	return r.expect(sepSection)
}

func (r *snapReader) pile() ([]Card, error) {
	n, err := r.number(0, MaxDeckSize)
	if err != nil {
		return nil, err
	}
	if err := r.expect(sepSection); err != nil {
		return nil, err
	}
	cards, err := r.cards(n, sepGroup)
	if err != nil {
		return nil, err
	}
	return cards, r.expect(sepSection)
}

func (r *snapReader) used(s *Snapshot) error {
	n, err := r.number(0, MaxDeckSize)
	if err != nil {
		return err
	}
	if err := r.expect(sepSection); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := r.expect(sepGroup); err != nil {
				return err
			}
		}
		size, err := r.number(1, maxComboCards)
		if err != nil {
			return err
		}
		if err := r.expect(sepGroup); err != nil {
			return err
		}
		cards, err := r.cards(size, sepItem)
		if err != nil {
			return err
		}
		s.UsedPile = append(s.UsedPile, NewCombo(cards...))
	}
	return r.expect(sepSection)
}
