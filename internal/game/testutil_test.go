package game

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/regi/internal/log"
)

// ScriptedStrategy is a Strategy that follows a predefined script of choices.
// Used in tests to deterministically drive the game. Once a script runs
// out it falls back to DamageStrategy.
type ScriptedStrategy struct {
	t *testing.T

	attacks []scriptedPick
	atkPos  int

	defenses []scriptedPick
	defPos   int

	redirects []int
	redPos    int

	setupErr error
	fallback DamageStrategy
}

// scriptedPick selects a combo by its cards, or returns index directly
// when raw is set.
type scriptedPick struct {
	cards []Card
	raw   bool
	index int
}

func NewScriptedStrategy(t *testing.T) *ScriptedStrategy {
	return &ScriptedStrategy{t: t}
}

// AddAttack plays the combo made of exactly these cards. No cards means yield.
func (s *ScriptedStrategy) AddAttack(cards ...Card) *ScriptedStrategy {
	s.attacks = append(s.attacks, scriptedPick{cards: cards})
	return s
}

// AddAttackIndex answers the next attack with a raw index.
func (s *ScriptedStrategy) AddAttackIndex(i int) *ScriptedStrategy {
	s.attacks = append(s.attacks, scriptedPick{raw: true, index: i})
	return s
}

func (s *ScriptedStrategy) AddDefense(cards ...Card) *ScriptedStrategy {
	s.defenses = append(s.defenses, scriptedPick{cards: cards})
	return s
}

func (s *ScriptedStrategy) AddDefenseIndex(i int) *ScriptedStrategy {
	s.defenses = append(s.defenses, scriptedPick{raw: true, index: i})
	return s
}

func (s *ScriptedStrategy) AddRedirect(player int) *ScriptedStrategy {
	s.redirects = append(s.redirects, player)
	return s
}

func (s *ScriptedStrategy) FailSetup(err error) *ScriptedStrategy {
	s.setupErr = err
	return s
}

func (s *ScriptedStrategy) Setup(p *Player, g *GameState) error {
	return s.setupErr
}

func (s *ScriptedStrategy) find(combos []Combo, pick scriptedPick) int {
	if pick.raw {
		return pick.index
	}
	for i, c := range combos {
		if sameCards(c.Cards(), pick.cards) {
			return i
		}
	}
	s.t.Fatalf("scripted combo %v not among %v", NewCombo(pick.cards...), combos)
	return NoChoice
}

func (s *ScriptedStrategy) AttackIndex(combos []Combo, p *Player, yieldAllowed bool, g *GameState) int {
	if s.atkPos >= len(s.attacks) {
		return s.fallback.AttackIndex(combos, p, yieldAllowed, g)
	}
	pick := s.attacks[s.atkPos]
	s.atkPos++
	return s.find(combos, pick)
}

func (s *ScriptedStrategy) DefenseIndex(combos []Combo, p *Player, damage int, g *GameState) int {
	if s.defPos >= len(s.defenses) {
		return s.fallback.DefenseIndex(combos, p, damage, g)
	}
	pick := s.defenses[s.defPos]
	s.defPos++
	return s.find(combos, pick)
}

func (s *ScriptedStrategy) RedirectIndex(p *Player, g *GameState) int {
	if s.redPos >= len(s.redirects) {
		return s.fallback.RedirectIndex(p, g)
	}
	r := s.redirects[s.redPos]
	s.redPos++
	return r
}

func sameCards(a, b []Card) bool {
	return slices.Equal(sortedHand(a), sortedHand(b))
}

// cards parses a space separated list like "5C TD X! AS".
func cards(t *testing.T, s string) []Card {
	t.Helper()
	var out []Card
	for _, f := range strings.Fields(s) {
		require.Len(t, f, 2, "card %q", f)
		r := strings.IndexByte(string(rankLetters[:]), f[0])
		u := strings.IndexByte(string(suitLetters[:]), f[1])
		require.True(t, r >= 0 && u >= 0, "card %q", f)
		c, err := NewCard(Rank(r), Suit(u))
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func card(t *testing.T, s string) Card {
	t.Helper()
	return cards(t, s)[0]
}

// loadTable seats one strategy per hand in s, loads s, and starts the game.
func loadTable(t *testing.T, s *Snapshot, strategies ...Strategy) (*GameState, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g := NewGame(GameConfig{Logger: logger, Seed: 1})
	for _, st := range strategies {
		_, err := g.AddPlayer(st)
		require.NoError(t, err)
	}
	s.NumPlayers = len(strategies)
	require.NoError(t, g.InitFromSnapshot(s))
	require.NoError(t, g.Setup())
	return g, logger
}

// runToCompletion runs a game and fails the test if it errors.
func runToCompletion(t *testing.T, g *GameState) EndReason {
	t.Helper()
	reason, err := g.Run()
	require.NoError(t, err)
	require.True(t, g.Ended())
	return reason
}
