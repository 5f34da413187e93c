package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/regi/internal/log"
)

// handSizeFor returns the hand limit for n players.
func handSizeFor(n int) (int, bool) {
	switch n {
	case 2:
		return 7, true
	case 3:
		return 6, true
	case 4:
		return 5, true
	}
	return 0, false
}

// jokersFor returns how many jokers are shuffled into the draw pile.
func jokersFor(n int) int {
	switch n {
	case 3:
		return 1
	case 4:
		return 2
	}
	return 0
}

// checkPlayers validates the seat count, ending the game if it is wrong.
func (g *GameState) checkPlayers() error {
	if g.Status != StatusLoading {
		return ErrNotLoading
	}
	hs, ok := handSizeFor(len(g.Players))
	if !ok {
		g.end(ReasonInvalidPlayerCount)
		return fmt.Errorf("%w: %d", ErrInvalidPlayerCount, len(g.Players))
	}
	g.HandSize = hs
	return nil
}

func (g *GameState) resetCounters() {
	g.PhaseCount = 0
	g.CurrentRound = 0
	g.ActivePlayer = 0
	g.AttackPhase = true
	g.PastYieldsInARow = 0
}

// Init deals a fresh game: the enemy queue, the shuffled draw pile and a
// full hand for every player.
func (g *GameState) Init() error {
	if err := g.checkPlayers(); err != nil {
		return err
	}
	g.resetCounters()
	g.DiscardPile = nil
	g.UsedPile = nil
	g.initEnemies()
	g.initDrawPile()

	for _, p := range g.Players {
		p.Alive = true
		p.Cards = nil
		for g.canDraw(p) {
			g.takeCard(p)
		}
	}

	g.log(log.NewStartGameEvent(len(g.Players), g.HandSize))
	return nil
}

// initEnemies queues the Jacks, then Queens, then Kings, each group of
// four shuffled on its own.
func (g *GameState) initEnemies() {
	g.EnemyPile = make([]Enemy, 0, NumEnemies)
	for _, r := range []Rank{Jack, Queen, King} {
		group := []Card{
			MustCard(r, Clubs),
			MustCard(r, Diamonds),
			MustCard(r, Hearts),
			MustCard(r, Spades),
		}
		g.shuffle(group)
		for _, c := range group {
			g.EnemyPile = append(g.EnemyPile, NewEnemy(c))
		}
	}
}

func (g *GameState) initDrawPile() {
	g.DrawPile = make([]Card, 0, MaxDeckSize)
	for _, s := range []Suit{Spades, Hearts, Diamonds, Clubs} {
		for r := Ace; r <= Ten; r++ {
			g.DrawPile = append(g.DrawPile, MustCard(r, s))
		}
	}
	for i := 0; i < jokersFor(len(g.Players)); i++ {
		g.DrawPile = append(g.DrawPile, Card{})
	}
	g.shuffle(g.DrawPile)
}

// InitRandom deals a plausible mid-game table: some enemies already
// beaten and folded into the draw pile, partial hands, and a random
// discard pile. Used to fuzz the engine and the snapshot codec.
func (g *GameState) InitRandom() error {
	if err := g.Init(); err != nil {
		return err
	}

	killed := g.rng.Intn(NumEnemies)
	for _, e := range g.EnemyPile[:killed] {
		g.DrawPile = append(g.DrawPile, e.Card)
	}
	g.EnemyPile = g.EnemyPile[killed:]

	for _, p := range g.Players {
		g.DrawPile = append(g.DrawPile, p.Cards...)
		p.Cards = nil
	}
	g.shuffle(g.DrawPile)

	for _, p := range g.Players {
		size := g.rng.Intn(g.HandSize + 1)
		for len(p.Cards) < size && g.canDraw(p) {
			g.takeCard(p)
		}
	}

	if len(g.DrawPile) > 0 {
		n := g.rng.Intn(len(g.DrawPile))
		g.DiscardPile = append(g.DiscardPile, g.DrawPile[:n]...)
		g.DrawPile = slices.Clone(g.DrawPile[n:])
	}

	g.ActivePlayer = g.rng.Intn(len(g.Players))
	return nil
}

// InitFromSnapshot loads the table from a decoded snapshot. The seated
// player count must match the snapshot.
func (g *GameState) InitFromSnapshot(s *Snapshot) error {
	if g.Status != StatusLoading {
		return ErrNotLoading
	}
	if s.NumPlayers != len(g.Players) {
		g.end(ReasonInvalidPlayerCount)
		return fmt.Errorf("%w: snapshot has %d, table has %d", ErrInvalidPlayerCount, s.NumPlayers, len(g.Players))
	}
	if err := g.checkPlayers(); err != nil {
		return err
	}

	g.resetCounters()
	g.ActivePlayer = s.ActivePlayer
	g.AttackPhase = s.AttackPhase
	g.PastYieldsInARow = s.PastYieldsInARow

	g.EnemyPile = slices.Clone(s.EnemyPile)
	g.DrawPile = slices.Clone(s.DrawPile)
	g.DiscardPile = slices.Clone(s.DiscardPile)
	g.UsedPile = make([]Combo, len(s.UsedPile))
	for i, c := range s.UsedPile {
		g.UsedPile[i] = NewCombo(c.Cards()...)
	}
	for i, p := range g.Players {
		p.Alive = true
		p.Cards = slices.Clone(s.Hands[i])
	}

	g.log(log.NewStartGameEvent(len(g.Players), g.HandSize))
	return nil
}

// Setup hands every player to its strategy and starts the game. Any
// failure ends the game with ReasonInvalidPlayerSetup.
func (g *GameState) Setup() error {
	switch g.Status {
	case StatusEnded:
		return ErrGameEnded
	case StatusRunning:
		return ErrNotLoading
	}
	if g.HandSize == 0 {
		g.end(ReasonInvalidPlayerSetup)
		return fmt.Errorf("%w: table not dealt", ErrInvalidPlayerSetup)
	}

	for _, p := range g.Players {
		if err := g.setupPlayer(p); err != nil {
			g.end(ReasonInvalidPlayerSetup)
			return fmt.Errorf("%w: player %d: %v", ErrInvalidPlayerSetup, p.ID, err)
		}
	}

	g.Status = StatusRunning
	return nil
}

func (g *GameState) setupPlayer(p *Player) error {
	switch {
	case !p.Alive:
		return fmt.Errorf("not alive")
	case p.Strategy == nil:
		return fmt.Errorf("no strategy")
	case len(p.Cards) > g.HandSize:
		return fmt.Errorf("holds %d cards, limit %d", len(p.Cards), g.HandSize)
	}
	return p.Strategy.Setup(p, g)
}
