package game

import (
	"math/rand"
	"slices"

	"github.com/peterkuimelis/regi/internal/log"
)

// Enemy is a face card in the enemy queue with its remaining health.
type Enemy struct {
	Card Card
	HP   int
}

// NewEnemy returns an enemy at full health, twice its strength.
func NewEnemy(c Card) Enemy {
	return Enemy{Card: c, HP: 2 * c.Strength()}
}

func (e Enemy) Dead() bool { return e.HP <= 0 }

// Player represents one seat at the table.
type Player struct {
	ID       int
	Alive    bool
	Cards    []Card
	Strategy Strategy // not owned; may be shared between players
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Cards)
}

// HandStrength returns the summed strength of the hand.
func (p *Player) HandStrength() int {
	return HandStrength(p.Cards)
}

// RemoveCards takes each card of played out of the hand.
func (p *Player) RemoveCards(played []Card) {
	for _, c := range played {
		if i := slices.Index(p.Cards, c); i >= 0 {
			p.Cards = slices.Delete(p.Cards, i, i+1)
		}
	}
}

// GameState is the full table. It is not safe for concurrent use.
type GameState struct {
	Players     []*Player
	DrawPile    []Card  // front is drawn next
	DiscardPile []Card  // unordered
	EnemyPile   []Enemy // front is the current enemy
	UsedPile    []Combo // combos played against the current enemy

	HandSize         int
	PhaseCount       int
	CurrentRound     int
	ActivePlayer     int
	AttackPhase      bool
	PastYieldsInARow int

	Status GameStatus
	Reason EndReason

	Logger log.EventLogger
	rng    *rand.Rand
}

// GameConfig configures a new game.
type GameConfig struct {
	Logger log.EventLogger
	Seed   int64      // RNG seed, used when Rand is nil
	Rand   *rand.Rand // optional shared source
}

// NewGame creates an empty game in StatusLoading. Add players, then call
// one of the Init methods and Setup.
func NewGame(cfg GameConfig) *GameState {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	return &GameState{
		Logger:      logger,
		rng:         rng,
		AttackPhase: true,
	}
}

// Rand exposes the game's random source.
func (g *GameState) Rand() *rand.Rand {
	return g.rng
}

// AddPlayer seats a player driven by s. Only allowed while loading.
func (g *GameState) AddPlayer(s Strategy) (*Player, error) {
	if g.Status != StatusLoading {
		return nil, ErrNotLoading
	}
	if len(g.Players) >= MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}
	p := &Player{ID: len(g.Players), Alive: true, Strategy: s}
	g.Players = append(g.Players, p)
	return p, nil
}

func (g *GameState) Running() bool { return g.Status == StatusRunning }
func (g *GameState) Ended() bool   { return g.Status == StatusEnded }

// Active returns the player whose phase it is.
func (g *GameState) Active() *Player {
	return g.Players[g.ActivePlayer]
}

// CurrentEnemy returns the front of the enemy queue.
func (g *GameState) CurrentEnemy() (Enemy, bool) {
	if len(g.EnemyPile) == 0 {
		return Enemy{}, false
	}
	return g.EnemyPile[0], true
}

// YieldAllowed reports whether the active player may pass this attack.
func (g *GameState) YieldAllowed() bool {
	return g.PastYieldsInARow < len(g.Players)-1
}

// JokerPlayed reports whether the current engagement has been nerfed.
func (g *GameState) JokerPlayed() bool {
	for _, c := range g.UsedPile {
		if c.Has(PowerNerf) {
			return true
		}
	}
	return false
}

// EnemyPower is the current enemy's suit power, unless a joker cancelled it.
func (g *GameState) EnemyPower() Power {
	e, ok := g.CurrentEnemy()
	if !ok || g.JokerPlayed() {
		return 0
	}
	return e.Card.Power()
}

// EnemiesAlive reports whether any enemy still has health.
func (g *GameState) EnemiesAlive() bool {
	for _, e := range g.EnemyPile {
		if !e.Dead() {
			return true
		}
	}
	return false
}

// LivingPlayers returns the ids of players still alive.
func (g *GameState) LivingPlayers() []int {
	var ids []int
	for _, p := range g.Players {
		if p.Alive {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (g *GameState) log(event log.GameEvent) {
	event.Round = g.CurrentRound
	g.Logger.Log(event)
}

// end moves the game to StatusEnded. Later calls keep the first reason.
func (g *GameState) end(reason EndReason) {
	if g.Status == StatusEnded {
		return
	}
	g.Status = StatusEnded
	g.Reason = reason
	g.log(log.NewEndGameEvent(g.CurrentRound, reason.String(), reason.Won()))
}

func (g *GameState) shuffle(cards []Card) {
	g.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
