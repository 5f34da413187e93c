package game

import (
	"errors"
	"math/rand"
)

// NoChoice is returned by a Strategy that declines to pick.
const NoChoice = -1

// Strategy decides for a player. Implementations index into the slices
// they are given; anything out of range (other than NoChoice) is treated
// as a broken contract and ends the game.
type Strategy interface {
	// Setup is called once per seated player before play starts.
	Setup(p *Player, g *GameState) error
	AttackIndex(combos []Combo, p *Player, yieldAllowed bool, g *GameState) int
	DefenseIndex(combos []Combo, p *Player, damage int, g *GameState) int
	// RedirectIndex names the player who takes over the engagement.
	RedirectIndex(p *Player, g *GameState) int
}

// EffectiveDamage is the damage c would deal to the current enemy,
// doubled by clubs unless the enemy is immune.
func EffectiveDamage(c Combo, g *GameState) int {
	dmg := c.BaseDamage()
	if c.Has(PowerDouble) && g.EnemyPower()&PowerDouble == 0 {
		dmg *= 2
	}
	return dmg
}

// otherLiving lists living players other than p.
func otherLiving(p *Player, g *GameState) []int {
	var ids []int
	for _, id := range g.LivingPlayers() {
		if id != p.ID {
			ids = append(ids, id)
		}
	}
	return ids
}

// --- RandomStrategy ---

// RandomStrategy picks uniformly among its options.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Setup(p *Player, g *GameState) error {
	if s.rng == nil {
		s.rng = g.Rand()
	}
	return nil
}

func (s *RandomStrategy) pick(n int) int {
	if n == 0 {
		return NoChoice
	}
	return s.rng.Intn(n)
}

func (s *RandomStrategy) AttackIndex(combos []Combo, p *Player, yieldAllowed bool, g *GameState) int {
	return s.pick(len(combos))
}

func (s *RandomStrategy) DefenseIndex(combos []Combo, p *Player, damage int, g *GameState) int {
	return s.pick(len(combos))
}

func (s *RandomStrategy) RedirectIndex(p *Player, g *GameState) int {
	others := otherLiving(p, g)
	i := s.pick(len(others))
	if i == NoChoice {
		return NoChoice
	}
	return others[i]
}

// --- DamageStrategy ---

// DamageStrategy kills with the least overkill it can, otherwise hits as
// hard as possible, and defends with the cheapest sufficient discard.
type DamageStrategy struct{}

func NewDamageStrategy() *DamageStrategy {
	return &DamageStrategy{}
}

var errNoTable = errors.New("player is not seated")

func (s *DamageStrategy) Setup(p *Player, g *GameState) error {
	if p == nil || p.ID < 0 || p.ID >= len(g.Players) {
		return errNoTable
	}
	return nil
}

func (s *DamageStrategy) AttackIndex(combos []Combo, p *Player, yieldAllowed bool, g *GameState) int {
	if len(combos) == 0 {
		return NoChoice
	}
	enemy, _ := g.CurrentEnemy()
	hp := enemy.HP

	best := 0
	dmg := EffectiveDamage(combos[0], g)
	for i := 1; i < len(combos); i++ {
		t := EffectiveDamage(combos[i], g)
		if t >= hp {
			// a kill beats a non-kill; between kills, less overkill wins
			if dmg < hp || t < dmg {
				best, dmg = i, t
			}
		} else if t > dmg {
			best, dmg = i, t
		}
	}
	return best
}

func (s *DamageStrategy) DefenseIndex(combos []Combo, p *Player, damage int, g *GameState) int {
	if len(combos) == 0 {
		return NoChoice
	}
	best := 0
	cost := combos[0].BaseDefense()
	for i := 1; i < len(combos); i++ {
		if d := combos[i].BaseDefense(); d < cost {
			best, cost = i, d
		}
	}
	return best
}

// RedirectIndex hands the engagement to the best-stocked teammate.
func (s *DamageStrategy) RedirectIndex(p *Player, g *GameState) int {
	best, most := NoChoice, -1
	for _, id := range otherLiving(p, g) {
		if h := g.Players[id].HandStrength(); h > most {
			best, most = id, h
		}
	}
	return best
}
