package game

import "github.com/peterkuimelis/regi/internal/log"

func (g *GameState) canDraw(p *Player) bool {
	return len(g.DrawPile) > 0 && len(p.Cards) < g.HandSize
}

// takeCard moves the front of the draw pile into p's hand.
func (g *GameState) takeCard(p *Player) Card {
	c := g.DrawPile[0]
	g.DrawPile = g.DrawPile[1:]
	p.Cards = append(p.Cards, c)
	return c
}

// drawOne draws a single card for p, logging the outcome.
func (g *GameState) drawOne(p *Player) bool {
	phase := PhaseName(g.AttackPhase)
	if !g.canDraw(p) {
		if len(g.DrawPile) == 0 {
			g.log(log.NewCannotDrawEvent(g.CurrentRound, phase, p.ID))
		}
		return false
	}
	c := g.takeCard(p)
	g.log(log.NewDrawEvent(g.CurrentRound, phase, p.ID, c.String()))
	return true
}

// refreshDiscards shuffles the discard pile and moves up to n cards from
// it to the bottom of the draw pile.
func (g *GameState) refreshDiscards(p *Player, n int) {
	g.shuffle(g.DiscardPile)
	count := min(n, len(g.DiscardPile))
	cut := len(g.DiscardPile) - count
	g.DrawPile = append(g.DrawPile, g.DiscardPile[cut:]...)
	g.DiscardPile = g.DiscardPile[:cut]
	g.log(log.NewReplenishEvent(g.CurrentRound, p.ID, count))
}

// refreshDraws deals up to n cards one at a time, starting with the
// active player and going round the table. A player who fails a draw is
// skipped from then on; dealing stops once everyone has.
func (g *GameState) refreshDraws(n int) {
	full := make([]bool, len(g.Players))
	for i, p := range g.Players {
		full[i] = !p.Alive
	}
	done := func() bool {
		for _, f := range full {
			if !f {
				return false
			}
		}
		return true
	}

	i := g.ActivePlayer
	for drawn := 0; drawn < n && !done(); i = (i + 1) % len(g.Players) {
		if full[i] {
			continue
		}
		if g.drawOne(g.Players[i]) {
			drawn++
		} else {
			full[i] = true
		}
	}
}

// attackEffects applies the hearts and diamonds powers of c that the
// current enemy is not immune to. Hearts resolve first.
func (g *GameState) attackEffects(p *Player, c Combo) {
	pow := c.Powers() &^ g.EnemyPower()
	n := c.BaseDamage()
	if pow&PowerReplenish != 0 {
		g.refreshDiscards(p, n)
	}
	if pow&PowerDraw != 0 {
		g.refreshDraws(n)
	}
}

// Block is the shield raised by spades against the current enemy.
func (g *GameState) Block() int {
	if g.EnemyPower()&PowerBlock != 0 {
		return 0
	}
	block := 0
	for _, c := range g.UsedPile {
		if c.Has(PowerBlock) {
			block += c.BaseDamage()
		}
	}
	return block
}

// IncomingDamage is the current enemy's attack after shields.
func (g *GameState) IncomingDamage() int {
	e, ok := g.CurrentEnemy()
	if !ok {
		return 0
	}
	return e.Card.Strength() - g.Block()
}

// resolveEnemyDeath retires the front enemy if it has no health left.
// An exact kill puts it on top of the draw pile, an overkill discards it.
// The engagement's used cards go to the discard pile either way.
func (g *GameState) resolveEnemyDeath(p *Player) bool {
	e, ok := g.CurrentEnemy()
	if !ok || !e.Dead() {
		return false
	}
	g.EnemyPile = g.EnemyPile[1:]

	exact := e.HP == 0
	if exact {
		g.DrawPile = append([]Card{e.Card}, g.DrawPile...)
	} else {
		g.DiscardPile = append(g.DiscardPile, e.Card)
	}
	for _, c := range g.UsedPile {
		g.DiscardPile = append(g.DiscardPile, c.Cards()...)
	}
	g.UsedPile = nil
	g.PastYieldsInARow = 0

	g.log(log.NewEnemyKillEvent(g.CurrentRound, p.ID, e.Card.String(), exact))
	return true
}
