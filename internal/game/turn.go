package game

import (
	"fmt"

	"github.com/peterkuimelis/regi/internal/log"
)

// Run steps the game until it ends and returns the reason.
func (g *GameState) Run() (EndReason, error) {
	if g.Status != StatusRunning {
		return g.Reason, fmt.Errorf("run: game is %s", g.Status)
	}
	for g.Running() {
		if err := g.Step(); err != nil {
			return g.Reason, err
		}
	}
	g.log(log.NewPostGameEvent(g.CurrentRound, g.PhaseCount, len(g.EnemyPile)))
	return g.Reason, nil
}

// Step plays exactly one phase, attack or defense, for the active player.
func (g *GameState) Step() error {
	switch g.Status {
	case StatusEnded:
		return ErrGameEnded
	case StatusLoading:
		return fmt.Errorf("step: game is %s", g.Status)
	}

	if len(g.EnemyPile) == 0 {
		g.end(ReasonNoEnemies)
		return nil
	}
	p := g.Active()
	if !p.Alive {
		g.end(ReasonPlayerDead)
		return nil
	}

	g.log(log.NewStateEvent(g.CurrentRound, PhaseName(g.AttackPhase), p.ID, g.Snapshot().Encode()))
	g.PhaseCount++
	if g.AttackPhase {
		g.attackPhase(p)
	} else {
		g.defensePhase(p)
	}
	return nil
}

// attackPhase resolves one attack. If the enemy dies the same player
// attacks the next one; otherwise the enemy strikes back.
func (g *GameState) attackPhase(p *Player) {
	if g.resolveEnemyDeath(p) {
		g.checkEnemies()
		return
	}

	enemy := &g.EnemyPile[0]
	g.log(log.NewTurnStartEvent(g.CurrentRound, p.ID, enemy.Card.String(), enemy.HP))

	yieldAllowed := g.YieldAllowed()
	combos := AttackCombos(p.Cards, yieldAllowed)
	i := p.Strategy.AttackIndex(combos, p, yieldAllowed, g)
	if i < 0 || i >= len(combos) {
		g.end(ReasonAttackFailed)
		return
	}
	c := combos[i]

	p.RemoveCards(c.Cards())
	if c.IsYield() {
		g.PastYieldsInARow++
	} else {
		g.UsedPile = append(g.UsedPile, c)
		g.PastYieldsInARow = 0
	}

	g.attackEffects(p, c)
	dmg := EffectiveDamage(c, g)
	enemy.HP -= dmg
	g.log(log.NewAttackEvent(g.CurrentRound, p.ID, c.String(), enemy.Card.String(), dmg, enemy.HP))

	if g.resolveEnemyDeath(p) {
		g.checkEnemies()
		return
	}
	g.AttackPhase = false
}

func (g *GameState) checkEnemies() {
	if len(g.EnemyPile) == 0 {
		g.end(ReasonNoEnemies)
	}
}

// defensePhase makes the active player absorb the enemy's attack.
func (g *GameState) defensePhase(p *Player) {
	enemy := g.EnemyPile[0]
	damage := g.IncomingDamage()
	if damage <= 0 {
		g.log(log.NewFullBlockEvent(g.CurrentRound, p.ID, enemy.Card.String(), g.Block()))
		g.endTurn(p)
		return
	}

	if total := p.HandStrength(); total < damage {
		g.log(log.NewFailBlockEvent(g.CurrentRound, p.ID, damage, total))
		p.Alive = false
		g.end(ReasonBlockFailed)
		return
	}

	combos := DefenseCombos(p.Cards, damage)
	i := p.Strategy.DefenseIndex(combos, p, damage, g)
	if i == NoChoice {
		g.redirect(p)
		return
	}
	if i < 0 || i >= len(combos) {
		p.Alive = false
		g.end(ReasonBlockFailed)
		return
	}

	c := combos[i]
	p.RemoveCards(c.Cards())
	g.DiscardPile = append(g.DiscardPile, c.Cards()...)
	g.log(log.NewDefendEvent(g.CurrentRound, p.ID, c.String(), damage))
	g.endTurn(p)
}

// redirect passes the engagement to the teammate p's strategy names.
// The chosen player starts an attack phase against the same enemy.
func (g *GameState) redirect(p *Player) {
	to := p.Strategy.RedirectIndex(p, g)
	if to < 0 || to >= len(g.Players) || to == p.ID || !g.Players[to].Alive {
		p.Alive = false
		g.end(ReasonRedirectFailed)
		return
	}
	g.log(log.NewRedirectEvent(g.CurrentRound, p.ID, to))
	g.ActivePlayer = to
	g.AttackPhase = true
}

// endTurn passes play to the next seat.
func (g *GameState) endTurn(p *Player) {
	g.log(log.NewTurnEndEvent(g.CurrentRound, p.ID))
	g.AttackPhase = true
	g.ActivePlayer = (g.ActivePlayer + 1) % len(g.Players)
	if g.ActivePlayer == 0 {
		g.CurrentRound++
	}
}
