package mcp

import (
	"github.com/peterkuimelis/regi/internal/game"
)

// AgentStrategy implements game.Strategy by sending decisions to the MCP
// session's pending channel and blocking on a response channel.
type AgentStrategy struct {
	session    *GameSession
	responseCh chan int
}

// NewAgentStrategy creates the strategy for the session's agent seat.
func NewAgentStrategy(session *GameSession) *AgentStrategy {
	return &AgentStrategy{
		session:    session,
		responseCh: make(chan int),
	}
}

// Setup implements game.Strategy.
func (a *AgentStrategy) Setup(p *game.Player, g *game.GameState) error {
	return nil
}

// AttackIndex implements game.Strategy.
func (a *AgentStrategy) AttackIndex(combos []game.Combo, p *game.Player, yieldAllowed bool, g *game.GameState) int {
	if len(combos) == 0 {
		return game.NoChoice
	}
	return a.ask(&PendingDecision{
		Type:   DecisionChooseAttack,
		Player: p.ID,
		State:  BuildStateView(g, p.ID),
		Combos: comboViews(combos, g),
	})
}

// DefenseIndex implements game.Strategy.
func (a *AgentStrategy) DefenseIndex(combos []game.Combo, p *game.Player, damage int, g *game.GameState) int {
	if len(combos) == 0 {
		return game.NoChoice
	}
	return a.ask(&PendingDecision{
		Type:   DecisionChooseDefense,
		Player: p.ID,
		State:  BuildStateView(g, p.ID),
		Combos: comboViews(combos, g),
		Damage: damage,
	})
}

// RedirectIndex implements game.Strategy.
func (a *AgentStrategy) RedirectIndex(p *game.Player, g *game.GameState) int {
	var candidates []int
	for _, id := range g.LivingPlayers() {
		if id != p.ID {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return game.NoChoice
	}
	return a.ask(&PendingDecision{
		Type:       DecisionChooseRedirect,
		Player:     p.ID,
		State:      BuildStateView(g, p.ID),
		Candidates: candidates,
	})
}

// ask posts d and waits for the answer. A closed session answers NoChoice.
func (a *AgentStrategy) ask(d *PendingDecision) int {
	select {
	case <-a.session.done:
		return game.NoChoice
	default:
	}

	select {
	case a.session.pendingCh <- d:
	case <-a.session.done:
		return game.NoChoice
	}

	select {
	case index := <-a.responseCh:
		return index
	case <-a.session.done:
		return game.NoChoice
	}
}
