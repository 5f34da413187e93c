package mcp

import (
	"github.com/peterkuimelis/regi/internal/game"
	"github.com/peterkuimelis/regi/internal/log"
)

// EventView is a simplified game event for the agent.
type EventView struct {
	Round   int    `json:"round"`
	Phase   string `json:"phase,omitempty"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

func newEventView(e log.GameEvent) EventView {
	return EventView{
		Round:   e.Round,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// ComboView is a numbered combo choice.
type ComboView struct {
	Index   int    `json:"index"`
	Cards   string `json:"cards"`
	Damage  int    `json:"damage"`  // effective damage against the current enemy
	Defense int    `json:"defense"` // strength absorbed when discarded
}

func comboViews(combos []game.Combo, g *game.GameState) []ComboView {
	views := make([]ComboView, len(combos))
	for i, c := range combos {
		views[i] = ComboView{
			Index:   i,
			Cards:   c.String(),
			Damage:  game.EffectiveDamage(c, g),
			Defense: c.BaseDefense(),
		}
	}
	return views
}

// EnemyView describes the enemy currently engaged.
type EnemyView struct {
	Card   string `json:"card"`
	HP     int    `json:"hp"`
	Attack int    `json:"attack"` // damage after shields
	Immune bool   `json:"immune"` // suit power still active
}

// PlayerView shows one seat.
type PlayerView struct {
	ID        int  `json:"id"`
	Alive     bool `json:"alive"`
	HandCount int  `json:"hand_count"`
}

// StateView is the table from one player's perspective.
type StateView struct {
	Round        int          `json:"round"`
	Phase        string       `json:"phase"`
	ActivePlayer int          `json:"active_player"`
	IsYourTurn   bool         `json:"is_your_turn"`
	Hand         []string     `json:"hand"`
	Players      []PlayerView `json:"players"`
	Enemy        *EnemyView   `json:"enemy,omitempty"`
	EnemiesLeft  int          `json:"enemies_left"`
	DrawCount    int          `json:"draw_count"`
	DiscardCount int          `json:"discard_count"`
	Used         []string     `json:"used,omitempty"`
	YieldAllowed bool         `json:"yield_allowed"`
	Snapshot     string       `json:"snapshot"`
}

// BuildStateView renders g for player. Call only from the goroutine that
// owns g or while it is blocked on a decision.
func BuildStateView(g *game.GameState, player int) *StateView {
	sv := &StateView{
		Round:        g.CurrentRound,
		Phase:        game.PhaseName(g.AttackPhase),
		ActivePlayer: g.ActivePlayer,
		IsYourTurn:   g.ActivePlayer == player,
		EnemiesLeft:  len(g.EnemyPile),
		DrawCount:    len(g.DrawPile),
		DiscardCount: len(g.DiscardPile),
		YieldAllowed: g.YieldAllowed(),
		Snapshot:     g.Snapshot().Encode(),
	}
	for _, p := range g.Players {
		sv.Players = append(sv.Players, PlayerView{ID: p.ID, Alive: p.Alive, HandCount: p.HandCount()})
		if p.ID == player {
			for _, c := range p.Cards {
				sv.Hand = append(sv.Hand, c.String())
			}
		}
	}
	if e, ok := g.CurrentEnemy(); ok {
		sv.Enemy = &EnemyView{
			Card:   e.Card.String(),
			HP:     e.HP,
			Attack: g.IncomingDamage(),
			Immune: g.EnemyPower() != 0,
		}
	}
	for _, c := range g.UsedPile {
		sv.Used = append(sv.Used, c.String())
	}
	return sv
}
