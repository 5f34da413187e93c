package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/regi/internal/game"
)

func cardList(cards []game.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func outcomeName(outcome int) string {
	switch {
	case outcome > 0:
		return "won"
	case outcome < 0:
		return "lost"
	}
	return "in progress"
}

// describe prints a snapshot for people.
func describe(w io.Writer, s *game.Snapshot) {
	fmt.Fprintf(w, "Outcome: %s\n", outcomeName(s.Outcome))
	fmt.Fprintf(w, "Phase:   %s, P%d to act, %d yields in a row\n",
		game.PhaseName(s.AttackPhase), s.ActivePlayer+1, s.PastYieldsInARow)

	fmt.Fprintln(w, "Hands:")
	for i, hand := range s.Hands {
		fmt.Fprintf(w, "  P%d (%d): %s\n", i+1, len(hand), cardList(hand))
	}

	enemies := make([]string, len(s.EnemyPile))
	for i, e := range s.EnemyPile {
		enemies[i] = fmt.Sprintf("%s/%d", e.Card, e.HP)
	}
	if len(enemies) == 0 {
		enemies = []string{"-"}
	}
	fmt.Fprintf(w, "Enemies (%d): %s\n", len(s.EnemyPile), strings.Join(enemies, " "))
	fmt.Fprintf(w, "Draw (%d): %s\n", len(s.DrawPile), cardList(s.DrawPile))
	fmt.Fprintf(w, "Discard (%d): %s\n", len(s.DiscardPile), cardList(s.DiscardPile))

	used := make([]string, len(s.UsedPile))
	for i, c := range s.UsedPile {
		used[i] = c.String()
	}
	if len(used) == 0 {
		used = []string{"-"}
	}
	fmt.Fprintf(w, "Used (%d): %s\n", len(s.UsedPile), strings.Join(used, " "))
}

// summary tallies the results of a run.
type summary struct {
	games   int
	wins    int
	rounds  int
	reasons map[game.EndReason]int
}

func newSummary() *summary {
	return &summary{reasons: make(map[game.EndReason]int)}
}

func (s *summary) add(reason game.EndReason, g *game.GameState) {
	s.games++
	if reason.Won() {
		s.wins++
	}
	s.rounds += g.CurrentRound + 1
	s.reasons[reason]++
}

func (s *summary) entry() *logrus.Entry {
	fields := logrus.Fields{
		"games": s.games,
		"wins":  s.wins,
	}
	if s.games > 0 {
		fields["win_rate"] = fmt.Sprintf("%.1f%%", 100*float64(s.wins)/float64(s.games))
		fields["avg_rounds"] = fmt.Sprintf("%.1f", float64(s.rounds)/float64(s.games))
	}
	for reason, n := range s.reasons {
		fields["ended_"+reason.String()] = n
	}
	return logrus.WithFields(fields)
}
