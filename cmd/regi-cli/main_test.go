package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/regi/internal/game"
)

func TestDecodeDescribesSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runDecode([]string{"0#1#2#1#0!2#15,33#0#!1!25,20!1!0!0!!1!2#61,47!"}, &buf))
	assert.Equal(t, `Outcome: in progress
Phase:   Attack, P2 to act, 0 yields in a row
Hands:
  P1 (2): AC 5D
  P2 (0): -
Enemies (1): JC/20
Draw (1): X!
Discard (0): -
Used (1): (5S 5H)
`, buf.String())

	assert.ErrorIs(t, runDecode([]string{"0#1"}, &buf), game.ErrMalformedSnapshot)
	assert.Error(t, runDecode(nil, &buf))
}

func TestRandomPrintsDecodableSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runRandom([]string{"--players", "3", "--seed", "4"}, &buf))
	first, _, ok := strings.Cut(buf.String(), "\n")
	require.True(t, ok)
	s, err := game.DecodeSnapshot(first)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumPlayers)
}

func TestPlayInlineTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runPlay([]string{"--strategies", "damage,random", "--games", "2", "--seed", "8", "--log", "none"}, &buf))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, runPlay([]string{"--strategies", "damage,damage", "--seed", "8"}, &buf))
	assert.Contains(t, buf.String(), "P1 attacks")
	assert.NotContains(t, buf.String(), "| state ")

	assert.Error(t, runPlay([]string{"--strategies", "damage", "--log", "none"}, &buf))
	assert.Error(t, runPlay([]string{"--strategies", "damage,damage", "--log", "xml"}, &buf))
}

func TestSummaryFields(t *testing.T) {
	s := newSummary()
	g := game.NewGame(game.GameConfig{})
	g.CurrentRound = 3
	s.add(game.ReasonNoEnemies, g)
	s.add(game.ReasonBlockFailed, g)

	fields := s.entry().Data
	assert.Equal(t, 2, fields["games"])
	assert.Equal(t, 1, fields["wins"])
	assert.Equal(t, "50.0%", fields["win_rate"])
	assert.Equal(t, "4.0", fields["avg_rounds"])
	assert.Equal(t, 1, fields["ended_"+game.ReasonBlockFailed.String()])
}
