package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = "0#1#2#1#0!2#15,33#0#!1!25,20!1!0!0!!1!2#61,47!"

func sample(t *testing.T) *Snapshot {
	return &Snapshot{
		AttackPhase:  true,
		NumPlayers:   2,
		ActivePlayer: 1,
		Hands:        [][]Card{cards(t, "AC 5D"), nil},
		EnemyPile:    []Enemy{NewEnemy(card(t, "JC"))},
		DrawPile:     cards(t, "X!"),
		UsedPile:     combosOf(t, "5S 5H"),
	}
}

func TestSnapshotEncode(t *testing.T) {
	assert.Equal(t, sampleSnapshot, sample(t).Encode())
}

func TestSnapshotDecode(t *testing.T) {
	s, err := DecodeSnapshot(sampleSnapshot)
	require.NoError(t, err)
	assert.Equal(t, sample(t), s)

	// used combos come back with details loaded
	assert.Equal(t, 10, s.UsedPile[0].BaseDamage())
	assert.True(t, s.UsedPile[0].Has(PowerBlock))
}

func TestSnapshotRoundTripFromInitializers(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		players := MinPlayers + int(seed)%3

		fresh := NewGame(GameConfig{Seed: seed})
		seat(t, fresh, players)
		require.NoError(t, fresh.Init())

		fuzzed := NewGame(GameConfig{Seed: seed})
		seat(t, fuzzed, players)
		require.NoError(t, fuzzed.InitRandom())

		for _, g := range []*GameState{fresh, fuzzed} {
			want := g.Snapshot()
			got, err := DecodeSnapshot(want.Encode())
			require.NoError(t, err)
			require.Equal(t, want, got)

			loaded := NewGame(GameConfig{Seed: seed})
			seat(t, loaded, players)
			require.NoError(t, loaded.InitFromSnapshot(got))
			require.Equal(t, want, loaded.Snapshot())
		}
	}
}

func TestSnapshotRoundTripMidGame(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := NewGame(GameConfig{Seed: seed})
		seat(t, g, 2+int(seed)%3)
		require.NoError(t, g.Init())
		require.NoError(t, g.Setup())

		for step := 0; step < 40 && g.Running(); step++ {
			require.NoError(t, g.Step())
			want := g.Snapshot()
			got, err := DecodeSnapshot(want.Encode())
			require.NoError(t, err, want.Encode())
			require.Equal(t, want, got)
		}
	}
}

func TestSnapshotOutcomeOnLoss(t *testing.T) {
	g, _ := defenseTable(t, "KS", "2C", NewDamageStrategy(), NewDamageStrategy())
	assert.Equal(t, 0, g.Snapshot().Outcome)
	require.NoError(t, g.Step())
	assert.Equal(t, -1, g.Snapshot().Outcome)
}

func TestDecodeSnapshotRejects(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"outcome":          "2" + sampleSnapshot[1:],
		"phase":            strings.Replace(sampleSnapshot, "0#1#2", "0#2#2", 1),
		"too many players": strings.Replace(sampleSnapshot, "0#1#2#1", "0#1#5#1", 1),
		"one player":       strings.Replace(sampleSnapshot, "0#1#2#1", "0#1#1#0", 1),
		"active":           strings.Replace(sampleSnapshot, "#2#1#0!", "#2#2#0!", 1),
		"yields":           strings.Replace(sampleSnapshot, "#2#1#0!", "#2#1#2!", 1),
		"hand size":        strings.Replace(sampleSnapshot, "!2#15,33#0#!", "!8#15,33#0#!", 1),
		"short hand":       strings.Replace(sampleSnapshot, "2#15,33#", "2#15#", 1),
		"card range":       strings.Replace(sampleSnapshot, "15,33", "70,33", 1),
		"suited joker":     strings.Replace(sampleSnapshot, "15,33", "14,33", 1),
		"enemy count":      strings.Replace(sampleSnapshot, "!1!25,20!", "!13!25,20!", 1),
		"enemy hp high":    strings.Replace(sampleSnapshot, "25,20", "25,41", 1),
		"enemy hp low":     strings.Replace(sampleSnapshot, "25,20", "25,-41", 1),
		"draw count":       strings.Replace(sampleSnapshot, "!1!0!", "!55!0!", 1),
		"empty combo":      strings.Replace(sampleSnapshot, "1!2#61,47!", "1!0#!", 1),
		"big combo":        strings.Replace(sampleSnapshot, "1!2#61,47!", "1!5#61,47,1,2,3!", 1),
		"trailing":         sampleSnapshot + "1",
		"truncated":        strings.TrimSuffix(sampleSnapshot, "!"),
		"not a number":     strings.Replace(sampleSnapshot, "25,20", "25,x", 1),
		"huge number":      strings.Replace(sampleSnapshot, "25,20", "25,99999999999", 1),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			if name != "empty" {
				require.NotEqual(t, sampleSnapshot, text)
			}
			s, err := DecodeSnapshot(text)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
			assert.Nil(t, s)
		})
	}
}
