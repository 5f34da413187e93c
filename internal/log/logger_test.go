package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewStartGameEvent(2, 7))
	l.Log(NewAttackEvent(0, 1, "(5C)", "JH", 10, 10))
	l.Log(NewAttackEvent(0, 0, "(yield)", "JH", 0, 10))

	events := l.Events()
	require.Len(t, events, 3)
	assert.Equal(t, 1, events[0].Seq)
	assert.Equal(t, 3, events[2].Seq)
	assert.Len(t, l.EventsOfType(EventAttack), 2)
	assert.Equal(t, "(yield)", l.LastEvent().Card)
	assert.Equal(t, GameEvent{}, NewMemoryLogger().LastEvent())
}

func TestTextLoggerSkipsQuietTypes(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, EventState)
	l.Log(NewStateEvent(0, "Attack", 0, "0#1#2#0#0!"))
	l.Log(NewDefendEvent(2, 1, "(9C)", 5))

	out := buf.String()
	assert.NotContains(t, out, "state")
	assert.Equal(t, "R2   Defense | P2 discards (9C) to absorb 5\n", out)
	assert.Len(t, l.Events(), 2)
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, logrus.Fields{"game": "g1"})
	l.Log(NewEnemyKillEvent(3, 0, "KC", true))
	l.Log(NewEndGameEvent(3, "NoEnemies", true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "g1", first["game"])
	assert.Equal(t, "EnemyKill", first["event"])
	assert.Equal(t, "KC", first["enemy"])
	assert.Equal(t, float64(0), first["player"])
	assert.Equal(t, float64(1), first["seq"])
	assert.Equal(t, "info", first["level"])
	assert.Contains(t, first["msg"], "exact kill")

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "warning", second["level"])
	assert.Equal(t, "NoEnemies", second["reason"])
	_, hasPlayer := second["player"]
	assert.False(t, hasPlayer)
}

func TestFieldsOmitEmpty(t *testing.T) {
	f := Fields(GameEvent{Type: EventTurnEnd, Player: 2})
	assert.Equal(t, logrus.Fields{"seq": 0, "round": 0, "event": "TurnEnd", "player": 2}, f)
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]GameEvent{
		NewRedirectEvent(1, 0, 2),
		NewPostGameEvent(4, 30, 0),
	})
	assert.Equal(t, "R1   Defense | P1 passes the engagement to P3\n"+
		"R4           | 30 phases over 4 rounds, 0 enemies left\n", out)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "CannotDraw", EventCannotDraw.String())
	assert.Equal(t, "Redirect", EventRedirect.String())
	assert.Equal(t, "Unknown", EventType(99).String())
}
