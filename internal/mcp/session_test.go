package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/regi/internal/game"
	"github.com/peterkuimelis/regi/internal/log"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func callTool(t *testing.T, h toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func decodeResponse(t *testing.T, res *mcp.CallToolResult) *ToolResponse {
	t.Helper()
	text := resultText(t, res)
	require.False(t, res.IsError, text)
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	return &resp
}

// resetSession abandons whatever game a test left running.
func resetSession(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		if activeSession != nil {
			activeSession.abandon()
			activeSession = nil
		}
	})
}

func strongest(combos []ComboView) int {
	best := 0
	for i, c := range combos {
		if c.Damage > combos[best].Damage {
			best = i
		}
	}
	return best
}

func TestPlayGameThroughTools(t *testing.T) {
	resetSession(t)

	resp := decodeResponse(t, callTool(t, handleStartGame, map[string]any{
		"players":      2,
		"agent_player": 0,
		"seed":         5,
	}))
	require.NotEmpty(t, resp.SessionID)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionChooseAttack, resp.Pending.Type)
	assert.True(t, resp.State.IsYourTurn)
	assert.Len(t, resp.State.Hand, 7)
	assert.NotEmpty(t, resp.Events)

	id := resp.SessionID
	kinds := map[DecisionType]bool{}
	for calls := 0; !resp.GameOver; calls++ {
		require.Less(t, calls, 5000, "game did not finish")
		require.NotNil(t, resp.Pending)
		kinds[resp.Pending.Type] = true

		var res *mcp.CallToolResult
		switch resp.Pending.Type {
		case DecisionChooseAttack:
			res = callTool(t, handleChooseCombo, map[string]any{"index": strongest(resp.Pending.Combos)})
		case DecisionChooseDefense:
			assert.Positive(t, resp.Pending.Damage)
			res = callTool(t, handleChooseCombo, map[string]any{"index": 0})
		case DecisionChooseRedirect:
			res = callTool(t, handleChoosePlayer, map[string]any{"player_id": resp.Pending.Candidates[0]})
		}
		resp = decodeResponse(t, res)
		assert.Equal(t, id, resp.SessionID)
	}

	assert.True(t, kinds[DecisionChooseAttack])
	assert.NotEmpty(t, resp.Result)
	assert.Nil(t, resp.Pending)
	assert.Nil(t, activeSession)
}

func TestToolsRejectWrongDecision(t *testing.T) {
	resetSession(t)

	res := callTool(t, handleChooseCombo, map[string]any{"index": 0})
	assert.True(t, res.IsError)

	resp := decodeResponse(t, callTool(t, handleStartGame, map[string]any{"players": 3, "seed": 2}))
	require.Equal(t, DecisionChooseAttack, resp.Pending.Type)

	res = callTool(t, handleStartGame, map[string]any{"players": 2})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "already running")

	res = callTool(t, handleChoosePlayer, map[string]any{"player_id": 1})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "choose_attack")

	res = callTool(t, handleChooseCombo, map[string]any{"index": len(resp.Pending.Combos)})
	assert.True(t, res.IsError)
	res = callTool(t, handleChooseCombo, map[string]any{"index": -1})
	assert.True(t, res.IsError, "declining is only allowed on defense")

	state := decodeResponse(t, callTool(t, handleGetGameState, nil))
	assert.Equal(t, resp.State, state.State)
	assert.Equal(t, DecisionChooseAttack, state.Pending.Type)
	assert.Empty(t, state.Events)

	over := decodeResponse(t, callTool(t, handleAbandonGame, nil))
	assert.True(t, over.GameOver)
	assert.False(t, over.Won)
	assert.Equal(t, game.ReasonAttackFailed.String(), over.Result)
	assert.Nil(t, activeSession)
}

func TestStartGameRejectsBadTables(t *testing.T) {
	resetSession(t)

	for name, args := range map[string]map[string]any{
		"too many players": {"players": 5},
		"missing players":  {},
		"agent seat":       {"players": 2, "agent_player": 2},
		"opponent":         {"players": 2, "opponent_strategy": "psychic"},
		"snapshot":         {"players": 2, "snapshot": "0#1#2"},
		"snapshot seats":   {"players": 3, "snapshot": "0#1#2#0#0!7#1,2,3,4,5,6,7#0#!1!25,20!0!0!0!"},
	} {
		t.Run(name, func(t *testing.T) {
			res := callTool(t, handleStartGame, args)
			assert.True(t, res.IsError)
			assert.Nil(t, activeSession)
		})
	}
}

func TestExportAndResumeSnapshot(t *testing.T) {
	resetSession(t)

	first := decodeResponse(t, callTool(t, handleStartGame, map[string]any{"players": 2, "seed": 11, "opponent_strategy": "random"}))
	snap := resultText(t, callTool(t, handleExportSnapshot, nil))
	assert.Equal(t, first.State.Snapshot, snap)
	_, err := game.DecodeSnapshot(snap)
	require.NoError(t, err)
	decodeResponse(t, callTool(t, handleAbandonGame, nil))

	resumed := decodeResponse(t, callTool(t, handleStartGame, map[string]any{"players": 2, "seed": 99, "snapshot": snap}))
	require.NotNil(t, resumed.Pending)
	assert.Equal(t, snap, resumed.State.Snapshot)
	assert.Equal(t, first.State.Hand, resumed.State.Hand)
	assert.Equal(t, first.Pending.Combos, resumed.Pending.Combos)
}

func TestAgentSecondSeatWaitsForOpponent(t *testing.T) {
	resetSession(t)

	resp := decodeResponse(t, callTool(t, handleStartGame, map[string]any{"players": 2, "agent_player": 1, "seed": 3}))
	if resp.GameOver {
		t.Skip("opponent ended the game before the agent moved")
	}
	require.NotNil(t, resp.Pending)
	assert.Equal(t, 1, resp.State.ActivePlayer)

	var sawOpponent bool
	for _, e := range resp.Events {
		if e.Type == log.EventAttack.String() && e.Player == 0 {
			sawOpponent = true
		}
	}
	assert.True(t, sawOpponent)
}

func TestSessionLogSkipsStateEvents(t *testing.T) {
	sess := &GameSession{history: log.NewMemoryLogger()}
	sess.Log(log.NewStateEvent(0, "Attack", 0, "x"))
	sess.Log(log.NewTurnStartEvent(0, 0, "JC", 20))

	assert.Len(t, sess.Events(), 2)
	events := sess.drainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "TurnStart", events[0].Type)
	assert.Equal(t, 2, sess.Events()[1].Seq)
	assert.Empty(t, sess.drainEvents())
}
