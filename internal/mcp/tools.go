package mcp

import (
	"context"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/regi/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// defaultSeed seeds games started without an explicit seed, set by main.
var defaultSeed int64

// SetDefaultSeed sets the seed used when start_game omits one.
func SetDefaultSeed(seed int64) {
	defaultSeed = seed
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(chooseComboTool(), handleChooseCombo)
	s.AddTool(choosePlayerTool(), handleChoosePlayer)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(exportSnapshotTool(), handleExportSnapshot)
	s.AddTool(abandonGameTool(), handleAbandonGame)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new cooperative game against the enemy pile. The other seats are played by a built-in strategy. "+
			"Returns the initial events, state and the first decision for your seat."),
		mcp.WithNumber("players", mcp.Required(), mcp.Description("Number of seats, 2-4")),
		mcp.WithNumber("agent_player", mcp.Description("Your seat id, 0-based (default 0)")),
		mcp.WithString("opponent_strategy", mcp.Description("Strategy for the other seats: "+strings.Join(game.StrategyNames(), ", ")+" (default damage)")),
		mcp.WithNumber("seed", mcp.Description("Random seed for the deal")),
		mcp.WithString("snapshot", mcp.Description("Optional snapshot string to resume from instead of a fresh deal")),
		mcp.WithBoolean("random", mcp.Description("Start from a randomized mid-game position")),
	)
}

func chooseComboTool() mcp.Tool {
	return mcp.NewTool("choose_combo",
		mcp.WithDescription("Choose a combo from the pending list. Use this when the pending decision type is 'choose_attack' or 'choose_defense'. "+
			"During defense, -1 declines and passes the engagement to another player."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the combos list")),
	)
}

func choosePlayerTool() mcp.Tool {
	return mcp.NewTool("choose_player",
		mcp.WithDescription("Choose which player takes over the engagement. Use this when the pending decision type is 'choose_redirect'."),
		mcp.WithNumber("player_id", mcp.Required(), mcp.Description("One of the candidate player ids")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func exportSnapshotTool() mcp.Tool {
	return mcp.NewTool("export_snapshot",
		mcp.WithDescription("Return the compact snapshot string for the current position. It can be passed back to start_game."),
	)
}

func abandonGameTool() mcp.Tool {
	return mcp.NewTool("abandon_game",
		mcp.WithDescription("Give up the running game. Your seat stops answering and the game ends."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Finish it or call abandon_game first."), nil
	}

	cfg := SessionConfig{
		Players:     request.GetInt("players", 0),
		AgentPlayer: request.GetInt("agent_player", 0),
		Opponent:    request.GetString("opponent_strategy", "damage"),
		Seed:        int64(request.GetInt("seed", int(defaultSeed))),
		Snapshot:    strings.TrimSpace(request.GetString("snapshot", "")),
		Random:      request.GetBool("random", false),
	}

	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess
	resp := sess.waitForPending()
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pendingFor returns the active session and its pending decision if the
// decision is one of types.
func pendingFor(types ...DecisionType) (*GameSession, *PendingDecision, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if !slices.Contains(types, pending.Type) {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s'. Use the correct tool.", pending.Type)
	}
	return sess, pending, nil
}

func handleChooseCombo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingFor(DecisionChooseAttack, DecisionChooseDefense)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -2)
	valid := index >= 0 && index < len(pending.Combos)
	if pending.Type == DecisionChooseDefense && index == game.NoChoice {
		valid = true
	}
	if !valid {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Combos)-1), nil
	}

	resp := sess.respond(index)
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleChoosePlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingFor(DecisionChooseRedirect)
	if errResult != nil {
		return errResult, nil
	}

	id := request.GetInt("player_id", -1)
	if !slices.Contains(pending.Candidates, id) {
		return mcp.NewToolResultErrorf("Invalid player %d. Must be one of %v.", id, pending.Candidates), nil
	}

	resp := sess.respond(id)
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	resp := &ToolResponse{
		SessionID: sess.ID,
		Events:    sess.drainEvents(),
	}
	// The game goroutine is parked on the pending decision, so its view
	// is current.
	if p := sess.currentPending; p != nil {
		resp.State = p.State
		resp.Pending = newPendingView(p)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleExportSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	p := activeSession.currentPending
	if p == nil || p.State == nil {
		return mcp.NewToolResultError("No position to export yet."), nil
	}
	return mcp.NewToolResultText(p.State.Snapshot), nil
}

func handleAbandonGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running."), nil
	}
	resp := activeSession.abandon()
	activeSession = nil
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
