package mcp

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/regi/internal/game"
	"github.com/peterkuimelis/regi/internal/log"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAttack   DecisionType = "choose_attack"
	DecisionChooseDefense  DecisionType = "choose_defense"
	DecisionChooseRedirect DecisionType = "choose_redirect"
	DecisionGameOver       DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type       DecisionType `json:"type"`
	Player     int          `json:"player"`
	State      *StateView   `json:"state"`
	Combos     []ComboView  `json:"combos,omitempty"`
	Damage     int          `json:"damage,omitempty"`
	Candidates []int        `json:"candidates,omitempty"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string       `json:"session_id"`
	Events    []EventView  `json:"events"`
	State     *StateView   `json:"state,omitempty"`
	Pending   *PendingView `json:"pending,omitempty"`
	GameOver  bool         `json:"game_over"`
	Won       bool         `json:"won,omitempty"`
	Result    string       `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType `json:"type"`
	Combos     []ComboView  `json:"combos,omitempty"`
	Damage     int          `json:"damage,omitempty"`
	Candidates []int        `json:"candidates,omitempty"`
	Hint       string       `json:"hint"`
}

func newPendingView(p *PendingDecision) *PendingView {
	v := &PendingView{
		Type:       p.Type,
		Combos:     p.Combos,
		Damage:     p.Damage,
		Candidates: p.Candidates,
	}
	switch p.Type {
	case DecisionChooseAttack:
		v.Hint = "call choose_combo with the index of the attack to play"
	case DecisionChooseDefense:
		v.Hint = fmt.Sprintf("call choose_combo to discard at least %d, or index -1 to pass the engagement on", p.Damage)
	case DecisionChooseRedirect:
		v.Hint = "call choose_player with one of the candidate ids"
	}
	return v
}

// SessionConfig describes the table for a new session.
type SessionConfig struct {
	Players     int
	AgentPlayer int
	Opponent    string // strategy name for every other seat
	Seed        int64
	Snapshot    string // optional; overrides the fresh deal
	Random      bool   // start from a fuzzed mid-game position
}

// GameSession holds the state of a single MCP game session. The game runs
// in its own goroutine; the only shared state is guarded by mu or passed
// over channels.
type GameSession struct {
	ID          string
	game        *game.GameState
	agent       *AgentStrategy
	agentPlayer int

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision
	done           chan struct{}
	closeOnce      sync.Once

	mu       sync.Mutex
	history  *log.MemoryLogger
	events   []EventView
	gameOver bool
	reason   game.EndReason
}

// NewGameSession seats the agent and its opponents, deals, and starts the
// game loop in a goroutine.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	if cfg.Players < game.MinPlayers || cfg.Players > game.MaxPlayers {
		return nil, fmt.Errorf("%w: %d", game.ErrInvalidPlayerCount, cfg.Players)
	}
	if cfg.AgentPlayer < 0 || cfg.AgentPlayer >= cfg.Players {
		return nil, fmt.Errorf("agent_player %d out of range 0-%d", cfg.AgentPlayer, cfg.Players-1)
	}
	if cfg.Opponent == "" {
		cfg.Opponent = "damage"
	}

	sess := &GameSession{
		ID:          uuid.NewString(),
		agentPlayer: cfg.AgentPlayer,
		pendingCh:   make(chan *PendingDecision, 1),
		done:        make(chan struct{}),
		history:     log.NewMemoryLogger(),
	}
	sess.agent = NewAgentStrategy(sess)

	rng := rand.New(rand.NewSource(cfg.Seed))
	g := game.NewGame(game.GameConfig{Logger: sess, Rand: rng})
	for i := 0; i < cfg.Players; i++ {
		var s game.Strategy = sess.agent
		if i != cfg.AgentPlayer {
			var err error
			s, err = game.NewStrategy(cfg.Opponent, rand.New(rand.NewSource(cfg.Seed+int64(i)+1)))
			if err != nil {
				return nil, err
			}
		}
		if _, err := g.AddPlayer(s); err != nil {
			return nil, fmt.Errorf("seat player %d: %w", i, err)
		}
	}

	var err error
	switch {
	case cfg.Snapshot != "":
		var snap *game.Snapshot
		snap, err = game.DecodeSnapshot(cfg.Snapshot)
		if err == nil {
			err = g.InitFromSnapshot(snap)
		}
	case cfg.Random:
		err = g.InitRandom()
	default:
		err = g.Init()
	}
	if err != nil {
		return nil, fmt.Errorf("deal: %w", err)
	}
	if err := g.Setup(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	sess.game = g

	logrus.WithFields(logrus.Fields{
		"session": sess.ID,
		"players": cfg.Players,
		"agent":   cfg.AgentPlayer,
		"seed":    cfg.Seed,
	}).Info("game started")

	go sess.run()
	return sess, nil
}

func (s *GameSession) run() {
	reason, err := s.game.Run()
	if err != nil {
		logrus.WithError(err).WithField("session", s.ID).Error("game loop stopped")
	}

	// The agent is no longer asked anything, so reading the game is safe.
	final := &PendingDecision{
		Type:   DecisionGameOver,
		Player: s.agentPlayer,
		State:  BuildStateView(s.game, s.agentPlayer),
	}

	s.mu.Lock()
	s.gameOver = true
	s.reason = reason
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"session": s.ID,
		"reason":  reason.String(),
		"rounds":  s.game.CurrentRound,
	}).Info("game over")

	s.pendingCh <- final
}

// Log implements log.EventLogger. It is called from the game goroutine.
func (s *GameSession) Log(e log.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Log(e)
	if e.Type == log.EventState {
		return
	}
	s.events = append(s.events, newEventView(s.history.LastEvent()))
}

// Events implements log.EventLogger.
func (s *GameSession) Events() []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Events()
}

// Close makes the agent answer NoChoice to every remaining decision,
// which ends the game.
func (s *GameSession) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending() *ToolResponse {
	pending := <-s.pendingCh
	s.currentPending = pending
	return s.response(pending)
}

func (s *GameSession) response(pending *PendingDecision) *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
		State:     pending.State,
	}
	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Won = s.reason.Won()
		resp.Result = s.reason.String()
		s.mu.Unlock()
		return resp
	}
	resp.Pending = newPendingView(pending)
	return resp
}

// respond hands the agent's answer to the blocked game goroutine and waits
// for the next decision.
func (s *GameSession) respond(index int) *ToolResponse {
	s.agent.responseCh <- index
	return s.waitForPending()
}

// abandon closes the session and drains decisions until the game reports
// that it is over.
func (s *GameSession) abandon() *ToolResponse {
	s.Close()
	pending := s.currentPending
	for pending == nil || pending.Type != DecisionGameOver {
		pending = <-s.pendingCh
	}
	s.currentPending = pending
	return s.response(pending)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
