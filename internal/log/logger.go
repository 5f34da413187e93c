package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- NopLogger: discards everything, for bulk simulation ---

type NopLogger struct{}

func (NopLogger) Log(GameEvent)       {}
func (NopLogger) Events() []GameEvent { return nil }

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w     io.Writer
	quiet map[EventType]bool
}

// NewTextLogger writes every event except the types listed in skip.
func NewTextLogger(w io.Writer, skip ...EventType) *TextLogger {
	l := &TextLogger{w: w, quiet: make(map[EventType]bool)}
	for _, t := range skip {
		l.quiet[t] = true
	}
	return l
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	if l.quiet[event.Type] {
		return
	}
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- StructuredLogger: one logrus entry per event ---

type StructuredLogger struct {
	MemoryLogger
	entry *logrus.Entry
}

// NewStructuredLogger logs through l with the given base fields attached
// to every entry (a game id, a table name).
func NewStructuredLogger(l *logrus.Logger, base logrus.Fields) *StructuredLogger {
	return &StructuredLogger{entry: l.WithFields(base)}
}

// NewJSONLogger writes one JSON object per event to w.
func NewJSONLogger(w io.Writer, base logrus.Fields) *StructuredLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return NewStructuredLogger(l, base)
}

func (l *StructuredLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	event = l.LastEvent()

	entry := l.entry.WithFields(Fields(event))
	switch event.Type {
	case EventState:
		entry.Debug(event.Details)
	case EventFailBlock, EventEndGame:
		entry.Warn(event.Details)
	default:
		entry.Info(event.Details)
	}
}

// Fields flattens an event into logrus fields, skipping empty values.
func Fields(e GameEvent) logrus.Fields {
	f := logrus.Fields{
		"seq":   e.Seq,
		"round": e.Round,
		"event": e.Type.String(),
	}
	if e.Player >= 0 {
		f["player"] = e.Player
	}
	if e.Phase != "" {
		f["phase"] = e.Phase
	}
	if e.Card != "" {
		f["card"] = e.Card
	}
	if e.Enemy != "" {
		f["enemy"] = e.Enemy
	}
	if e.Amount != 0 {
		f["amount"] = e.Amount
	}
	if e.Reason != "" {
		f["reason"] = e.Reason
	}
	if e.Snapshot != "" {
		f["snapshot"] = e.Snapshot
	}
	return f
}

// --- Formatting ---

// playerName returns "P1".."P4" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
		phase += " "
	}

	return fmt.Sprintf("R%-3d %s| %s", e.Round, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewStartGameEvent(players, handSize int) GameEvent {
	return GameEvent{
		Player:  -1,
		Type:    EventStartGame,
		Amount:  players,
		Details: fmt.Sprintf("=== New game: %d players, hand size %d ===", players, handSize),
	}
}

func NewEndGameEvent(round int, reason string, won bool) GameEvent {
	outcome := "defeat"
	if won {
		outcome = "victory"
	}
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventEndGame,
		Reason:  reason,
		Details: fmt.Sprintf("Game over: %s (%s)", outcome, reason),
	}
}

func NewPostGameEvent(round, phases, enemiesLeft int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventPostGame,
		Amount:  enemiesLeft,
		Details: fmt.Sprintf("%d phases over %d rounds, %d enemies left", phases, round, enemiesLeft),
	}
}

func NewStateEvent(round int, phase string, player int, snapshot string) GameEvent {
	return GameEvent{
		Round:    round,
		Phase:    phase,
		Player:   player,
		Type:     EventState,
		Snapshot: snapshot,
		Details:  "state " + snapshot,
	}
}

func NewTurnStartEvent(round, player int, enemy string, hp int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Attack",
		Player:  player,
		Type:    EventTurnStart,
		Enemy:   enemy,
		Amount:  hp,
		Details: fmt.Sprintf("=== %s to play against %s (HP %d) ===", playerName(player), enemy, hp),
	}
}

func NewTurnEndEvent(round, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Defense",
		Player:  player,
		Type:    EventTurnEnd,
		Details: fmt.Sprintf("%s ends turn", playerName(player)),
	}
}

func NewAttackEvent(round, player int, combo, enemy string, damage, hpLeft int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Attack",
		Player:  player,
		Type:    EventAttack,
		Card:    combo,
		Enemy:   enemy,
		Amount:  damage,
		Details: fmt.Sprintf("%s attacks %s with %s for %d (HP left %d)", playerName(player), enemy, combo, damage, hpLeft),
	}
}

func NewDefendEvent(round, player int, combo string, damage int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Defense",
		Player:  player,
		Type:    EventDefend,
		Card:    combo,
		Amount:  damage,
		Details: fmt.Sprintf("%s discards %s to absorb %d", playerName(player), combo, damage),
	}
}

func NewFailBlockEvent(round, player, damage, handTotal int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Defense",
		Player:  player,
		Type:    EventFailBlock,
		Amount:  damage,
		Details: fmt.Sprintf("%s cannot absorb %d (hand total %d)", playerName(player), damage, handTotal),
	}
}

func NewFullBlockEvent(round, player int, enemy string, block int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Defense",
		Player:  player,
		Type:    EventFullBlock,
		Enemy:   enemy,
		Amount:  block,
		Details: fmt.Sprintf("%s's attack fully blocked (shield %d)", enemy, block),
	}
}

func NewDrawEvent(round int, phase string, player int, card string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    card,
		Details: fmt.Sprintf("%s draws %s", playerName(player), card),
	}
}

func NewCannotDrawEvent(round int, phase string, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventCannotDraw,
		Details: fmt.Sprintf("%s cannot draw: draw pile empty", playerName(player)),
	}
}

func NewReplenishEvent(round, player, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Attack",
		Player:  player,
		Type:    EventReplenish,
		Amount:  count,
		Details: fmt.Sprintf("%d cards return from discard to the draw pile", count),
	}
}

func NewEnemyKillEvent(round, player int, enemy string, exact bool) GameEvent {
	how := "overkilled, discarded"
	if exact {
		how = "exact kill, placed on top of draw pile"
	}
	return GameEvent{
		Round:   round,
		Phase:   "Attack",
		Player:  player,
		Type:    EventEnemyKill,
		Enemy:   enemy,
		Details: fmt.Sprintf("%s defeats %s (%s)", playerName(player), enemy, how),
	}
}

func NewRedirectEvent(round, from, to int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Defense",
		Player:  from,
		Type:    EventRedirect,
		Amount:  to,
		Details: fmt.Sprintf("%s passes the engagement to %s", playerName(from), playerName(to)),
	}
}
