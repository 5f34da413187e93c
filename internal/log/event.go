package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventStartGame EventType = iota
	EventEndGame
	EventPostGame
	EventState
	EventTurnStart
	EventTurnEnd
	EventAttack
	EventDefend
	EventFailBlock
	EventFullBlock
	EventDraw
	EventCannotDraw
	EventReplenish
	EventEnemyKill
	EventRedirect
)

func (e EventType) String() string {
	switch e {
	case EventStartGame:
		return "StartGame"
	case EventEndGame:
		return "EndGame"
	case EventPostGame:
		return "PostGame"
	case EventState:
		return "State"
	case EventTurnStart:
		return "TurnStart"
	case EventTurnEnd:
		return "TurnEnd"
	case EventAttack:
		return "Attack"
	case EventDefend:
		return "Defend"
	case EventFailBlock:
		return "FailBlock"
	case EventFullBlock:
		return "FullBlock"
	case EventDraw:
		return "Draw"
	case EventCannotDraw:
		return "CannotDraw"
	case EventReplenish:
		return "Replenish"
	case EventEnemyKill:
		return "EnemyKill"
	case EventRedirect:
		return "Redirect"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq      int       // monotonic sequence number
	Round    int       // round counter, bumped when play wraps to the first player
	Phase    string    // "Attack", "Defense" or empty outside a turn
	Player   int       // acting player, -1 for table-wide events
	Type     EventType // event type
	Card     string    // card or combo (if applicable)
	Enemy    string    // current enemy card (if applicable)
	Amount   int       // damage, block, count, depending on Type
	Reason   string    // end reason for EndGame
	Snapshot string    // encoded state for State events
	Details  string    // human-readable detail string
}
