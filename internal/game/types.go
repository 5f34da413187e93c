package game

import "errors"

// GameStatus is the lifecycle stage of a game. It only moves forward.
type GameStatus int

const (
	StatusLoading GameStatus = iota
	StatusRunning
	StatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusRunning:
		return "Running"
	case StatusEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// EndReason records why a game entered StatusEnded.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonInvalidPlayerCount
	ReasonInvalidPlayerSetup
	ReasonNoEnemies
	ReasonBlockFailed
	ReasonAttackFailed
	ReasonRedirectFailed
	ReasonPlayerDead
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonInvalidPlayerCount:
		return "InvalidPlayerCount"
	case ReasonInvalidPlayerSetup:
		return "InvalidPlayerSetup"
	case ReasonNoEnemies:
		return "NoEnemies"
	case ReasonBlockFailed:
		return "BlockFailed"
	case ReasonAttackFailed:
		return "AttackFailed"
	case ReasonRedirectFailed:
		return "RedirectFailed"
	case ReasonPlayerDead:
		return "PlayerDead"
	default:
		return "Unknown"
	}
}

// Won reports whether the reason is the cooperative victory.
func (r EndReason) Won() bool {
	return r == ReasonNoEnemies
}

// PhaseName returns "Attack" or "Defense".
func PhaseName(attack bool) string {
	if attack {
		return "Attack"
	}
	return "Defense"
}

var (
	ErrNotLoading         = errors.New("game is not loading")
	ErrGameEnded          = errors.New("game has ended")
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrInvalidPlayerSetup = errors.New("invalid player setup")
)

const (
	MinPlayers = 2
	MaxPlayers = 4

	// NumEnemies is the size of the full enemy queue: four each of J, Q, K.
	NumEnemies = 12

	// MaxDeckSize is the largest any single pile can grow: forty pips, two
	// jokers and every enemy after an exact kill.
	MaxDeckSize = 54
)
