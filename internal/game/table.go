package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/regi/internal/log"
)

// TableFile represents the top-level YAML structure.
type TableFile struct {
	Tables []Table `yaml:"tables"`
}

// Table describes a set of games to simulate with the same seating.
type Table struct {
	Name    string `yaml:"name"`
	Seed    int64  `yaml:"seed"`
	Games   int    `yaml:"games"`
	Random  bool   `yaml:"random"` // deal with InitRandom instead of Init
	Players []Seat `yaml:"players"`
}

// Seat names the strategy playing one seat.
type Seat struct {
	Strategy string `yaml:"strategy"`
}

func readTableFile(path string) (*TableFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf TableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse table YAML: %w", err)
	}
	for i, t := range tf.Tables {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("table %d (%s): %w", i+1, t.Name, err)
		}
	}
	return &tf, nil
}

// ParseTableFile parses a YAML table file and returns a map of table name → table.
func ParseTableFile(path string) (map[string]Table, error) {
	tf, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	tables := make(map[string]Table)
	for _, t := range tf.Tables {
		tables[t.Name] = t
	}
	return tables, nil
}

// TableByNumber returns the Nth table (1-indexed) from the table file.
func TableByNumber(path string, n int) (Table, error) {
	tf, err := readTableFile(path)
	if err != nil {
		return Table{}, err
	}
	if n < 1 || n > len(tf.Tables) {
		return Table{}, fmt.Errorf("table %d not found (have %d tables)", n, len(tf.Tables))
	}
	return tf.Tables[n-1], nil
}

// Validate checks seat count and strategy names.
func (t Table) Validate() error {
	if len(t.Players) < MinPlayers || len(t.Players) > MaxPlayers {
		return fmt.Errorf("%w: %d seats", ErrInvalidPlayerCount, len(t.Players))
	}
	for i, s := range t.Players {
		if _, ok := StrategyRegistry[s.Strategy]; !ok {
			return fmt.Errorf("seat %d: %w: %q", i+1, ErrUnknownStrategy, s.Strategy)
		}
	}
	if t.Games < 0 {
		return fmt.Errorf("games must not be negative, got %d", t.Games)
	}
	return nil
}

// NewGame seats the table's strategies, deals and sets up a game. Game n
// of a table uses seed Seed+n, so every game is reproducible on its own.
func (t Table) NewGame(n int, logger log.EventLogger) (*GameState, error) {
	g := NewGame(GameConfig{Logger: logger, Seed: t.Seed + int64(n)})
	for _, seat := range t.Players {
		s, err := NewStrategy(seat.Strategy, rand.New(rand.NewSource(g.Rand().Int63())))
		if err != nil {
			return nil, err
		}
		if _, err := g.AddPlayer(s); err != nil {
			return nil, err
		}
	}

	deal := g.Init
	if t.Random {
		deal = g.InitRandom
	}
	if err := deal(); err != nil {
		return nil, err
	}
	if err := g.Setup(); err != nil {
		return nil, err
	}
	return g, nil
}
