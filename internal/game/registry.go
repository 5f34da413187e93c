package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// StrategyRegistry maps strategy names to their constructor functions.
var StrategyRegistry = map[string]func(rng *rand.Rand) Strategy{
	"random": func(rng *rand.Rand) Strategy { return NewRandomStrategy(rng) },
	"damage": func(*rand.Rand) Strategy { return NewDamageStrategy() },
}

// NewStrategy looks up a strategy by name and returns a new instance.
func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	ctor, ok := StrategyRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, StrategyNames())
	}
	return ctor(rng), nil
}

// StrategyNames lists registered names in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(StrategyRegistry))
	for name := range StrategyRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
