package strategy

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/wricardo/tangosim/game/match"
)

// ErrUnknownStrategy is returned by ByName for names not in the registry.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Factory builds a strategy for a player from a seed.
type Factory func(player int, seed int64) match.Strategy

const (
	NameRandom    = "random"
	NameGreedy    = "greedy"
	NameLookahead = "lookahead"
	NameScripted  = "scripted"
)

var registry = map[string]Factory{
	NameRandom:    func(player int, seed int64) match.Strategy { return NewRandom(player, seed) },
	NameGreedy:    func(player int, seed int64) match.Strategy { return NewGreedy(player, seed) },
	NameLookahead: func(player int, seed int64) match.Strategy { return NewLookahead(player, seed) },
	NameScripted:  func(int, int64) match.Strategy { return NewScripted() },
}

// ByName builds a registered strategy. Names are case-insensitive.
func ByName(name string, player int, seed int64) (match.Strategy, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
	return f(player, seed), nil
}

// Names lists the registered strategy names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Automated lists the strategies that play without input, sorted.
func Automated() []string {
	return slices.DeleteFunc(Names(), func(n string) bool { return n == NameScripted })
}
