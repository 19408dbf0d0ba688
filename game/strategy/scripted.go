package strategy

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

// ErrNoDecision is returned when a Scripted player is asked to act with an
// empty queue.
var ErrNoDecision = errors.New("no queued decision")

// Scripted replays queued decisions. It stands in for a human seat: the
// service queues what the player asked for and then steps the match.
type Scripted struct {
	mu        sync.Mutex
	decisions []match.Decision
	pops      []hex.Position
}

// NewScripted creates a scripted player with the given decisions queued.
func NewScripted(decisions ...match.Decision) *Scripted {
	return &Scripted{decisions: decisions}
}

// Queue appends a decision.
func (s *Scripted) Queue(d match.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, d)
}

// QueuePop appends a pop choice. Choices are used in order whenever more
// than one tile can pop.
func (s *Scripted) QueuePop(p hex.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pops = append(s.pops, p)
}

// Pending returns the number of queued decisions.
func (s *Scripted) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions)
}

// Clear drops every queued decision and pop choice.
func (s *Scripted) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = nil
	s.pops = nil
}

func (s *Scripted) FormulateAction(*engine.GameState, []tile.Tile) (match.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.decisions) == 0 {
		return match.Decision{}, ErrNoDecision
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

func (s *Scripted) FormulateTurn(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error) {
	d, err := s.FormulateAction(state, pieces)
	if err != nil {
		return tile.Tile{}, hex.Position{}, err
	}
	if d.Type != match.ActionPlace {
		return tile.Tile{}, hex.Position{}, fmt.Errorf("%w: scripted %s where a placement was expected", engine.ErrInvalidMove, d.Type)
	}
	return d.Tile, d.Position, nil
}

// PickPieceToPop uses the next queued choice, or the first candidate when
// none is queued.
func (s *Scripted) PickPieceToPop(_ *engine.GameState, _ []tile.Tile, candidates []hex.Position) (hex.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pops) == 0 {
		return candidates[0], nil
	}
	p := s.pops[0]
	s.pops = s.pops[1:]
	return p, nil
}
