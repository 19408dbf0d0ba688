package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	mrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/service"
	"github.com/wricardo/tangosim/game/strategy"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

const maxIDLength = 64

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	now      func() time.Time
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		now:      time.Now,
	}
}

// Create creates a new session hosting one match. Each seat is either
// service.SeatHuman or a strategy name; automated seats are seeded from seed
// and their seat index. A seed of 0 picks one at random. An empty id is
// replaced by a random 4-character one.
func (m *Manager) Create(id, configName string, rules engine.Ruleset, seats []string, seed int64) (*service.Session, error) {
	if len(id) > maxIDLength || strings.ContainsAny(id, "/ \t\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	if len(seats) != rules.Players {
		return nil, fmt.Errorf("%w: %d seats for %d players", service.ErrInvalidSeats, len(seats), rules.Players)
	}
	if seed == 0 {
		seed = mrand.Int63()
	}

	strategies := make([]match.Strategy, len(seats))
	humans := make(map[int]*strategy.Scripted)
	normalized := make([]string, len(seats))
	for i, seat := range seats {
		name := strings.ToLower(strings.TrimSpace(seat))
		normalized[i] = name
		if name == service.SeatHuman {
			h := strategy.NewScripted()
			humans[i] = h
			strategies[i] = h
			continue
		}
		if name == strategy.NameScripted {
			return nil, fmt.Errorf("%w: seat %d: use %q for interactive seats", service.ErrInvalidSeats, i, service.SeatHuman)
		}
		s, err := strategy.ByName(name, i, seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("%w: seat %d: %w", service.ErrInvalidSeats, i, err)
		}
		strategies[i] = s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	mt, err := match.New(rules, strategies, match.WithID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	now := m.now()
	sess := &service.Session{
		ID:             id,
		ConfigName:     configName,
		Match:          mt,
		Seats:          normalized,
		Humans:         humans,
		Seed:           seed,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[strings.ToLower(id)] = sess

	log.Printf("[SESSION] created %s: ruleset=%s seats=%v seed=%d", id, rules.Name, normalized, seed)
	return sess, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	log.Printf("[SESSION] deleted %s", id)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}
	sess.LastAccessedAt = m.now()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		log.Printf("[SESSION] cleaned up %d expired sessions", removed)
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates an unused random 4-character session ID
func (m *Manager) generateSessionID() string {
	for {
		// 2 random bytes give 4 hex characters
		bytes := make([]byte, 2)
		_, _ = rand.Read(bytes)
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id
		}
	}
}

func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
