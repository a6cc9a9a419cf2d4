// Package session provides the in-memory match registry for the Chain
// Reaction game server. Matches live only for the process lifetime; there
// is deliberately no persistence.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gridgames/chainreaction/game/engine"
	"github.com/gridgames/chainreaction/game/service"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidMatchID = errors.New("invalid match ID")
)

// Manager handles match lifecycle
type Manager struct {
	matches map[string]*service.Match
	mu      sync.RWMutex
}

// NewManager creates a new match manager
func NewManager() *Manager {
	return &Manager{
		matches: make(map[string]*service.Match),
	}
}

// Create registers a new match with a fresh engine and a generated ID.
func (m *Manager) Create(mode service.Mode, computerSide engine.Owner) (*service.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	match := &service.Match{
		ID:             uuid.NewString(),
		Mode:           mode,
		Engine:         engine.NewGameEngine(),
		ComputerSide:   computerSide,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.matches[match.ID] = match
	return match, nil
}

// Get retrieves a match by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Match, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidMatchID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if match, ok := m.matches[strings.ToLower(id)]; ok {
		return match, nil
	}
	return nil, ErrMatchNotFound
}

// List returns all active matches
func (m *Manager) List() []*service.Match {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Match, 0, len(m.matches))
	for _, match := range m.matches {
		result = append(result, match)
	}
	return result
}

// Delete removes a match
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, ok := m.matches[key]; !ok {
		return ErrMatchNotFound
	}
	delete(m.matches, key)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a match
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	match, ok := m.matches[strings.ToLower(id)]
	if !ok {
		return ErrMatchNotFound
	}
	match.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpired removes matches that haven't been accessed in the given
// duration. It returns how many were removed.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, match := range m.matches {
		if match.LastAccessedAt.Before(cutoff) {
			delete(m.matches, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active matches
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}
