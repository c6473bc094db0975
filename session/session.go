package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mo-shahab/pong-arena/ball"
	"github.com/mo-shahab/pong-arena/config"
	"github.com/mo-shahab/pong-arena/game"
)

var ErrNotFound = errors.New("session not found")

// Session is one running match and the client watching it
type Session struct {
	ID       string
	ClientID string
	Engine   *game.Engine
}

// Manager is the state of all the sessions
type Manager struct {
	cfg config.Config
	// RandSource builds the random source of each new match, nil uses the
	// process wide source
	RandSource func() ball.Rand

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

func generateSessionID() string {
	return uuid.New().String()[:6]
}

// Create sets up a fresh match for clientID and starts its engine. Frames go
// to b until the session is removed.
func (m *Manager) Create(ctx context.Context, clientID string, b game.Broadcaster) *Session {
	var rng ball.Rand
	if m.RandSource != nil {
		rng = m.RandSource()
	}
	match := game.NewMatch(m.cfg, rng)
	engine := game.NewEngine(match, m.cfg.Server.TickRate.Std(), b)

	m.mu.Lock()
	id := generateSessionID()
	for m.sessions[id] != nil {
		id = generateSessionID()
	}
	s := &Session{
		ID:       id,
		ClientID: clientID,
		Engine:   engine,
	}
	m.sessions[id] = s
	m.mu.Unlock()

	log.Printf("Created session %s for client %s, match %s", id, clientID, match.ID)
	engine.Start(ctx)
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Remove stops the session's engine and forgets it
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.Engine.Stop()
	log.Printf("Session %s has been closed", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown stops every running session
func (m *Manager) Shutdown() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		_ = m.Remove(id)
	}
}
