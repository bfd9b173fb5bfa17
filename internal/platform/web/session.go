package web

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// ErrSessionNotFound is returned for unknown or malformed session IDs.
var ErrSessionNotFound = errors.New("web: session not found")

// Session is one game played over HTTP. The engine is not safe for
// concurrent use, so every access goes through the session mutex.
type Session struct {
	ID     uuid.UUID
	GameID string
	Mode   t2048.Mode

	mu       sync.Mutex
	engine   *t2048.Engine
	started  time.Time
	lastSeen time.Time
	recorded int // Score already written to the store for this game
}

// Do runs fn with exclusive access to the engine. The game clock is
// brought up to date first.
func (s *Session) Do(now time.Time, fn func(e *t2048.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
	if !s.engine.GameOver() {
		s.engine.SetElapsed(now.Sub(s.started))
	}
	return fn(s.engine)
}

// Snapshot returns the current engine state.
func (s *Session) Snapshot() t2048.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// restart begins a new game in the same session.
func (s *Session) restart(now time.Time, size, startTiles int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := s.engine.BestScore()
	if err := s.engine.Reset(size, startTiles); err != nil {
		return err
	}
	s.engine.SetBestScore(best)
	s.started = now
	s.lastSeen = now
	s.recorded = 0
	return nil
}

// claimRecord reports whether score should be stored and marks it stored.
// A game is stored again only when its score went up, so undo followed by
// another loss does not duplicate entries.
func (s *Session) claimRecord(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if score <= s.recorded {
		return false
	}
	s.recorded = score
	return true
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	cfg      config.T2048Config
	now      func() time.Time
}

// NewManager creates a session manager using cfg for rules and modes.
func NewManager(cfg config.T2048Config) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		cfg:      cfg,
		now:      time.Now,
	}
}

// rules converts the loaded config into engine rules.
func (m *Manager) rules() t2048.Rules {
	return t2048.Rules{
		Sizes:           m.cfg.Sizes(),
		WinTile:         m.cfg.Rules.WinTile,
		Spawn4Prob:      m.cfg.Rules.Spawn4,
		HistoryCapacity: m.cfg.Rules.HistoryCapacity,
	}
}

// setup returns size and start tiles for mode.
func (m *Manager) setup(mode t2048.Mode) (size, startTiles int, err error) {
	if mc, ok := m.cfg.Mode(string(mode)); ok {
		return mc.Size, mc.StartTiles, nil
	}
	info, ok := t2048.LookupMode(mode)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown mode %q", t2048.ErrInvalidArgument, string(mode))
	}
	return info.Size, info.StartTiles, nil
}

// Create starts a new game session for mode with the given best score.
func (m *Manager) Create(mode t2048.Mode, best int) (*Session, error) {
	size, startTiles, err := m.setup(mode)
	if err != nil {
		return nil, err
	}

	now := m.now()
	rng := rand.New(rand.NewSource(now.UnixNano()))
	engine := t2048.NewEngine(m.rules(), rng)
	if err := engine.Reset(size, startTiles); err != nil {
		return nil, err
	}
	engine.SetBestScore(best)

	s := &Session{
		ID:       uuid.New(),
		GameID:   mode.GameID(),
		Mode:     mode,
		engine:   engine,
		started:  now,
		lastSeen: now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	m.mu.RLock()
	s, ok := m.sessions[uid]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Restart begins a new game in an existing session.
func (m *Manager) Restart(s *Session) error {
	size, startTiles, err := m.setup(s.Mode)
	if err != nil {
		return err
	}
	return s.restart(m.now(), size, startTiles)
}

// Remove deletes a session and returns it.
func (m *Manager) Remove(id string) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	return s, nil
}

// Prune removes sessions idle for longer than maxIdle and returns them.
func (m *Manager) Prune(maxIdle time.Duration) []*Session {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	var pruned []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			pruned = append(pruned, s)
		}
	}
	return pruned
}

// Drain removes and returns every session.
func (m *Manager) Drain() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	drained := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		drained = append(drained, s)
	}
	clear(m.sessions)
	return drained
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
