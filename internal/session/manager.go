package session

import (
	"sync"
	"time"
)

// Manager serializes event handling per LINE user so that replies to quick
// successive messages go out in arrival order. Different users run in parallel.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu       sync.Mutex
	lastUsed time.Time
	active   int
}

func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*userLock),
	}
}

// WithLock runs fn while holding the lock for userID.
func (m *Manager) WithLock(userID string, fn func()) {
	m.mu.Lock()
	ul, ok := m.locks[userID]
	if !ok {
		ul = &userLock{}
		m.locks[userID] = ul
	}
	ul.active++
	m.mu.Unlock()

	ul.mu.Lock()
	defer func() {
		ul.mu.Unlock()
		m.mu.Lock()
		ul.active--
		ul.lastUsed = time.Now()
		m.mu.Unlock()
	}()

	fn()
}

// Cleanup removes idle locks not used within maxAge and returns how many went.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, ul := range m.locks {
		if ul.active == 0 && now.Sub(ul.lastUsed) > maxAge {
			delete(m.locks, id)
			removed++
		}
	}
	return removed
}

// Len reports how many users currently have a lock entry.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
