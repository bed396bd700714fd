package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Manager owns the live store instances, one per active learner session.
// Stores are explicitly created and disposed; nothing here is a process
// singleton, so tests get a fresh manager each time and sessions cannot
// leak into each other. All stores share one progress tracker.
type Manager struct {
	mu     sync.RWMutex
	stores map[string]*Store

	progress *ProgressTracker
	logger   *slog.Logger
}

func NewManager(progress *ProgressTracker, logger *slog.Logger) *Manager {
	if progress == nil {
		progress = NewProgressTracker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		stores:   make(map[string]*Store),
		progress: progress,
		logger:   logger,
	}
}

// Create allocates a new store and returns its handle.
func (m *Manager) Create() (string, *Store) {
	id := uuid.NewString()
	store := NewStore(m.progress, m.logger.With("session_id", id))

	m.mu.Lock()
	m.stores[id] = store
	m.mu.Unlock()

	m.logger.Debug("session store created", "session_id", id)
	return id, store
}

// Get looks up a live store by id.
func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, ok := m.stores[id]
	return store, ok
}

// Dispose removes a store from the registry. Shared progress is
// untouched.
func (m *Manager) Dispose(id string) {
	m.mu.Lock()
	_, ok := m.stores[id]
	delete(m.stores, id)
	m.mu.Unlock()

	if ok {
		m.logger.Debug("session store disposed", "session_id", id)
	}
}

// Progress returns the shared progress tracker.
func (m *Manager) Progress() *ProgressTracker {
	return m.progress
}

// Count reports the number of live stores.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stores)
}
