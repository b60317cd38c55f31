// Package cache provides an in-process LRU cache with per-entry expiry and a
// manager that sweeps expired entries in the background.
package cache

import (
	"sync"
	"time"

	"fintrack/internal/logger"
)

// Cache defines a generic keyed cache.
type Cache[T any] interface {
	// Get returns the value for key if it is present and not expired.
	Get(key string) (T, bool)

	// Set stores a value, replacing any existing entry for key.
	Set(key string, data T)

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string)

	// Size returns the number of entries, expired or not.
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically sweeps expired entries from registered caches.
type Manager struct {
	mu          sync.Mutex
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
	started     bool
	stopped     bool
}

// NewManager creates a cache manager.
func NewManager() *Manager {
	return &Manager{
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the sweep.
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches = append(m.caches, c)
}

// StartCleanup starts the background sweep. A manager sweeps at most once in
// its lifetime; later calls and calls after Stop are ignored.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.stopped || interval <= 0 {
		return
	}
	m.started = true
	go m.cleanup(interval)
}

// CleanExpired sweeps every registered cache once and returns the number of
// entries removed.
func (m *Manager) CleanExpired() int {
	m.mu.Lock()
	caches := append([]Cleaner(nil), m.caches...)
	m.mu.Unlock()

	total := 0
	for _, c := range caches {
		total += c.CleanExpired()
	}
	return total
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.CleanExpired(); n > 0 {
				logger.Get().Debugw("Swept expired cache entries", "count", n)
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop ends the background sweep and waits for it to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	running := m.started && !m.stopped
	m.stopped = true
	m.mu.Unlock()

	if !running {
		return
	}
	close(m.stopCleanup)
	<-m.cleanupDone
}
