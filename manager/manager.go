// Package manager implements the cache manager: a registry mapping
// (dbName, slot) to a cache core, exposing aggregate hit-ratio counters
// and periodic maintenance across every registered core. Grounded
// verbatim on pika_cache_manager.cc.
package manager

import (
	"fmt"
	"sync"

	"github.com/rediscache/rcache/cache"
	"github.com/rediscache/rcache/log"
)

// Manager owns one cache.Core per (dbName, slot) pair.
type Manager struct {
	mu     sync.RWMutex
	caches map[string]*cache.Core
	log    log.Logger
}

// New constructs an empty Manager.
func New(logger log.Logger) *Manager {
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Manager{caches: make(map[string]*cache.Core), log: logger}
}

func slotKey(dbName string, slot int) string { return fmt.Sprintf("%s%d", dbName, slot) }

// Register installs one already-constructed core under (dbName, slot).
func (m *Manager) Register(dbName string, slot int, core *cache.Core) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches[slotKey(dbName, slot)] = core
}

// DBSlots names a database and how many slots it owns, the unit Init takes
// (mirrors PikaCacheManager::Init's db->SlotNum() loop).
type DBSlots struct {
	DBName   string
	SlotNum  int
	NewSlot  func(slot int) (*cache.Core, error)
}

// Init batch-registers every slot of every database, constructing each
// slot's core via NewSlot.
func (m *Manager) Init(dbs []DBSlots) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, db := range dbs {
		for i := 0; i < db.SlotNum; i++ {
			core, err := db.NewSlot(i)
			if err != nil {
				return fmt.Errorf("manager: init %s slot %d: %w", db.DBName, i, err)
			}
			m.caches[slotKey(db.DBName, i)] = core
		}
	}
	return nil
}

// Get returns the core registered for (dbName, slot), if any.
func (m *Manager) Get(dbName string, slot int) (*cache.Core, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.caches[slotKey(dbName, slot)]
	return c, ok
}

// ProcessCronTask iterates every registered core and invokes
// ActiveExpireCycle (via ProcessCronTask), then logs the aggregate hit
// ratio, mirroring PikaCacheManager::ProcessCronTask.
func (m *Manager) ProcessCronTask() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.caches {
		c.ProcessCronTask()
	}
	m.log.Info("cache cron task complete", log.Fields{"hit_ratio": m.HitRatio()})
}

// HitRatio returns the process-wide hits/(hits+misses) ratio (the
// counters are process-wide, so any one core's HitRatio already reflects
// the aggregate; kept here for API symmetry with the original
// PikaCacheManager::HitRatio).
func (m *Manager) HitRatio() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.caches {
		return c.HitRatio()
	}
	return 0
}

// ClearHitRatio resets the process-wide hit/miss counters.
func (m *Manager) ClearHitRatio() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.caches {
		c.ClearHitRatio()
		return
	}
}
