package store

import (
	"reflect"
	"sync"
	"time"

	"jetdash/internal/models"
	"jetdash/internal/view"
)

// Stats summarises a snapshot for the stat tiles
type Stats struct {
	Total    int
	Military int
	Closest  *models.Aircraft // smallest Distance, nil when empty
	Highest  *models.Aircraft // largest Altitude, nil when empty
}

// Snapshot is a read-only view of the store at one point in time
type Snapshot struct {
	Aircraft     []models.Aircraft
	Descriptions []string // sorted unique Description-or-Type values
	Stats        Stats
	LastUpdate   time.Time // last poll attempt, successful or not
	Loaded       bool      // at least one poll has completed
	Revision     uint64    // bumped whenever the list content changes
}

// Store holds the most recently fetched aircraft list. The list is replaced
// wholesale on every successful poll; nothing older is retained.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Replace installs a freshly polled list and reports whether it differs from
// the previous one. Descriptions and stats are only recomputed on change.
func (s *Store) Replace(aircraft []models.Aircraft) bool {
	list := make([]models.Aircraft, len(aircraft))
	copy(list, aircraft)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.LastUpdate = s.now()
	wasLoaded := s.snap.Loaded
	s.snap.Loaded = true

	if wasLoaded && reflect.DeepEqual(s.snap.Aircraft, list) {
		return false
	}

	s.snap.Aircraft = list
	s.snap.Descriptions = view.Descriptions(list)
	s.snap.Stats = ComputeStats(list)
	s.snap.Revision++
	return true
}

// MarkAttempt records a failed poll: the timestamp moves so the countdown
// resets, the list stays as it was.
func (s *Store) MarkAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.LastUpdate = s.now()
	s.snap.Loaded = true
}

// Snapshot returns the current state. The aircraft slice must not be modified.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// ComputeStats derives the stat tiles. Missing distance and altitude count as 0.
func ComputeStats(aircraft []models.Aircraft) Stats {
	stats := Stats{Total: len(aircraft)}
	for i := range aircraft {
		ac := &aircraft[i]
		if ac.Military {
			stats.Military++
		}
		if stats.Closest == nil || ac.Distance < stats.Closest.Distance {
			stats.Closest = ac
		}
		if stats.Highest == nil || ac.Altitude > stats.Highest.Altitude {
			stats.Highest = ac
		}
	}
	return stats
}
