package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/models"
)

func newTestStore(start time.Time) (*Store, *time.Time) {
	clock := start
	s := New()
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestStore_Initial(t *testing.T) {
	s := New()
	snap := s.Snapshot()

	assert.False(t, snap.Loaded)
	assert.True(t, snap.LastUpdate.IsZero())
	assert.Empty(t, snap.Aircraft)
}

func TestStore_Replace(t *testing.T) {
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestStore(start)

	changed := s.Replace([]models.Aircraft{
		{ICAO: "a", Callsign: "ONE", Type: "A320", Description: "AIRBUS A-320", Distance: 12, Altitude: 9000},
		{ICAO: "b", Callsign: "TWO", Type: "F16", Military: true, Distance: 4, Altitude: 31000},
		{ICAO: "c", Callsign: "THREE", Type: "A320", Description: "AIRBUS A-320", Distance: 20},
	})

	require.True(t, changed)
	snap := s.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, start, snap.LastUpdate)
	assert.Len(t, snap.Aircraft, 3)
	assert.Equal(t, []string{"AIRBUS A-320", "F16"}, snap.Descriptions)
	assert.Equal(t, 3, snap.Stats.Total)
	assert.Equal(t, 1, snap.Stats.Military)
	assert.Equal(t, "TWO", snap.Stats.Closest.Callsign)
	assert.Equal(t, "TWO", snap.Stats.Highest.Callsign)
	assert.Equal(t, uint64(1), snap.Revision)
}

func TestStore_ReplaceUnchanged(t *testing.T) {
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s, clock := newTestStore(start)

	list := []models.Aircraft{{ICAO: "a", Callsign: "ONE"}}
	require.True(t, s.Replace(list))

	*clock = start.Add(time.Minute)
	assert.False(t, s.Replace([]models.Aircraft{{ICAO: "a", Callsign: "ONE"}}))

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.Revision)
	assert.Equal(t, start.Add(time.Minute), snap.LastUpdate, "timestamp moves even when content is unchanged")
}

func TestStore_ReplaceDuplicateICAO(t *testing.T) {
	s := New()
	s.Replace([]models.Aircraft{{ICAO: "dup", Callsign: "A"}, {ICAO: "dup", Callsign: "B"}})

	assert.Len(t, s.Snapshot().Aircraft, 2)
}

func TestStore_ReplaceCopiesInput(t *testing.T) {
	s := New()
	list := []models.Aircraft{{ICAO: "a", Callsign: "ONE"}}
	s.Replace(list)

	list[0].Callsign = "MUTATED"
	assert.Equal(t, "ONE", s.Snapshot().Aircraft[0].Callsign)
}

func TestStore_MarkAttemptKeepsList(t *testing.T) {
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s, clock := newTestStore(start)
	s.Replace([]models.Aircraft{{ICAO: "a", Callsign: "ONE"}})
	before := s.Snapshot()

	*clock = start.Add(30 * time.Second)
	s.MarkAttempt()

	after := s.Snapshot()
	assert.Equal(t, before.Aircraft, after.Aircraft)
	assert.Equal(t, before.Revision, after.Revision)
	assert.Equal(t, start.Add(30*time.Second), after.LastUpdate)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Nil(t, stats.Closest)
	assert.Nil(t, stats.Highest)
}
