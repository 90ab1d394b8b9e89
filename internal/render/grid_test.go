package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/backend"
	"jetdash/internal/models"
	"jetdash/internal/store"
)

func TestBuildGrid_Loading(t *testing.T) {
	g := BuildGrid(backend.DemoAircraft(), true)

	assert.Empty(t, g.Cards)
	assert.True(t, g.Placeholder.Visible)
	assert.True(t, g.Placeholder.Loading)
	assert.Equal(t, LoadingText, g.Placeholder.Text)
}

func TestBuildGrid_Empty(t *testing.T) {
	g := BuildGrid(nil, false)

	assert.Empty(t, g.Cards)
	assert.True(t, g.Placeholder.Visible)
	assert.False(t, g.Placeholder.Loading)
	assert.Equal(t, EmptyText, g.Placeholder.Text)
}

func TestBuildGrid_Cards(t *testing.T) {
	demo := backend.DemoAircraft()
	g := BuildGrid(demo, false)

	require.Len(t, g.Cards, len(demo))
	assert.False(t, g.Placeholder.Visible)
	for i, ac := range demo {
		assert.Equal(t, ac.Callsign, g.Cards[i].Callsign)
	}
}

func TestBuildGrid_Idempotent(t *testing.T) {
	demo := backend.DemoAircraft()

	assert.Equal(t, BuildGrid(demo, false), BuildGrid(demo, false))
}

func TestNewStatTiles(t *testing.T) {
	tiles := NewStatTiles(store.ComputeStats(backend.DemoAircraft()))

	assert.Equal(t, 7, tiles.Total)
	assert.Equal(t, 2, tiles.Military)
	assert.Equal(t, "N512PC (3.2km)", tiles.Closest)
	assert.Equal(t, "RYR7QP (36,000ft)", tiles.Highest)
}

func TestNewStatTiles_Empty(t *testing.T) {
	tiles := NewStatTiles(store.ComputeStats(nil))

	assert.Equal(t, StatTiles{Closest: "-", Highest: "-"}, tiles)
}

func TestNewStatTiles_UnknownCallsign(t *testing.T) {
	tiles := NewStatTiles(store.ComputeStats([]models.Aircraft{{Distance: 1.5, Altitude: 1234.6}}))

	assert.Equal(t, "Unknown (1.5km)", tiles.Closest)
	assert.Equal(t, "Unknown (1,235ft)", tiles.Highest)
}
