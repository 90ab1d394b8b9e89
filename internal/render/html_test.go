package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/backend"
	"jetdash/internal/models"
	"jetdash/internal/store"
	"jetdash/internal/view"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(16)
	require.NoError(t, err)
	return r
}

func demoPage() DashboardPage {
	demo := backend.DemoAircraft()
	st := view.DefaultState()
	return DashboardPage{
		Chrome:        Chrome{Theme: "dark", Version: "v1.2.3", MapLink: MapLink(nil), Path: "/"},
		RefreshPeriod: 60,
		Site:          &models.Coordinates{Lat: 51.17, Lon: 5.45},
		State:         st,
		Descriptions:  view.Descriptions(demo),
		SortFields:    view.SortFields,
		Stats:         NewStatTiles(store.ComputeStats(demo)),
		Grid:          BuildGrid(view.Derive(demo, st), false),
		Countdown:     "1:00",
		SecondsLeft:   60,
	}
}

func TestRenderer_Dashboard(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Dashboard(&buf, demoPage()))
	html := buf.String()

	assert.Contains(t, html, `data-theme="dark"`)
	assert.Contains(t, html, "KLM1234")
	assert.Contains(t, html, "aircraft-header-10000-15000")
	assert.Contains(t, html, "altitude-gt-30000")
	assert.Contains(t, html, "On ground")
	assert.Contains(t, html, "RYR7QP (36,000ft)")
	assert.Contains(t, html, "REFRESH_PERIOD")
	assert.Contains(t, html, "SITE_LATITUDE")
	assert.Contains(t, html, `style="display: none"`)
	assert.Contains(t, html, "Flight details")
	assert.Less(t, strings.Index(html, "N512PC"), strings.Index(html, "RYR7QP"))
	assert.Equal(t, 7, r.CachedCards())
}

func TestRenderer_DashboardWithoutSite(t *testing.T) {
	r := newTestRenderer(t)
	page := demoPage()
	page.Site = nil

	var buf bytes.Buffer
	require.NoError(t, r.Dashboard(&buf, page))

	assert.NotContains(t, buf.String(), "SITE_LATITUDE")
}

func TestRenderer_GridPlaceholder(t *testing.T) {
	r := newTestRenderer(t)

	var loading, empty bytes.Buffer
	require.NoError(t, r.Grid(&loading, BuildGrid(nil, true)))
	require.NoError(t, r.Grid(&empty, BuildGrid(nil, false)))

	assert.Contains(t, loading.String(), LoadingText)
	assert.Contains(t, loading.String(), "loading-spinner")
	assert.Contains(t, empty.String(), EmptyText)
	assert.NotContains(t, empty.String(), "aircraft-card")
}

func TestRenderer_CardCache(t *testing.T) {
	r := newTestRenderer(t)
	c := NewCard(backend.DemoAircraft()[0])

	first, err := r.Card(c)
	require.NoError(t, err)
	second, err := r.Card(NewCard(backend.DemoAircraft()[0]))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.CachedCards())
}

func TestRenderer_CardEscapes(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Card(NewCard(models.Aircraft{Callsign: "<script>x</script>"}))
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>x")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestRenderer_Grid_Idempotent(t *testing.T) {
	r := newTestRenderer(t)
	grid := BuildGrid(backend.DemoAircraft(), false)

	var a, b bytes.Buffer
	require.NoError(t, r.Grid(&a, grid))
	require.NoError(t, r.Grid(&b, grid))

	assert.Equal(t, a.String(), b.String())
}

func TestRenderer_Config(t *testing.T) {
	r := newTestRenderer(t)
	page := ConfigPage{
		Chrome: Chrome{Theme: "light", Version: "dev"},
		Panel: NewConfigPanel(models.BackendConfig{
			Location:           models.Coordinates{Lat: 51.17, Lon: 5.45},
			MaxRangeKilometers: 30,
			AircraftTypes:      []string{"ALL"},
			SlackWebHookURL:    "https://hooks.slack.test",
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Config(&buf, page))
	html := buf.String()

	assert.Contains(t, html, "All aircraft types")
	assert.Contains(t, html, `id="location-map"`)
	assert.Contains(t, html, "#E74C3C")
	assert.Contains(t, html, "Not configured")
	assert.Contains(t, html, "Active")
}

func TestRenderer_ConfigError(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Config(&buf, ConfigPage{Error: ConfigErrorText}))

	assert.Contains(t, buf.String(), "Failed to load configuration data")
	assert.NotContains(t, buf.String(), "tracking-section")
}
