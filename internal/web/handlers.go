package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jetdash/internal/backend"
	"jetdash/internal/render"
	"jetdash/internal/store"
	"jetdash/internal/view"
)

const (
	paramDemo        = "demo"
	lastUpdateLayout = "15:04:05"
	htmlContentType  = "text/html; charset=utf-8"
)

// dashboardData is the state one dashboard request works from
type dashboardData struct {
	snap  store.Snapshot
	state view.State
	demo  bool
}

// load picks the record source for this request: the demo list when demo mode
// is on globally or requested, the store otherwise
func (s *Server) load(c *gin.Context) dashboardData {
	q := c.Request.URL.Query()
	d := dashboardData{
		state: view.FromQuery(q),
		demo:  s.cfg.Demo || queryFlag(q.Get(paramDemo)),
	}

	if d.demo && !s.cfg.Demo {
		list := backend.DemoAircraft()
		d.snap = store.Snapshot{
			Aircraft:     list,
			Descriptions: view.Descriptions(list),
			Stats:        store.ComputeStats(list),
			LastUpdate:   s.now(),
			Loaded:       true,
		}
		return d
	}
	d.snap = s.deps.Store.Snapshot()
	return d
}

// link is the URL of the state, carrying the demo flag when set
func (d dashboardData) link(st view.State) string {
	q := st.Query()
	if d.demo {
		q.Set(paramDemo, "1")
	}
	if enc := q.Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}

func (d dashboardData) grid() render.Grid {
	g := render.BuildGrid(view.Derive(d.snap.Aircraft, d.state), !d.snap.Loaded)
	g.Stats = render.NewStatTiles(d.snap.Stats)
	g.Descriptions = d.snap.Descriptions
	return g
}

func (s *Server) chrome(c *gin.Context) render.Chrome {
	return render.Chrome{
		Theme:   s.theme(c),
		Version: s.version.Get(c.Request.Context()),
		MapLink: render.MapLink(s.cfg.Site),
		Path:    c.Request.URL.RequestURI(),
	}
}

func (s *Server) handleDashboard(c *gin.Context) {
	d := s.load(c)

	page := render.DashboardPage{
		Chrome:         s.chrome(c),
		RefreshPeriod:  s.cfg.RefreshPeriod,
		Site:           s.cfg.Site,
		State:          d.state,
		Descriptions:   d.snap.Descriptions,
		SortFields:     view.SortFields,
		Demo:           d.demo,
		ToggleOrderURL: d.link(d.state.Apply(view.ToggleSortOrder())),
		ResetURL:       d.link(d.state.Apply(view.ResetFilters())),
		Stats:          render.NewStatTiles(d.snap.Stats),
		Grid:           d.grid(),
		LastUpdate:     formatLastUpdate(d.snap.LastUpdate),
		Countdown:      s.deps.Countdown.Display(),
		SecondsLeft:    s.deps.Countdown.SecondsLeft(),
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", htmlContentType)
	if err := s.deps.Renderer.Dashboard(c.Writer, page); err != nil {
		s.renderError(c, err)
	}
}

// handleGrid serves the grid fragment the page script swaps in on refresh
func (s *Server) handleGrid(c *gin.Context) {
	d := s.load(c)

	c.Status(http.StatusOK)
	c.Header("Content-Type", htmlContentType)
	if err := s.deps.Renderer.Grid(c.Writer, d.grid()); err != nil {
		s.renderError(c, err)
	}
}

func (s *Server) handleConfig(c *gin.Context) {
	page := render.ConfigPage{Chrome: s.chrome(c)}

	cfg, err := s.configSource(c).FetchConfig(c.Request.Context())
	if err != nil {
		slog.Error("Error fetching config", "error", err)
		page.Error = render.ConfigErrorText
	} else {
		page.Panel = render.NewConfigPanel(*cfg)
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", htmlContentType)
	if err := s.deps.Renderer.Config(c.Writer, page); err != nil {
		s.renderError(c, err)
	}
}

// configSource honours ?demo=1 on the config page as well
func (s *Server) configSource(c *gin.Context) ConfigSource {
	if queryFlag(c.Query(paramDemo)) {
		return backend.DemoSource{}
	}
	return s.deps.Backend
}

// renderError is only reached when a template fails; the renderer buffers, so
// nothing has been written yet
func (s *Server) renderError(c *gin.Context, err error) {
	slog.Error("Error rendering page", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "internal error")
}

func formatLastUpdate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(lastUpdateLayout)
}

func queryFlag(v string) bool {
	return v == "1" || v == "true" || v == "on"
}
