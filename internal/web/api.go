package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jetdash/internal/version"
	"jetdash/internal/view"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type statusResponse struct {
	Phase       string     `json:"phase"`
	SecondsLeft int        `json:"seconds_left"`
	Countdown   string     `json:"countdown"`
	LastUpdate  *time.Time `json:"last_update"`
	Loaded      bool       `json:"loaded"`
	Revision    uint64     `json:"revision"`
	Aircraft    int        `json:"aircraft"`
}

type historyEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	OK            bool      `json:"ok"`
	AircraftCount int       `json:"aircraft_count"`
	Changed       bool      `json:"changed"`
	DurationMS    int64     `json:"duration_ms"`
	Error         string    `json:"error,omitempty"`
}

// handleAircraft returns the derived view for the query's filters and sort
func (s *Server) handleAircraft(c *gin.Context) {
	d := s.load(c)
	c.JSON(http.StatusOK, view.Derive(d.snap.Aircraft, d.state))
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":   s.version.Get(c.Request.Context()),
		"dashboard": version.Info(),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	snap := s.deps.Store.Snapshot()
	resp := statusResponse{
		Phase:       s.deps.Countdown.Phase().String(),
		SecondsLeft: s.deps.Countdown.SecondsLeft(),
		Countdown:   s.deps.Countdown.Display(),
		Loaded:      snap.Loaded,
		Revision:    snap.Revision,
		Aircraft:    len(snap.Aircraft),
	}
	if !snap.LastUpdate.IsZero() {
		resp.LastUpdate = &snap.LastUpdate
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.deps.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Poll history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	events, err := s.deps.History.Recent(limit)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load poll history"})
		return
	}

	entries := make([]historyEntry, len(events))
	for i, e := range events {
		entries[i] = historyEntry{
			Timestamp:     e.Timestamp,
			OK:            e.OK,
			AircraftCount: e.AircraftCount,
			Changed:       e.Changed,
			DurationMS:    e.Duration.Milliseconds(),
			Error:         e.Error,
		}
	}
	c.JSON(http.StatusOK, entries)
}
