package render

import (
	"jetdash/internal/models"
	"jetdash/internal/view"
)

// Chrome is shared by every page
type Chrome struct {
	Theme   string
	Version string
	MapLink string
	Path    string // current path and query, where the theme toggle returns to
}

// DashboardPage is everything the dashboard template reads
type DashboardPage struct {
	Chrome

	RefreshPeriod int
	Site          *models.Coordinates

	State        view.State
	Descriptions []string
	SortFields   []view.SortField
	Demo         bool

	// links computed by the handler so they carry the rest of the state
	ToggleOrderURL string
	ResetURL       string

	Stats       StatTiles
	Grid        Grid
	LastUpdate  string
	Countdown   string
	SecondsLeft int
}

type ConfigPage struct {
	Chrome

	Panel ConfigPanel
	Error string // replaces every section when set
}
