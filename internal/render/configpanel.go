package render

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"jetdash/internal/models"
)

const (
	defaultRangeKM = 30
	mapZoom        = 10

	ConfigErrorText = "Failed to load configuration data. Please refresh the page to try again."
	MapErrorText    = "Failed to load the map. Please refresh the page to try again."

	globeURL = "https://globe.airplanes.live/"
)

// ServiceStatus is one notification service card
type ServiceStatus struct {
	Name    string
	Active  bool
	Details []Field // only shown when active
}

// Status is the card label
func (s ServiceStatus) Status() string {
	if s.Active {
		return "Active"
	}
	return "Not configured"
}

type Field struct {
	Label string
	Value string
}

// Circle is a range overlay drawn around the site
type Circle struct {
	Kind         string // "notification" or "scan"
	RadiusMeters float64
	Color        string
	FillOpacity  float64
}

// MapWidget describes the Leaflet map on the config page
type MapWidget struct {
	Visible bool
	Error   string
	Lat     float64
	Lon     float64
	Zoom    int
	Circles []Circle
}

// ConfigPanel is the display model of the backend configuration
type ConfigPanel struct {
	Latitude          string
	Longitude         string
	NotificationRange int
	ScanRange         int
	MaxAltitude       string
	FetchInterval     string
	AircraftTypes     string
	Services          []ServiceStatus
	Map               MapWidget
}

func NewConfigPanel(cfg models.BackendConfig) ConfigPanel {
	notify := cfg.MaxRangeKilometers
	if notify == 0 {
		notify = defaultRangeKM
	}
	scan := cfg.MaxScanRangeKilometers
	if scan == 0 {
		scan = notify
	}

	p := ConfigPanel{
		Latitude:          Number(cfg.Location.Lat),
		Longitude:         Number(cfg.Location.Lon),
		NotificationRange: notify,
		ScanRange:         scan,
		MaxAltitude:       "No limit",
		FetchInterval:     "-",
		AircraftTypes:     AircraftTypesText(cfg.AircraftTypes),
		Services:          services(cfg),
		Map:               NewMapWidget(cfg.Location, notify, scan),
	}
	if cfg.MaxAltitudeFeet != 0 {
		p.MaxAltitude = strconv.Itoa(cfg.MaxAltitudeFeet)
	}
	if cfg.FetchInterval != 0 {
		p.FetchInterval = strconv.Itoa(cfg.FetchInterval)
	}
	return p
}

// AircraftTypesText summarises the configured notification types
func AircraftTypesText(types []string) string {
	switch {
	case len(types) == 0:
		return "No specific types configured"
	case slices.Contains(types, "ALL"):
		return "All aircraft types"
	case slices.Contains(types, "MILITARY"):
		others := slices.DeleteFunc(slices.Clone(types), func(t string) bool { return t == "MILITARY" })
		if len(others) == 0 {
			return "Military aircraft only"
		}
		return "Military aircraft and: " + strings.Join(others, ", ")
	}
	return strings.Join(types, ", ")
}

func services(cfg models.BackendConfig) []ServiceStatus {
	discord := ServiceStatus{Name: "Discord", Active: cfg.DiscordWebHookURL != ""}
	if discord.Active {
		colour := "No"
		if cfg.DiscordColorAltitude {
			colour = "Yes"
		}
		discord.Details = []Field{{Label: "Color by altitude", Value: colour}}
	}

	ntfy := ServiceStatus{Name: "Ntfy", Active: cfg.NtfyTopic != ""}
	if ntfy.Active {
		ntfy.Details = []Field{{Label: "Topic", Value: cfg.NtfyTopic}}
	}

	return []ServiceStatus{
		discord,
		{Name: "Slack", Active: cfg.SlackWebHookURL != ""},
		{Name: "Gotify", Active: cfg.GotifyURL != "" && cfg.GotifyToken != ""},
		ntfy,
	}
}

// NewMapWidget hides the map when the site has no coordinates and replaces it
// with an error when they are not usable
func NewMapWidget(loc models.Coordinates, notifyKM, scanKM int) MapWidget {
	if loc.Lat == 0 || loc.Lon == 0 {
		return MapWidget{}
	}
	if !validCoordinate(loc.Lat, 90) || !validCoordinate(loc.Lon, 180) {
		return MapWidget{Visible: true, Error: MapErrorText}
	}

	w := MapWidget{
		Visible: true,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
		Zoom:    mapZoom,
		Circles: []Circle{{
			Kind:         "notification",
			RadiusMeters: float64(notifyKM) * 1000,
			Color:        "#E74C3C",
			FillOpacity:  0.2,
		}},
	}
	if scanKM > notifyKM {
		w.Circles = append(w.Circles, Circle{
			Kind:         "scan",
			RadiusMeters: float64(scanKM) * 1000,
			Color:        "#3498DB",
			FillOpacity:  0.1,
		})
	}
	return w
}

func validCoordinate(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= limit
}

// MapLink builds the external globe viewer link centred on the site. Without
// site coordinates it points at the viewer's landing page.
func MapLink(site *models.Coordinates) string {
	if site == nil {
		return globeURL
	}
	lat, lon := url.QueryEscape(Number(site.Lat)), url.QueryEscape(Number(site.Lon))
	return globeURL + "?lat=" + lat + "&lon=" + lon +
		"&SiteLat=" + lat + "&SiteLon=" + lon +
		"&zoom=11&enableLabels&extendedLabels=1&hideSidebar"
}
