package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BackendConfig is the /api/config response of the jetspotter backend.
type BackendConfig struct {
	Location               Coordinates
	MaxRangeKilometers     int
	MaxScanRangeKilometers int
	MaxAltitudeFeet        int
	FetchInterval          int
	AircraftTypes          []string

	DiscordWebHookURL    string
	DiscordColorAltitude FlexBool
	SlackWebHookURL      string
	GotifyURL            string
	GotifyToken          string
	NtfyTopic            string
}

// Coordinates accepts both {Lat, Lon} and {Latitude, Longitude}.
type Coordinates struct {
	Lat float64
	Lon float64
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var aux struct {
		Lat       *float64
		Lon       *float64
		Latitude  *float64
		Longitude *float64
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Coordinates{}
	switch {
	case aux.Lat != nil:
		c.Lat = *aux.Lat
	case aux.Latitude != nil:
		c.Lat = *aux.Latitude
	}
	switch {
	case aux.Lon != nil:
		c.Lon = *aux.Lon
	case aux.Longitude != nil:
		c.Lon = *aux.Longitude
	}
	return nil
}

// IsZero reports whether no location was configured.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// FlexBool accepts a JSON bool or the strings "true"/"false".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	v, err := strconv.ParseBool(s)
	if err != nil {
		*b = false
		return nil
	}
	*b = FlexBool(v)
	return nil
}

// VersionInfo is the /api/version response.
type VersionInfo struct {
	Version string `json:"version"`
}
