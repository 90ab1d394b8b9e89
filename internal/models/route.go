package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RoutePoint describes an airport or an airline attached to an aircraft.
type RoutePoint struct {
	Name           string    `json:"name,omitempty"`
	Municipality   string    `json:"municipality,omitempty"`
	CountryName    string    `json:"country_name,omitempty"`
	CountryISOName string    `json:"country_iso_name,omitempty"`
	IATACode       string    `json:"iata_code,omitempty"`
	ICAOCode       string    `json:"icao_code,omitempty"`
	Latitude       FlexFloat `json:"latitude_deg"`
	Longitude      FlexFloat `json:"longitude_deg"`
}

// HasCoordinates reports whether both coordinates were supplied.
func (p *RoutePoint) HasCoordinates() bool {
	return p != nil && p.Latitude.Valid && p.Longitude.Valid
}

// RouteField is a route value normalized at decode time. The backend sends
// route data either as an object or as a JSON-encoded string; both decode into
// Point. Values that cannot be parsed are kept verbatim in Raw.
type RouteField struct {
	Point *RoutePoint
	Raw   string
}

// Present reports whether the field carries anything worth showing.
func (f RouteField) Present() bool {
	return f.Point != nil || f.Raw != ""
}

// UnmarshalJSON never fails: malformed route data degrades to Raw so that a
// single bad record cannot break a whole poll.
func (f *RouteField) UnmarshalJSON(data []byte) error {
	*f = RouteField{}

	trimmed := bytes.TrimSpace(data)
	if isTrivial(string(trimmed)) {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			f.Raw = string(trimmed)
			return nil
		}
		s = strings.TrimSpace(s)
		if isTrivial(s) {
			return nil
		}
		var p RoutePoint
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			f.Raw = s
			return nil
		}
		f.Point = &p
		return nil
	}

	var p RoutePoint
	if err := json.Unmarshal(trimmed, &p); err != nil {
		f.Raw = string(trimmed)
		return nil
	}
	f.Point = &p
	return nil
}

// MarshalJSON writes the parsed object, the raw string, or null.
func (f RouteField) MarshalJSON() ([]byte, error) {
	switch {
	case f.Point != nil:
		return json.Marshal(f.Point)
	case f.Raw != "":
		return json.Marshal(f.Raw)
	default:
		return []byte("null"), nil
	}
}

func isTrivial(s string) bool {
	switch s {
	case "", "null", "{}", `""`, "undefined":
		return true
	}
	return false
}

// FlexFloat accepts a JSON number or a numeric string. NaN and infinities
// are treated as absent.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}
