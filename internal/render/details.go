package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/jftuga/geodist"

	"jetdash/internal/models"
)

// assumed block speed for the flight time guess
const (
	cruiseSpeedKMH = 800.0
	taxiAndClimb   = 30 // minutes
)

// geodist works on a 6378.1 km sphere; results are rescaled to the mean
// radius
const (
	earthRadiusKM   = 6371.0
	geodistRadiusKM = 6378.1
)

// Place is one side of the route as shown in the details overlay
type Place struct {
	Present bool
	Name    string
	Detail  string // municipality, country
	Codes   string // "AMS / EHAM"
	Raw     string // set when the backend value could not be parsed
}

// FlightDetails backs the details overlay of a card
type FlightDetails struct {
	Origin      Place
	Destination Place
	Airline     Place

	DistanceKM float64 // 0 when either end lacks coordinates
	Distance   string
	FlightTime string
}

// NewFlightDetails reports false when the record has no origin
func NewFlightDetails(ac models.Aircraft) (FlightDetails, bool) {
	if !ac.Origin.Present() {
		return FlightDetails{}, false
	}

	d := FlightDetails{
		Origin:      newPlace(ac.Origin),
		Destination: newPlace(ac.Destination),
		Airline:     newPlace(ac.Airline),
	}

	from, to := ac.Origin.Point, ac.Destination.Point
	if from.HasCoordinates() && to.HasCoordinates() {
		d.DistanceKM = GreatCircleKM(
			from.Latitude.Value, from.Longitude.Value,
			to.Latitude.Value, to.Longitude.Value,
		)
		d.Distance = Thousands(d.DistanceKM) + " km"
		d.FlightTime = FlightTimeGuess(d.DistanceKM)
	}
	return d, true
}

// GreatCircleKM is the haversine distance on a sphere of radius 6371 km
func GreatCircleKM(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := geodist.HaversineDistance(
		geodist.Coord{Lat: lat1, Lon: lon1},
		geodist.Coord{Lat: lat2, Lon: lon2},
	)
	return km * earthRadiusKM / geodistRadiusKM
}

// FlightTimeGuess is a cosmetic estimate: cruise at 800 km/h plus half an hour
// for taxi, climb and descent
func FlightTimeGuess(km float64) string {
	if km <= 0 {
		return ""
	}
	minutes := int(math.Round(km/cruiseSpeedKMH*60)) + taxiAndClimb
	return fmt.Sprintf("~%dh %02dm", minutes/60, minutes%60)
}

func newPlace(f models.RouteField) Place {
	if !f.Present() {
		return Place{}
	}
	if f.Point == nil {
		return Place{Present: true, Raw: f.Raw}
	}

	p := f.Point
	return Place{
		Present: true,
		Name:    p.Name,
		Detail:  joinNonEmpty(", ", p.Municipality, p.CountryName),
		Codes:   joinNonEmpty(" / ", p.IATACode, p.ICAOCode),
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
