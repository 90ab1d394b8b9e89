package render

import (
	"math"

	"jetdash/internal/models"
)

const (
	// FallbackImage is shown when a record has no photo
	FallbackImage = "/static/images/aircraft_not_found.png"

	unknown  = "Unknown"
	onGround = "On ground"
	notAvail = "N/A"
)

// Card is the display model of one aircraft. It holds only comparable values
// so identical records yield equal cards.
type Card struct {
	ICAO         string
	Callsign     string
	Registration string
	Description  string
	Military     bool
	OnGround     bool
	Inbound      bool

	Altitude string
	Speed    string
	Distance string
	Heading  string

	// heading indicator, hidden on the ground
	ShowHeading    bool
	HeadingDegrees int

	Bucket Bucket

	Country string
	Flag    string

	ImageSrc      string
	ImageAlt      string
	ImageFallback bool
	ImageLink     string // empty hides the "view image" link
	Photographer  string
	TrackerURL    string // empty hides the tracker link

	HasDetails bool
	Details    FlightDetails
}

// NewCard derives the card for one record
func NewCard(ac models.Aircraft) Card {
	c := Card{
		ICAO:         orUnknown(ac.ICAO),
		Callsign:     orUnknown(ac.Callsign),
		Registration: orUnknown(ac.Registration),
		Description:  orUnknown(ac.DescriptionOrType()),
		Military:     ac.Military,
		OnGround:     ac.OnGround,
		Inbound:      ac.Inbound,
		Bucket:       AltitudeBucket(ac.Altitude),
		Country:      ac.Country,
		Flag:         FlagEmoji(ac.Country),
		ImageLink:    ac.ImageURL,
		Photographer: ac.Photographer,
		TrackerURL:   ac.TrackerURL,
	}

	if ac.OnGround {
		c.Altitude = onGround
		c.Speed = notAvail
		c.Distance = notAvail
		c.Heading = notAvail
	} else {
		c.Altitude = orUnknownWith(ac.Altitude, Thousands)
		c.Speed = orUnknownWith(ac.Speed, Number)
		c.Distance = orUnknownWith(ac.Distance, Number)
		c.Heading = orUnknownWith(ac.Heading, func(v float64) string { return Number(math.Round(v)) })
		c.ShowHeading = true
		c.HeadingDegrees = (int(math.Round(ac.Heading))%360 + 360) % 360
	}

	switch {
	case ac.ImageThumbnailURL != "":
		c.ImageSrc = ac.ImageThumbnailURL
		c.ImageAlt = imageAlt(ac)
	case ac.ImageURL != "":
		c.ImageSrc = ac.ImageURL
		c.ImageAlt = imageAlt(ac)
	default:
		c.ImageSrc = FallbackImage
		c.ImageAlt = "No image available"
		c.ImageFallback = true
	}

	c.Details, c.HasDetails = NewFlightDetails(ac)
	return c
}

func imageAlt(ac models.Aircraft) string {
	kind := ac.Type
	if kind == "" {
		kind = "Aircraft"
	}
	return kind + " - " + ac.Registration
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

func orUnknownWith(v float64, format func(float64) string) string {
	if v == 0 || math.IsNaN(v) {
		return unknown
	}
	return format(v)
}
