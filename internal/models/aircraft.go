package models

// Aircraft is one entry of the /api/aircraft response.
// The backend encodes Go field names as-is, so no json tags are needed except
// on the nested route points. Optional numeric fields are zero when absent.
type Aircraft struct {
	ICAO         string // 6 hex digit ICAO address, not guaranteed unique in a snapshot
	Callsign     string // Flight number or callsign
	Registration string // Tail number (e.g., N12345)

	Altitude            float64 // Feet
	Speed               float64 // Knots
	Distance            float64 // Kilometers from the reference location
	Heading             float64 // Degrees 0-359
	BearingFromLocation float64 // Degrees from the reference location

	Military bool
	OnGround bool
	Inbound  bool // Approaching the reference location

	Type        string // ICAO type designator (e.g., A320)
	Description string // Human readable type (e.g., AIRBUS A-320)
	Country     string // Country of registration

	ImageURL          string
	ImageThumbnailURL string
	Photographer      string
	TrackerURL        string // External tracker link

	Origin      RouteField
	Destination RouteField
	Airline     RouteField

	NotifiedDiscord  bool
	NotifiedSlack    bool
	NotifiedGotify   bool
	NotifiedNtfy     bool
	NotifiedTerminal bool
}

// DescriptionOrType is the label used for the description filter.
func (a Aircraft) DescriptionOrType() string {
	if a.Description != "" {
		return a.Description
	}
	return a.Type
}
