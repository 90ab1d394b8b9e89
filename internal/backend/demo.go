package backend

import (
	"context"

	"jetdash/internal/models"
)

// DemoSource serves a fixed sample list so the rendering path can be exercised
// without a live backend.
type DemoSource struct{}

func (DemoSource) FetchAircraft(ctx context.Context) ([]models.Aircraft, error) {
	return DemoAircraft(), nil
}

func (DemoSource) FetchConfig(ctx context.Context) (*models.BackendConfig, error) {
	cfg := DemoConfig()
	return &cfg, nil
}

func (DemoSource) FetchVersion(ctx context.Context) (string, error) {
	return "demo", nil
}

// DemoConfig is a plausible backend configuration for demo mode
func DemoConfig() models.BackendConfig {
	return models.BackendConfig{
		Location:               models.Coordinates{Lat: 51.17348, Lon: 5.45921},
		MaxRangeKilometers:     30,
		MaxScanRangeKilometers: 60,
		MaxAltitudeFeet:        0,
		FetchInterval:          60,
		AircraftTypes:          []string{"MILITARY", "C17"},
		DiscordWebHookURL:      "https://discord.com/api/webhooks/demo",
		DiscordColorAltitude:   true,
		NtfyTopic:              "jetspotter-demo",
	}
}

// DemoAircraft returns a fresh copy of the sample list
func DemoAircraft() []models.Aircraft {
	return []models.Aircraft{
		{
			ICAO:              "484506",
			Callsign:          "KLM1234",
			Registration:      "PH-BXA",
			Altitude:          12500,
			Speed:             310,
			Distance:          15.2,
			Heading:           235,
			Type:              "B738",
			Description:       "BOEING 737-800",
			Country:           "Netherlands",
			ImageThumbnailURL: "https://t.plnspttrs.net/demo/ph-bxa_280.jpg",
			ImageURL:          "https://www.planespotters.net/photo/demo/ph-bxa",
			Photographer:      "J. de Vries",
			TrackerURL:        "https://globe.airplanes.live/?icao=484506",
			Origin: models.RouteField{Point: &models.RoutePoint{
				Name: "Amsterdam Airport Schiphol", Municipality: "Amsterdam",
				CountryName: "Netherlands", CountryISOName: "NL", IATACode: "AMS", ICAOCode: "EHAM",
				Latitude: models.FlexFloat{Value: 52.3086, Valid: true}, Longitude: models.FlexFloat{Value: 4.7639, Valid: true},
			}},
			Destination: models.RouteField{Point: &models.RoutePoint{
				Name: "Barcelona-El Prat Airport", Municipality: "Barcelona",
				CountryName: "Spain", CountryISOName: "ES", IATACode: "BCN", ICAOCode: "LEBL",
				Latitude: models.FlexFloat{Value: 41.2971, Valid: true}, Longitude: models.FlexFloat{Value: 2.0785, Valid: true},
			}},
			Airline: models.RouteField{Point: &models.RoutePoint{
				Name: "KLM Royal Dutch Airlines", CountryName: "Netherlands", IATACode: "KL", ICAOCode: "KLM",
			}},
		},
		{
			ICAO:         "44f3b1",
			Callsign:     "BAF624",
			Registration: "CT-624",
			Altitude:     2400,
			Speed:        180,
			Distance:     5.1,
			Heading:      90,
			Military:     true,
			Inbound:      true,
			Type:         "C30J",
			Description:  "LOCKHEED MARTIN C-130J Hercules",
			Country:      "Belgium",
			ImageURL:     "https://www.planespotters.net/photo/demo/ct-624",
			Photographer: "M. Peeters",
		},
		{
			ICAO:              "4ca7b5",
			Callsign:          "RYR7QP",
			Registration:      "EI-DWF",
			Altitude:          36000,
			Speed:             455,
			Distance:          42.3,
			Heading:           170,
			Type:              "B738",
			Description:       "BOEING 737-800",
			Country:           "Ireland",
			ImageThumbnailURL: "https://t.plnspttrs.net/demo/ei-dwf_280.jpg",
			Origin:            models.RouteField{Raw: "EIDW"},
		},
		{
			ICAO:         "a6b2c3",
			Callsign:     "N512PC",
			Registration: "N512PC",
			Altitude:     0,
			Speed:        12,
			Distance:     3.2,
			Heading:      310,
			OnGround:     true,
			Type:         "PC12",
			Description:  "PILATUS PC-12",
			Country:      "United States",
		},
		{
			ICAO:         "4006a1",
			Callsign:     "EZY45KM",
			Registration: "G-EZOF",
			Altitude:     8200,
			Speed:        260,
			Distance:     15.2,
			Heading:      45,
			Inbound:      true,
			Type:         "A320",
			Description:  "AIRBUS A-320",
			Country:      "United Kingdom",
		},
		{
			ICAO:              "3c6752",
			Callsign:          "DLH4AB",
			Registration:      "D-AIBA",
			Altitude:          950,
			Speed:             140,
			Distance:          8.5,
			Heading:           250,
			Inbound:           true,
			Type:              "A319",
			Description:       "AIRBUS A-319",
			Country:           "Germany",
			ImageThumbnailURL: "https://t.plnspttrs.net/demo/d-aiba_280.jpg",
			ImageURL:          "https://www.planespotters.net/photo/demo/d-aiba",
		},
		{
			ICAO:         "ae01ce",
			Callsign:     "RCH871",
			Registration: "07-7175",
			Altitude:     24000,
			Speed:        390,
			Distance:     25.7,
			Heading:      280,
			Military:     true,
			Type:         "C17",
			Description:  "BOEING C-17 Globemaster III",
			Country:      "United States",
		},
	}
}
