package render

import (
	"jetdash/internal/models"
	"jetdash/internal/store"
)

const (
	LoadingText = "Loading aircraft data..."
	EmptyText   = "No aircraft currently spotted"
)

// Placeholder is the persistent node shown instead of cards
type Placeholder struct {
	Visible bool
	Loading bool
	Text    string
}

// Grid is the swappable card area. Stats and Descriptions ride along as data
// attributes so a partial refresh can update the tiles and the filter.
type Grid struct {
	Cards        []Card
	Placeholder  Placeholder
	Stats        StatTiles
	Descriptions []string
}

// BuildGrid turns a derived view into cards. While loading no cards are built
// and the placeholder shows the loading text.
func BuildGrid(records []models.Aircraft, loading bool) Grid {
	switch {
	case loading:
		return Grid{Placeholder: Placeholder{Visible: true, Loading: true, Text: LoadingText}}
	case len(records) == 0:
		return Grid{Placeholder: Placeholder{Visible: true, Text: EmptyText}}
	}

	cards := make([]Card, len(records))
	for i, ac := range records {
		cards[i] = NewCard(ac)
	}
	return Grid{Cards: cards}
}

// StatTiles is the text of the four stat tiles above the grid
type StatTiles struct {
	Total    int
	Military int
	Closest  string
	Highest  string
}

func NewStatTiles(s store.Stats) StatTiles {
	t := StatTiles{Total: s.Total, Military: s.Military, Closest: "-", Highest: "-"}
	if s.Closest != nil {
		t.Closest = orUnknown(s.Closest.Callsign) + " (" + Number(s.Closest.Distance) + "km)"
	}
	if s.Highest != nil {
		t.Highest = orUnknown(s.Highest.Callsign) + " (" + Thousands(s.Highest.Altitude) + "ft)"
	}
	return t
}
