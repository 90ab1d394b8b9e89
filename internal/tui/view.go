package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jetdash/internal/render"
	"jetdash/internal/view"
)

const cardWidth = 38

type palette struct {
	text   lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
}

var (
	darkPalette  = palette{text: "#E4E7EB", muted: "#9AA5B1", accent: "#5DADE2"}
	lightPalette = palette{text: "#1F2933", muted: "#6B7785", accent: "#2980B9"}
)

func (m *Model) palette() palette {
	if m.dark {
		return darkPalette
	}
	return lightPalette
}

func (m *Model) View() string {
	p := m.palette()
	title := lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("Jetspotter")

	sections := []string{
		title,
		m.renderStats(p),
		m.renderControls(p),
		m.renderGrid(p),
		m.renderFooter(p),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStats(p palette) string {
	stats := render.NewStatTiles(m.snap.Stats)
	tile := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.muted).
		Padding(0, 1)
	label := lipgloss.NewStyle().Foreground(p.muted)
	value := lipgloss.NewStyle().Bold(true).Foreground(p.text)

	tiles := []string{
		tile.Render(label.Render("Total") + "\n" + value.Render(fmt.Sprint(stats.Total))),
		tile.Render(label.Render("Military") + "\n" + value.Render(fmt.Sprint(stats.Military))),
		tile.Render(label.Render("Closest") + "\n" + value.Render(stats.Closest)),
		tile.Render(label.Render("Highest") + "\n" + value.Render(stats.Highest)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// renderControls shows the active filter and sort state
func (m *Model) renderControls(p palette) string {
	f := m.state.Filter
	description := f.Description
	if description == "" {
		description = "All Aircraft"
	}

	parts := []string{
		"Aircraft: " + description,
		"Military " + checkbox(f.Military),
		"Inbound " + checkbox(f.Inbound),
		"Hide ground " + checkbox(f.HideGround),
		"Sort: " + m.state.Sort.Field.Label() + " " + m.state.Sort.Order.Label(),
	}
	return lipgloss.NewStyle().Foreground(p.text).Padding(1, 0, 0, 0).Render(strings.Join(parts, "  │  "))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m *Model) renderGrid(p palette) string {
	grid := render.BuildGrid(view.Derive(m.snap.Aircraft, m.state), !m.snap.Loaded)
	if grid.Placeholder.Visible {
		return lipgloss.NewStyle().Foreground(p.muted).Padding(1, 2).Render(grid.Placeholder.Text)
	}

	perRow := max(1, m.width/(cardWidth+2))
	var rows []string
	for start := 0; start < len(grid.Cards); start += perRow {
		end := min(start+perRow, len(grid.Cards))
		cards := make([]string, 0, end-start)
		for _, c := range grid.Cards[start:end] {
			cards = append(cards, renderCard(c, p))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one card with a header in the altitude bucket colour
func renderCard(c render.Card, p palette) string {
	color := lipgloss.Color(c.Bucket.Color)

	header := c.Callsign
	if c.Flag != "" {
		header += " " + c.Flag
	}
	if c.Military {
		header += " [MIL]"
	}
	if c.Inbound {
		header += " [INB]"
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Width(cardWidth - 2)

	label := lipgloss.NewStyle().Foreground(p.muted).Width(10)
	value := lipgloss.NewStyle().Foreground(p.text)
	altitude := lipgloss.NewStyle().Foreground(color).Bold(true)

	heading := c.Heading
	if c.ShowHeading {
		heading += " " + arrow(c.HeadingDegrees)
	}

	lines := []string{
		headerStyle.Render(header),
		label.Render("Type") + value.Render(c.Description),
		label.Render("Reg") + value.Render(c.Registration+" ("+c.ICAO+")"),
		label.Render("Altitude") + altitude.Render(c.Altitude+" ft"),
		label.Render("Speed") + value.Render(c.Speed+" kts"),
		label.Render("Distance") + value.Render(c.Distance+" km"),
		label.Render("Heading") + value.Render(heading),
	}
	if c.HasDetails {
		lines = append(lines, label.Render("Route")+value.Render(route(c.Details)))
		if c.Details.FlightTime != "" {
			lines = append(lines, label.Render("Est.")+value.Render(c.Details.Distance+" "+c.Details.FlightTime))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(cardWidth).
		MaxWidth(cardWidth + 2).
		Render(strings.Join(lines, "\n"))
}

func route(d render.FlightDetails) string {
	return placeCode(d.Origin) + " → " + placeCode(d.Destination)
}

func placeCode(p render.Place) string {
	switch {
	case !p.Present:
		return "?"
	case p.Raw != "":
		return p.Raw
	case p.Codes != "":
		code, _, _ := strings.Cut(p.Codes, " / ")
		return code
	}
	return p.Name
}

// arrow maps a heading onto one of eight compass arrows
func arrow(degrees int) string {
	arrows := []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}
	i := ((degrees%360+360)%360 + 22) / 45
	return arrows[i%8]
}

func (m *Model) renderFooter(p palette) string {
	last := "-"
	if !m.snap.LastUpdate.IsZero() {
		last = m.snap.LastUpdate.Format("15:04:05")
	}
	return lipgloss.NewStyle().Foreground(p.muted).Padding(1, 0, 0, 0).
		Render("Last update: " + last + " · Next update: " + m.countText)
}
