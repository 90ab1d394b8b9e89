package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"jetdash/internal/daemon"
	"jetdash/internal/models"
	"jetdash/internal/render"
	"jetdash/internal/view"
)

// viewFlags are the filter and sort flags shared by list and tui
type viewFlags struct {
	description string
	military    bool
	inbound     bool
	hideGround  bool
	sort        string
	order       string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "Only show this aircraft description")
	cmd.Flags().BoolVar(&f.military, "military", false, "Only show military aircraft")
	cmd.Flags().BoolVar(&f.inbound, "inbound", false, "Only show inbound aircraft")
	cmd.Flags().BoolVar(&f.hideGround, "hide-ground", false, "Hide aircraft on the ground")
	cmd.Flags().StringVar(&f.sort, "sort", string(view.SortDistance), "Sort field: distance, altitude, speed or type")
	cmd.Flags().StringVar(&f.order, "order", string(view.OrderAsc), "Sort order: asc or desc")
}

func (f *viewFlags) state() view.State {
	order := view.OrderAsc
	if f.order == string(view.OrderDesc) {
		order = view.OrderDesc
	}
	return view.DefaultState().Apply(
		view.SelectDescription(f.description),
		view.SetMilitary(f.military),
		view.SetInbound(f.inbound),
		view.SetHideGround(f.hideGround),
		view.SetSortField(view.SortField(f.sort)),
		view.SetSortOrder(order),
	)
}

func newListCmd() *cobra.Command {
	var filters viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the current aircraft once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(os.Stderr)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			aircraft, err := daemon.NewBackend(cfg).FetchAircraft(cmd.Context())
			if err != nil {
				return err
			}

			printAircraft(cmd.OutOrStdout(), view.Derive(aircraft, filters.state()))
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

// printAircraft writes one table row per card in list order
func printAircraft(w io.Writer, records []models.Aircraft) {
	grid := render.BuildGrid(records, false)
	if grid.Placeholder.Visible {
		fmt.Fprintln(w, grid.Placeholder.Text)
		return
	}

	rows := make([][]string, len(grid.Cards))
	for i, c := range grid.Cards {
		flags := make([]string, 0, 3)
		if c.Military {
			flags = append(flags, "MIL")
		}
		if c.Inbound {
			flags = append(flags, "INB")
		}
		if c.OnGround {
			flags = append(flags, "GND")
		}
		rows[i] = []string{c.Callsign, c.Registration, c.Description, c.Altitude, c.Speed, c.Distance, c.Heading, c.Country, strings.Join(flags, " ")}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CALLSIGN", "REG", "TYPE", "ALT (FT)", "SPD (KTS)", "DIST (KM)", "HDG", "COUNTRY", "").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}
