package commands

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feriados/internal/app"
	"github.com/klabast/wb-services/feriados/internal/holidays"
	"github.com/klabast/wb-services/feriados/internal/render"
)

const formatText = "text"

type listOptions struct {
	year         int
	format       string
	reminder     string
	reminderDays int
}

func newListCmd(g *globals) *cobra.Command {
	o := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the holidays of a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, g, o)
		},
	}

	cmd.Flags().IntVarP(&o.year, "year", "y", 0, "year (default: current year)")
	cmd.Flags().StringVarP(&o.format, "format", "f", formatText, "output format: text, json, csv or ics")
	cmd.Flags().StringVar(&o.reminder, "reminder", "", "ics only: add an alarm at HH:MM")
	cmd.Flags().IntVar(&o.reminderDays, "reminder-days", 1, "ics only: days before the holiday for the alarm")
	return cmd
}

func runList(cmd *cobra.Command, g *globals, o *listOptions) error {
	year := o.year
	if year == 0 {
		year = time.Now().In(g.cfg.Timezone).Year()
	}

	set, err := app.BuildSet(year)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch o.format {
	case formatText:
		return render.NewTerminal(out, useColor(g.cfg.Color, out)).RenderList(set)
	case app.FormatJSON:
		return app.EncodeJSON(out, set)
	case app.FormatCSV:
		return app.EncodeCSV(out, set)
	case app.FormatICS:
		var reminder *app.Reminder
		if o.reminder != "" {
			if o.reminderDays < 0 {
				return errors.Errorf("invalid reminder days %d", o.reminderDays)
			}
			reminder = &app.Reminder{DaysBefore: o.reminderDays, Time: o.reminder}
		}
		name := fmt.Sprintf("Feriados nacionais %d", year)
		return app.EncodeICS(out, name, []*holidays.Set{set}, reminder, false)
	default:
		return errors.Errorf("unknown format %q (want text, json, csv or ics)", o.format)
	}
}
