package commands

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feriados/internal/businessday"
	"github.com/klabast/wb-services/feriados/internal/calendar"
	"github.com/klabast/wb-services/feriados/internal/holidays"
)

const dateLayout = "2006-01-02"

type workdayOptions struct {
	date string
	last int
}

func newWorkdayCmd(g *globals) *cobra.Command {
	o := &workdayOptions{}

	cmd := &cobra.Command{
		Use:   "workday",
		Short: "Check business days against national holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkday(cmd, g, o)
		},
	}

	cmd.Flags().StringVarP(&o.date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().IntVarP(&o.last, "last", "n", 0, "list the last N business days up to the date")
	return cmd
}

func runWorkday(cmd *cobra.Command, g *globals, o *workdayOptions) error {
	day := time.Now().In(g.cfg.Timezone)
	if o.date != "" {
		var err error
		day, err = time.Parse(dateLayout, o.date)
		if err != nil {
			return errors.Errorf("invalid date %q (want YYYY-MM-DD)", o.date)
		}
	}
	if !holidays.ValidYear(day.Year()) {
		return errors.Wrapf(holidays.ErrInvalidYear, "%d", day.Year())
	}
	if o.last < 0 {
		return errors.Errorf("invalid --last %d", o.last)
	}

	out := cmd.OutOrStdout()
	bc := businessday.New()

	if o.last > 0 {
		for _, d := range bc.LastN(o.last, day) {
			fmt.Fprintf(out, "%s %s\n", d.Format(dateLayout), calendar.WeekdayNames[d.Weekday()])
		}
		return nil
	}

	status := "dia útil"
	if name, ok := bc.Holiday(day); ok {
		status = "feriado: " + name
	} else if !bc.IsWorkday(day) {
		status = "fim de semana"
	}
	fmt.Fprintf(out, "%s %s: %s\n", day.Format(dateLayout), calendar.WeekdayNames[day.Weekday()], status)
	if next, ok := bc.NextWorkday(day); ok {
		fmt.Fprintf(out, "Próximo dia útil: %s\n", next.Format(dateLayout))
	}
	return nil
}
