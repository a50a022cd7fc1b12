package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feriados/config"
	"github.com/klabast/wb-services/feriados/internal/app"
	"github.com/klabast/wb-services/feriados/internal/render"
)

type calendarOptions struct {
	year  int
	month int
	color string
}

func newCalendarCmd(g *globals) *cobra.Command {
	o := &calendarOptions{}

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show month calendars with national holidays highlighted",
		Long: "Shows one calendar table per month with the national holidays in red.\n" +
			"Without --year the year and an optional month are asked interactively.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, g, o)
		},
	}

	cmd.Flags().IntVarP(&o.year, "year", "y", 0, "year to show (asked interactively if omitted)")
	cmd.Flags().IntVarP(&o.month, "month", "m", 0, "show only this month (1-12)")
	cmd.Flags().StringVar(&o.color, "color", "", "color mode: auto, always or never (default from config)")
	return cmd
}

func runCalendar(cmd *cobra.Command, g *globals, o *calendarOptions) error {
	out := cmd.OutOrStdout()

	year, month := o.year, o.month
	if year == 0 {
		var err error
		year, month, err = promptYearMonth(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	months := render.AllMonths()
	if month != 0 {
		if month < 1 || month > 12 {
			return errors.Errorf("invalid month %d (want 1-12)", month)
		}
		months = []time.Month{time.Month(month)}
	}

	set, err := app.BuildSet(year)
	if err != nil {
		return err
	}

	mode := g.cfg.Color
	if o.color != "" {
		mode = o.color
	}
	switch mode {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return errors.Errorf("invalid color mode %q", mode)
	}

	return render.NewTerminal(out, useColor(mode, out)).Render(set, months)
}

// promptYearMonth asks for the year and, when the user wants to filter, the
// month. A month of 0 means all months.
func promptYearMonth(in io.Reader, out io.Writer) (year, month int, err error) {
	r := bufio.NewReader(in)

	year, err = promptInt(r, out, "Digite o ano em formato YYYY: ")
	if err != nil {
		return 0, 0, errors.Wrap(err, "ano")
	}

	fmt.Fprint(out, "Deseja filtrar por mês? (S/N): ")
	answer, err := readLine(r)
	if err != nil {
		return 0, 0, err
	}
	if !strings.EqualFold(answer, "S") {
		return year, 0, nil
	}

	month, err = promptInt(r, out, "Digite o mês em formato MM: ")
	if err != nil {
		return 0, 0, errors.Wrap(err, "mês")
	}
	return year, month, nil
}

func promptInt(r *bufio.Reader, out io.Writer, prompt string) (int, error) {
	fmt.Fprint(out, prompt)
	line, err := readLine(r)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errors.Errorf("not a number: %q", line)
	}
	return n, nil
}

// readLine returns the next trimmed line. A last line without newline is
// accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}
