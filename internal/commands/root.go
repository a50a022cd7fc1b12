// Package commands wires the feriados command tree.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/feriados/config"
	"github.com/klabast/wb-services/feriados/internal/log"
)

// globals is filled by the root command before any subcommand runs.
type globals struct {
	cfg *config.Config
}

// Execute builds the command tree and executes commands.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the root command. Without a subcommand it behaves like
// calendar and asks for the year interactively.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	c := &cobra.Command{
		Use:          "feriados",
		Short:        "Calendário de feriados nacionais do Brasil",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log.SetLevel(cfg.LogLevel)
			g.cfg = cfg
			return nil
		},
	}

	calendarCmd := newCalendarCmd(g)
	c.RunE = calendarCmd.RunE
	c.Args = cobra.NoArgs

	c.AddCommand(calendarCmd)
	c.AddCommand(newListCmd(g))
	c.AddCommand(newWorkdayCmd(g))
	c.AddCommand(newServeCmd(g))
	c.AddCommand(newSyncCmd(g))
	c.AddCommand(newHashPasswordCmd(g))
	return c
}

// useColor resolves the color mode for out. auto enables color only on a
// terminal and honours NO_COLOR.
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
