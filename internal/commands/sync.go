package commands

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type syncOptions struct {
	years []int
	force bool
}

func newSyncCmd(g *globals) *cobra.Command {
	o := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Publish holidays to the configured CalDAV calendar",
		Long: "Publishes one event per holiday to the CalDAV calendar. Years already in\n" +
			"the sync ledger are skipped unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, g, o)
		},
	}

	cmd.Flags().IntSliceVarP(&o.years, "year", "y", nil, "years to publish (default: current and next year)")
	cmd.Flags().BoolVar(&o.force, "force", false, "publish even if the ledger has the year")
	return cmd
}

func runSync(cmd *cobra.Command, g *globals, o *syncOptions) error {
	if !g.cfg.CalDAV.Enabled() {
		return errors.New("CalDAV is not configured (set FERIADOS_CALDAV_URL, _USERNAME, _PASSWORD and _CALENDAR)")
	}

	sched, closeFn, err := newScheduler(g.cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	years := o.years
	if len(years) == 0 {
		years = sched.Upcoming()
	}

	published, err := sched.Sync(cmd.Context(), years, o.force)
	for _, year := range published {
		fmt.Fprintf(cmd.OutOrStdout(), "Publicado: %d\n", year)
	}
	if err != nil {
		return err
	}
	if len(published) < len(years) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d ano(s) já publicado(s), use --force para republicar\n", len(years)-len(published))
	}
	return nil
}
