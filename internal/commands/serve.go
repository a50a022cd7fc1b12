package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/feriados/config"
	"github.com/klabast/wb-services/feriados/internal/app"
	"github.com/klabast/wb-services/feriados/internal/caldav"
	"github.com/klabast/wb-services/feriados/internal/log"
	"github.com/klabast/wb-services/feriados/internal/scheduler"
	"github.com/klabast/wb-services/feriados/internal/storage"
)

func newServeCmd(g *globals) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the holiday API",
		Long: "Serves the holiday API and Prometheus metrics. When CalDAV is configured\n" +
			"the current and next year are also published on the sync schedule.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				g.cfg.ServerPort = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, g.cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "port to listen on")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	defer log.Sync()

	auth, err := app.LoadAuth(cfg.AuthFile)
	if err != nil {
		return err
	}

	if cfg.CalDAV.Enabled() {
		sched, closeFn, err := newScheduler(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		return serveWithJob(ctx, sched, func(ctx context.Context) error {
			return app.NewServer(auth, cfg.Timezone).ListenAndServe(ctx, cfg.ServerPort)
		})
	}

	log.Info("CalDAV not configured, sync disabled")
	return app.NewServer(auth, cfg.Timezone).ListenAndServe(ctx, cfg.ServerPort)
}

// backgroundJob runs alongside the server until its context is cancelled.
type backgroundJob interface {
	Start(ctx context.Context) error
	Stop()
}

// serveWithJob runs job in the background while serve blocks. When serve
// returns, the job's context is cancelled and Start has returned before Stop
// is called, so resources the job uses can be released afterwards.
func serveWithJob(ctx context.Context, job backgroundJob, serve func(context.Context) error) error {
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := job.Start(jobCtx); err != nil {
			log.Error("Scheduler: %v", err)
		}
	}()

	err := serve(ctx)
	cancel()
	<-done
	job.Stop()
	return err
}

// newScheduler opens the sync ledger and the CalDAV client. The returned
// func closes the ledger.
func newScheduler(cfg *config.Config) (*scheduler.Scheduler, func(), error) {
	st, err := storage.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	client := caldav.NewClient(cfg.CalDAV.URL, cfg.CalDAV.Username, cfg.CalDAV.Password, cfg.CalDAV.CalendarPath)
	sched := scheduler.New(cfg.CalDAV.SyncSchedule, cfg.Timezone, client, st)

	closeFn := func() {
		if err := st.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}
	return sched, closeFn, nil
}
