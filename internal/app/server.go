package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/klabast/wb-services/feriados/internal/businessday"
	"github.com/klabast/wb-services/feriados/internal/log"
	"github.com/klabast/wb-services/feriados/internal/metrics"
)

// Server answers the holiday API. It holds no calendar state: every request
// computes the holidays of the year it asks for.
type Server struct {
	auth     *Auth
	workdays *businessday.Calendar
	loc      *time.Location
	now      func() time.Time
}

// NewServer returns a server protected by auth (nil for an open API) that
// resolves "today" in loc.
func NewServer(auth *Auth, loc *time.Location) *Server {
	if loc == nil {
		loc = time.UTC
	}
	s := &Server{
		auth:     auth,
		workdays: businessday.New(),
		loc:      loc,
	}
	s.now = func() time.Time { return time.Now().In(s.loc) }
	return s
}

// Routes registers the API on a new mux
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, metrics.Instrument(pattern, s.auth.Require(h)))
	}
	route("/api/config", s.GetConfig)
	route("/api/holidays", s.HandleHolidays)
	route("/api/calendar", s.HandleCalendar)
	route("/api/workday", s.HandleWorkday)
	route("/api/download", s.HandleDownload)
	route("/api/subscribe", s.HandleSubscribe)

	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting Feriados API on http://localhost:%d", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info("Feriados API stopped")
	return nil
}
