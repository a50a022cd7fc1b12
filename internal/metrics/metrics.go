// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HolidaySetsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feriados_holiday_sets_built_total",
		Help: "Holiday sets computed, one per requested year.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feriados_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	CalDAVPublications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feriados_caldav_publications_total",
		Help: "CalDAV year publications by result.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument counts requests served by next under the given route label.
func Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}
