package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/klabast/wb-services/feriados/internal/holidays"
	"github.com/klabast/wb-services/feriados/internal/log"
	"github.com/klabast/wb-services/feriados/internal/metrics"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// BuildSet computes the holidays of year and counts it
func BuildSet(year int) (*holidays.Set, error) {
	set, err := holidays.Build(year)
	if err != nil {
		return nil, err
	}
	metrics.HolidaySetsBuilt.Inc()
	log.Debug("Built holiday set for %d (%d days)", year, set.Len())
	return set, nil
}

// yearParam reads the year query parameter, defaulting to the current year
func yearParam(r *http.Request, now time.Time) (int, error) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return now.Year(), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(holidays.ErrInvalidYear, "%q", s)
	}
	return year, nil
}

// setForRequest resolves the year parameter into a holiday set, answering
// 400 for years the engine rejects. It returns nil when a response was sent.
func setForRequest(w http.ResponseWriter, r *http.Request, now time.Time) *holidays.Set {
	year, err := yearParam(r, now)
	if err == nil {
		var set *holidays.Set
		set, err = BuildSet(year)
		if err == nil {
			return set
		}
	}

	if errors.Is(err, holidays.ErrInvalidYear) {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return nil
	}
	log.Error("Error building holidays: %v", err)
	http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	return nil
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error encoding response: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}
