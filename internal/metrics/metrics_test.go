package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrument(t *testing.T) {
	h := Instrument("test", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("test", "400"))
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("test", "400"))

	assert.Equal(t, before+1, after)
}

func TestInstrumentDefaultStatus(t *testing.T) {
	h := Instrument("ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("ok", "200"))
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("ok", "200"))

	assert.Equal(t, before+1, after)
}
