package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/cars", 200, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/cars", 200, 30*time.Millisecond)
	m.ObserveRequest(http.MethodPut, "", 404, time.Millisecond)
	m.ObserveProtocol(ProtocolRating, nil)
	m.ObserveProtocol(ProtocolRating, errors.New("conflict"))
	m.ObserveProtocol(ProtocolTag, nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/cars", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("PUT", "unmatched", "404")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.protocol.WithLabelValues(ProtocolRating, "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.protocol.WithLabelValues(ProtocolRating, "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.protocol.WithLabelValues(ProtocolTag, "success")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "carsdb_protocol_operations_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest(http.MethodGet, "/cars", 200, time.Millisecond)
	m.ObserveProtocol(ProtocolToggle, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
