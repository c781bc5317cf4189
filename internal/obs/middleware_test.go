package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/obs"
)

func TestHTTPObsMiddlewareCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("checkout_test", nil, reg)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/total", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	count := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodPost, "/api/v1/orders/total", "418"))
	require.Equal(t, float64(1), count)
}

func TestStatusRecorderDefaults(t *testing.T) {
	rec := obs.NewStatusRecorder(httptest.NewRecorder())
	_, err := rec.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Status())
	require.Equal(t, int64(2), rec.BytesWritten())
}
