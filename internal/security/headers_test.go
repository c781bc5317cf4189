package security_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/security"
)

func TestHeadersMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	security.Headers{}.Middleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	require.Equal(t, "no-referrer", rr.Header().Get("Referrer-Policy"))
	require.Empty(t, rr.Header().Get("Strict-Transport-Security"))
}

func TestHeadersHSTSOnlyOverTLS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := security.Headers{EnableHSTS: true, HSTSMaxAge: 600, HSTSIncludeSubdomains: true}

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.Middleware(next).ServeHTTP(rr, plain)
	require.Empty(t, rr.Header().Get("Strict-Transport-Security"))

	secure := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	secure.TLS = &tls.ConnectionState{}
	rr = httptest.NewRecorder()
	h.Middleware(next).ServeHTTP(rr, secure)
	require.Equal(t, "max-age=600; includeSubDomains", rr.Header().Get("Strict-Transport-Security"))
}
