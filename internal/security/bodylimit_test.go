package security_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/security"
)

func TestBodyLimitAllowsSmallPayload(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
	rr := httptest.NewRecorder()
	security.BodyLimit{Max: 64}.Middleware(next).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestBodyLimitRejectsDeclaredOversize(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 100)))
	rr := httptest.NewRecorder()
	security.BodyLimit{Max: 10}.Middleware(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	require.Contains(t, rr.Body.String(), "request entity too large")
}

func TestBodyLimitZeroDisables(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.Copy(io.Discard, r.Body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 1000)))
	rr := httptest.NewRecorder()
	security.BodyLimit{}.Middleware(next).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
