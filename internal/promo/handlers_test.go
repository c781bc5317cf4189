package promo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandlerValidate(t *testing.T) {
	ev, _ := newEvaluator(basePromo())
	h := &Handler{Evaluator: ev}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "valid code with total",
			body:       `{"code":"verano10","orderTotal":"250"}`,
			wantStatus: http.StatusOK,
			wantBody:   []string{`"valid":true`, `"code":"VERANO10"`, `"calculatedDiscount":"25"`, `"message":"Promo code is valid"`},
		},
		{
			name:       "unknown code is a 200 rejection",
			body:       `{"code":"NADA"}`,
			wantStatus: http.StatusOK,
			wantBody:   []string{`"valid":false`, `"message":"Promo code not found"`, `"calculatedDiscount":null`},
		},
		{
			name:       "missing code is structural",
			body:       `{"orderTotal":"100"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{`"code":"VALIDATION_ERROR"`, `"field":"code"`},
		},
		{
			name:       "malformed json",
			body:       `{"code":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{`"code":"BAD_REQUEST"`},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/promo-codes/validate", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Validate(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			for _, fragment := range tc.wantBody {
				require.Contains(t, rec.Body.String(), fragment)
			}
		})
	}
}

func TestHandlerValidateNilEvaluator(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promo-codes/validate", strings.NewReader(`{"code":"X"}`))
	rec := httptest.NewRecorder()
	h.Validate(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlerValidateExpiredMessage(t *testing.T) {
	until := frozenNow.Add(-time.Minute)
	promo := basePromo()
	promo.ValidUntil = &until
	ev, _ := newEvaluator(promo)
	h := &Handler{Evaluator: ev}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/promo-codes/validate", strings.NewReader(`{"code":"VERANO10","orderTotal":"100"}`))
	rec := httptest.NewRecorder()
	h.Validate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Promo code has expired")
}
