package catalog_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/catalog"
)

func TestHandlerValidateCart(t *testing.T) {
	h := &catalog.Handler{Validator: newValidator(&fakeStore{products: testProducts()})}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "fully valid cart",
			body:       fmt.Sprintf(`{"items":[{"productId":%q,"quantity":2}]}`, mugID),
			wantStatus: http.StatusOK,
			wantBody:   []string{`"valid":true`, `"subtotal":"59.98"`, `"itemCount":2`},
		},
		{
			name:       "unknown product is a 200 with errors",
			body:       fmt.Sprintf(`{"items":[{"productId":%q,"quantity":1}]}`, ghostID),
			wantStatus: http.StatusOK,
			wantBody:   []string{`"valid":false`, `"code":"PRODUCT_NOT_FOUND"`},
		},
		{
			name:       "structural error carries field path",
			body:       fmt.Sprintf(`{"items":[{"productId":%q,"quantity":500}]}`, mugID),
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{`"code":"VALIDATION_ERROR"`, `items[0].quantity`},
		},
		{
			name:       "malformed json",
			body:       `{"items":[`,
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{`"code":"BAD_REQUEST"`},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/validate", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ValidateCart(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			for _, fragment := range tc.wantBody {
				require.Contains(t, rec.Body.String(), fragment)
			}
		})
	}
}

func TestHandlerValidateCartNilValidator(t *testing.T) {
	h := &catalog.Handler{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/validate", strings.NewReader(`{"items":[]}`))
	rec := httptest.NewRecorder()
	h.ValidateCart(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
