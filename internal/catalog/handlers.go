package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/tienda-mx/checkout-api/internal/common"
	"github.com/tienda-mx/checkout-api/internal/obs"
)

// Handler exposes the cart validation endpoint.
type Handler struct {
	Validator *Validator
}

// ValidateCart resolves the requested items against the catalog. Rejected
// items are part of the result payload, not an error response; only malformed
// requests produce a non-200 status.
func (h *Handler) ValidateCart(w http.ResponseWriter, r *http.Request) {
	if h.Validator == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart validator not configured", nil)
		return
	}
	var req ValidateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	result, err := h.Validator.ValidateCart(r.Context(), req)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	observeValidation(result)
	common.JSONData(w, http.StatusOK, result)
}

func observeValidation(result Result) {
	if obs.CartValidationsTotal != nil {
		label := "valid"
		if !result.Valid {
			label = "invalid"
		}
		obs.CartValidationsTotal.WithLabelValues(label).Inc()
	}
	if obs.CartItemErrorsTotal != nil {
		for _, e := range result.Errors {
			obs.CartItemErrorsTotal.WithLabelValues(string(e.Code)).Inc()
		}
	}
}
