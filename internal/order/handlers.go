package order

import (
	"encoding/json"
	"net/http"

	"github.com/tienda-mx/checkout-api/internal/common"
	"github.com/tienda-mx/checkout-api/internal/obs"
)

// Handler exposes the order total endpoint.
type Handler struct {
	Service *Service
}

// Total computes the full pricing breakdown for a cart plus optional promo
// code. Business-rule failures are part of the 200 payload; only a malformed
// request produces an error status.
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	var req TotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	result, err := h.Service.ComputeTotal(r.Context(), req)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	observeTotal(result)
	common.JSONData(w, http.StatusOK, result)
}

func observeTotal(result TotalResult) {
	if obs.OrderTotalsComputedTotal == nil {
		return
	}
	label := "valid"
	if !result.Valid {
		label = "invalid"
	}
	obs.OrderTotalsComputedTotal.WithLabelValues(label).Inc()
}
