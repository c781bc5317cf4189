package promo

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tienda-mx/checkout-api/internal/common"
	"github.com/tienda-mx/checkout-api/internal/obs"
)

// Handler exposes the public promo validation endpoint.
type Handler struct {
	Evaluator *Evaluator
}

type validateRequest struct {
	Code       string           `json:"code"`
	OrderTotal *decimal.Decimal `json:"orderTotal"`
}

// Validate evaluates a promo code, optionally against a candidate order
// total. Ineligibility is a 200 with valid:false; only a malformed request
// produces an error status.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if h.Evaluator == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "promo evaluator not configured", nil)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	result, err := h.Evaluator.Evaluate(r.Context(), req.Code, req.OrderTotal)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	observeEvaluation(result)
	common.JSONData(w, http.StatusOK, result)
}

func observeEvaluation(result Result) {
	if obs.PromoEvaluationsTotal == nil {
		return
	}
	label := "applied"
	if !result.Valid {
		label = "rejected"
	}
	obs.PromoEvaluationsTotal.WithLabelValues(label).Inc()
}
