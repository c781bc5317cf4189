package promo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tienda-mx/checkout-api/internal/common"
)

const insertPromoSQL = `
INSERT INTO promo_codes (code, is_active, discount_type, discount_value,
                         min_order_amount, max_discount_amount, max_uses,
                         valid_from, valid_until)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING code
`

const updatePromoSQL = `
UPDATE promo_codes
   SET is_active = $2,
       discount_type = $3,
       discount_value = $4,
       min_order_amount = $5,
       max_discount_amount = $6,
       max_uses = $7,
       valid_from = $8,
       valid_until = $9
 WHERE code = $1
RETURNING code
`

// AdminHandler exposes promo record management endpoints.
type AdminHandler struct {
	Pool *pgxpool.Pool
}

type promoPayload struct {
	Code              string           `json:"code"`
	IsActive          *bool            `json:"isActive"`
	DiscountType      string           `json:"discountType"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount"`
	MaxUses           *int32           `json:"maxUses"`
	ValidFrom         *time.Time       `json:"validFrom"`
	ValidUntil        *time.Time       `json:"validUntil"`
}

// Create inserts a new promo record.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Pool == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "promo store not configured", nil)
		return
	}
	var payload promoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	code, err := h.write(r.Context(), insertPromoSQL, payload, payload.Code)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			common.JSONError(w, http.StatusConflict, common.CodeConflict, "promo code already exists", nil)
			return
		}
		common.JSONAppError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, map[string]string{"code": code})
}

// Update mutates an existing promo record identified by code.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Pool == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "promo store not configured", nil)
		return
	}
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "code is required", nil)
		return
	}
	var payload promoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	updated, err := h.write(r.Context(), updatePromoSQL, payload, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "promo code not found", nil)
			return
		}
		common.JSONAppError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]string{"code": updated})
}

func (h *AdminHandler) write(ctx context.Context, sql string, payload promoPayload, rawCode string) (string, error) {
	normalized, err := NormalizeCode(rawCode)
	if err != nil {
		return "", err
	}
	dtype := DiscountType(strings.ToUpper(strings.TrimSpace(payload.DiscountType)))
	if !dtype.Known() {
		return "", common.NewValidationError(common.FieldError{Field: "discountType", Message: "must be PERCENTAGE or FIXED_AMOUNT"})
	}
	if payload.DiscountValue.IsNegative() || payload.DiscountValue.IsZero() {
		return "", common.NewValidationError(common.FieldError{Field: "discountValue", Message: "must be greater than 0"})
	}
	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	validFrom := time.Now()
	if payload.ValidFrom != nil {
		validFrom = *payload.ValidFrom
	}

	var code string
	row := h.Pool.QueryRow(ctx, sql,
		normalized, active, string(dtype), payload.DiscountValue,
		payload.MinOrderAmount, payload.MaxDiscountAmount, payload.MaxUses,
		validFrom, payload.ValidUntil,
	)
	if err := row.Scan(&code); err != nil {
		return "", err
	}
	return code, nil
}
