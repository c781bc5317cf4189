package promo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tienda-mx/checkout-api/internal/common"
)

// Store is the read-only promo lookup the evaluator depends on.
type Store interface {
	// FindByCode performs an exact match on the normalized (upper-cased)
	// code. found is false when no record exists.
	FindByCode(ctx context.Context, code string) (Code, bool, error)
}

// Evaluator checks a promo code's eligibility and computes its capped
// discount. It only reads the usage counter snapshot; consumption is deferred
// to order placement.
type Evaluator struct {
	Store Store
	Now   func() time.Time
}

// Messages returned for each eligibility failure, in evaluation order.
const (
	msgNotFound    = "Promo code not found"
	msgNotActive   = "Promo code is not active"
	msgNotYetValid = "Promo code is not yet valid"
	msgExpired     = "Promo code has expired"
	msgUsageLimit  = "Promo code usage limit reached"
	msgValid       = "Promo code is valid"
)

// Evaluate normalizes the code, runs the fixed-order eligibility chain and,
// on success, calculates the discount for the supplied order total. A nil
// orderTotal skips the minimum-amount check and yields an amount-independent
// eligibility result. Malformed input raises a structural error; every
// business-rule failure comes back as an invalid Result.
func (e *Evaluator) Evaluate(ctx context.Context, code string, orderTotal *decimal.Decimal) (Result, error) {
	if e == nil || e.Store == nil {
		return Result{}, errors.New("promo evaluator not configured")
	}
	normalized, err := NormalizeCode(code)
	if err != nil {
		return Result{}, err
	}
	if orderTotal != nil && orderTotal.IsNegative() {
		return Result{}, common.NewValidationError(common.FieldError{
			Field:   "orderTotal",
			Message: "must be greater than or equal to 0",
		})
	}

	promo, found, err := e.Store.FindByCode(ctx, normalized)
	if err != nil {
		return Result{}, fmt.Errorf("find promo code: %w", err)
	}

	// Short-circuiting guard chain; order is part of the contract.
	switch {
	case !found:
		return rejected(normalized, msgNotFound), nil
	case !promo.IsActive:
		return rejected(normalized, msgNotActive), nil
	case e.now().Before(promo.ValidFrom):
		return rejected(normalized, msgNotYetValid), nil
	case promo.ValidUntil != nil && e.now().After(*promo.ValidUntil):
		return rejected(normalized, msgExpired), nil
	case promo.MaxUses != nil && promo.CurrentUses >= *promo.MaxUses:
		return rejected(normalized, msgUsageLimit), nil
	case promo.MinOrderAmount != nil && orderTotal != nil && orderTotal.LessThan(*promo.MinOrderAmount):
		return rejected(normalized, fmt.Sprintf("Order total does not meet minimum amount of %s", promo.MinOrderAmount.String())), nil
	}

	value := promo.DiscountValue
	return Result{
		Valid:              true,
		Code:               normalized,
		DiscountType:       promo.DiscountType,
		DiscountValue:      &value,
		CalculatedDiscount: promo.Discount(orderTotal),
		Message:            msgValid,
	}, nil
}

// NormalizeCode trims and upper-cases a promo code, enforcing the 1-50
// character shape. Case-insensitivity is by normalization, not collation.
func NormalizeCode(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", common.NewValidationError(common.FieldError{Field: "code", Message: "is required"})
	}
	if len(trimmed) > 50 {
		return "", common.NewValidationError(common.FieldError{Field: "code", Message: "must be at most 50 characters"})
	}
	return strings.ToUpper(trimmed), nil
}

func rejected(code, message string) Result {
	return Result{Valid: false, Code: code, Message: message}
}

func (e *Evaluator) now() time.Time {
	if e != nil && e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
