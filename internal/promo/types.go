package promo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tienda-mx/checkout-api/internal/money"
)

// DiscountType is the tagged variant behind a promo code's reduction rule.
// Each variant carries its own calculation function; adding a variant means
// adding a case to Code.Discount, which the compiler and tests will flag.
type DiscountType string

const (
	// DiscountPercentage reduces the order by a percentage of its total.
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountFixedAmount reduces the order by a flat amount.
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Known reports whether the variant is one the evaluator can calculate.
func (t DiscountType) Known() bool {
	return t == DiscountPercentage || t == DiscountFixedAmount
}

// Code is a promo record as stored in the catalog database. Read-only here;
// usage accounting happens at order placement.
type Code struct {
	Code              string
	IsActive          bool
	DiscountType      DiscountType
	DiscountValue     decimal.Decimal
	MinOrderAmount    *decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	MaxUses           *int32
	CurrentUses       int32
	ValidFrom         time.Time
	ValidUntil        *time.Time
}

// Discount computes the capped discount for the variant. A nil return means
// the discount is amount-dependent and no order amount was supplied.
func (c Code) Discount(orderTotal *decimal.Decimal) *decimal.Decimal {
	switch c.DiscountType {
	case DiscountPercentage:
		return c.percentageDiscount(orderTotal)
	case DiscountFixedAmount:
		return c.fixedAmountDiscount(orderTotal)
	default:
		return nil
	}
}

// percentageDiscount caps at MaxDiscountAmount first, then at the order total
// itself, and rounds last.
func (c Code) percentageDiscount(orderTotal *decimal.Decimal) *decimal.Decimal {
	if orderTotal == nil {
		return nil
	}
	raw := orderTotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	if c.MaxDiscountAmount != nil && raw.GreaterThan(*c.MaxDiscountAmount) {
		raw = *c.MaxDiscountAmount
	}
	if raw.GreaterThan(*orderTotal) {
		raw = *orderTotal
	}
	rounded := money.Round2(raw)
	return &rounded
}

// fixedAmountDiscount is capped at the order total only when one was
// supplied; without an amount the raw fixed value is returned uncapped.
func (c Code) fixedAmountDiscount(orderTotal *decimal.Decimal) *decimal.Decimal {
	raw := c.DiscountValue
	if orderTotal != nil && raw.GreaterThan(*orderTotal) {
		raw = *orderTotal
	}
	rounded := money.Round2(raw)
	return &rounded
}

// Result is the outcome of evaluating a promo code. Business-rule failures
// are represented here, never as errors.
type Result struct {
	Valid              bool             `json:"valid"`
	Code               string           `json:"code"`
	DiscountType       DiscountType     `json:"discountType,omitempty"`
	DiscountValue      *decimal.Decimal `json:"discountValue,omitempty"`
	CalculatedDiscount *decimal.Decimal `json:"calculatedDiscount"`
	Message            string           `json:"message"`
}
