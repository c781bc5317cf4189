package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tienda-mx/checkout-api/internal/catalog"
	"github.com/tienda-mx/checkout-api/internal/money"
	"github.com/tienda-mx/checkout-api/internal/promo"
)

// TotalsConfig carries the pricing constants. Explicit configuration instead
// of package state so tests can vary the rates.
type TotalsConfig struct {
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal
	Currency     string
}

// Service combines cart validation, promo evaluation and the pricing
// constants into a single order total.
type Service struct {
	Cart   *catalog.Validator
	Promo  *promo.Evaluator
	Config TotalsConfig
}

// TotalRequest is the order total payload. Item rules match cart validation;
// the promo code is optional.
type TotalRequest struct {
	Items     []catalog.LineItemRequest `json:"items"`
	PromoCode *string                   `json:"promoCode"`
}

// TotalResult is the combined pricing breakdown. Valid mirrors the cart's
// validity; promo ineligibility only suppresses the discount.
type TotalResult struct {
	Valid            bool                    `json:"valid"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	DiscountAmount   decimal.Decimal         `json:"discountAmount"`
	ShippingCost     decimal.Decimal         `json:"shippingCost"`
	TaxAmount        decimal.Decimal         `json:"taxAmount"`
	Total            decimal.Decimal         `json:"total"`
	Currency         string                  `json:"currency"`
	ItemCount        int                     `json:"itemCount"`
	ValidatedItems   []catalog.ValidatedItem `json:"validatedItems"`
	AppliedPromoCode *string                 `json:"appliedPromoCode"`
	PromoCodeMessage string                  `json:"promoCodeMessage,omitempty"`
	CartErrors       []catalog.ItemError     `json:"cartErrors"`
}

// ComputeTotal runs the fixed call chain: validate shape, validate the cart,
// evaluate the promo against the cart subtotal, then combine. A structural
// error aborts with nothing computed; every business-rule failure lands in
// the result. The subtotal of a partially invalid cart still prices its
// accepted items.
func (s *Service) ComputeTotal(ctx context.Context, req TotalRequest) (TotalResult, error) {
	if s == nil || s.Cart == nil || s.Promo == nil {
		return TotalResult{}, errors.New("order service not configured")
	}

	var promoCode string
	if req.PromoCode != nil {
		normalized, err := promo.NormalizeCode(*req.PromoCode)
		if err != nil {
			return TotalResult{}, err
		}
		promoCode = normalized
	}

	cart, err := s.Cart.ValidateCart(ctx, catalog.ValidateCartRequest{Items: req.Items})
	if err != nil {
		return TotalResult{}, err
	}
	subtotal := cart.Summary.Subtotal

	discount := decimal.Zero
	var appliedCode *string
	var promoMessage string
	if promoCode != "" {
		eval, err := s.Promo.Evaluate(ctx, promoCode, &subtotal)
		if err != nil {
			return TotalResult{}, fmt.Errorf("evaluate promo: %w", err)
		}
		if eval.Valid && eval.CalculatedDiscount != nil {
			discount = money.Round2(*eval.CalculatedDiscount)
			code := eval.Code
			appliedCode = &code
		} else {
			promoMessage = eval.Message
		}
	}

	tax := money.Round2(s.Config.TaxRate.Mul(subtotal.Sub(discount)))
	total := money.FloorZero(money.Round2(subtotal.Sub(discount).Add(s.Config.ShippingCost).Add(tax)))

	return TotalResult{
		Valid:            cart.Valid,
		Subtotal:         subtotal,
		DiscountAmount:   discount,
		ShippingCost:     s.Config.ShippingCost,
		TaxAmount:        tax,
		Total:            total,
		Currency:         s.Config.Currency,
		ItemCount:        cart.Summary.ItemCount,
		ValidatedItems:   cart.Items,
		AppliedPromoCode: appliedCode,
		PromoCodeMessage: promoMessage,
		CartErrors:       cart.Errors,
	}, nil
}
