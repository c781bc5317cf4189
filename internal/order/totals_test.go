package order_test

import (
	"context"
	"testing"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/catalog"
	"github.com/tienda-mx/checkout-api/internal/common"
	"github.com/tienda-mx/checkout-api/internal/order"
	"github.com/tienda-mx/checkout-api/internal/promo"
)

var (
	posterID  = uuid.MustParse("aaaaaaaa-1111-1111-1111-111111111111")
	stickerID = uuid.MustParse("aaaaaaaa-2222-2222-2222-222222222222")
	ghostID   = uuid.MustParse("aaaaaaaa-9999-9999-9999-999999999999")

	frozenNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
)

type fakeCatalog struct {
	products []catalog.Product
}

func (f *fakeCatalog) FindProductsByIDs(_ context.Context, _ []uuid.UUID) ([]catalog.Product, error) {
	return f.products, nil
}

type fakePromos struct {
	codes map[string]promo.Code
}

func (f *fakePromos) FindByCode(_ context.Context, code string) (promo.Code, bool, error) {
	c, ok := f.codes[code]
	return c, ok, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: posterID, Title: "Poster", Slug: "poster", Price: dec("100"), IsActive: true},
		{ID: stickerID, Title: "Sticker", Slug: "sticker", Price: dec("29.99"), IsActive: true},
	}
}

func testPromos() map[string]promo.Code {
	expired := frozenNow.Add(-48 * time.Hour)
	return map[string]promo.Code{
		"DESC20": {
			Code:          "DESC20",
			IsActive:      true,
			DiscountType:  promo.DiscountPercentage,
			DiscountValue: dec("20"),
			ValidFrom:     frozenNow.Add(-24 * time.Hour),
		},
		"TOPE15": {
			Code:              "TOPE15",
			IsActive:          true,
			DiscountType:      promo.DiscountPercentage,
			DiscountValue:     dec("20"),
			MaxDiscountAmount: decPtr("15"),
			ValidFrom:         frozenNow.Add(-24 * time.Hour),
		},
		"FIJO15": {
			Code:          "FIJO15",
			IsActive:      true,
			DiscountType:  promo.DiscountFixedAmount,
			DiscountValue: dec("15"),
			ValidFrom:     frozenNow.Add(-24 * time.Hour),
		},
		"EXPIRED20": {
			Code:          "EXPIRED20",
			IsActive:      true,
			DiscountType:  promo.DiscountPercentage,
			DiscountValue: dec("20"),
			ValidFrom:     frozenNow.Add(-96 * time.Hour),
			ValidUntil:    &expired,
		},
	}
}

func newService(cfg order.TotalsConfig) *order.Service {
	return &order.Service{
		Cart: &catalog.Validator{
			Store:    &fakeCatalog{products: testProducts()},
			Validate: validator.New(),
		},
		Promo: &promo.Evaluator{
			Store: &fakePromos{codes: testPromos()},
			Now:   func() time.Time { return frozenNow },
		},
		Config: cfg,
	}
}

func zeroConfig() order.TotalsConfig {
	return order.TotalsConfig{TaxRate: decimal.Zero, ShippingCost: decimal.Zero, Currency: "MXN"}
}

func onePoster() order.TotalRequest {
	return order.TotalRequest{
		Items: []catalog.LineItemRequest{{ProductID: posterID.String(), Quantity: 1}},
	}
}

func TestComputeTotalNoPromo(t *testing.T) {
	svc := newService(zeroConfig())

	res, err := svc.ComputeTotal(context.Background(), onePoster())
	require.NoError(t, err)
	require.True(t, res.Valid)
	require.True(t, res.Subtotal.Equal(dec("100")))
	require.True(t, res.DiscountAmount.IsZero())
	require.True(t, res.Total.Equal(dec("100")))
	require.Equal(t, "MXN", res.Currency)
	require.Equal(t, 1, res.ItemCount)
	require.Nil(t, res.AppliedPromoCode)
	require.Empty(t, res.PromoCodeMessage)
	require.Empty(t, res.CartErrors)
}

func TestComputeTotalPercentagePromo(t *testing.T) {
	svc := newService(zeroConfig())
	req := onePoster()
	req.PromoCode = strPtr("desc20")

	res, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.Valid)
	require.True(t, res.DiscountAmount.Equal(dec("20")))
	require.True(t, res.Total.Equal(dec("80")))
	require.NotNil(t, res.AppliedPromoCode)
	require.Equal(t, "DESC20", *res.AppliedPromoCode)
	require.Empty(t, res.PromoCodeMessage)
}

func TestComputeTotalMaxDiscountCap(t *testing.T) {
	svc := newService(zeroConfig())
	req := onePoster()
	req.PromoCode = strPtr("TOPE15")

	res, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.DiscountAmount.Equal(dec("15")))
	require.True(t, res.Total.Equal(dec("85")))
}

func TestComputeTotalFlooredAtZero(t *testing.T) {
	// A 15 fixed discount on a 10 cart: discount is capped at the order
	// total, so the total floors at zero instead of going negative.
	svc := newService(zeroConfig())
	svc.Cart.Store = &fakeCatalog{products: []catalog.Product{
		{ID: posterID, Title: "Poster", Slug: "poster", Price: dec("10"), IsActive: true},
	}}
	req := onePoster()
	req.PromoCode = strPtr("FIJO15")

	res, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.Total.IsZero())
	require.False(t, res.Total.IsNegative())
}

func TestComputeTotalPartiallyInvalidCart(t *testing.T) {
	svc := newService(zeroConfig())
	req := order.TotalRequest{
		Items: []catalog.LineItemRequest{
			{ProductID: stickerID.String(), Quantity: 2},
			{ProductID: ghostID.String(), Quantity: 1},
		},
	}

	res, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Len(t, res.CartErrors, 1)
	require.Equal(t, catalog.CodeProductNotFound, res.CartErrors[0].Code)
	require.True(t, res.Subtotal.Equal(dec("59.98")))
	require.True(t, res.Total.Equal(dec("59.98")))
	require.Len(t, res.ValidatedItems, 1)
}

func TestComputeTotalExpiredPromo(t *testing.T) {
	svc := newService(zeroConfig())
	req := onePoster()
	req.PromoCode = strPtr("EXPIRED20")

	res, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.Valid, "promo failure never invalidates the order")
	require.True(t, res.DiscountAmount.IsZero())
	require.Nil(t, res.AppliedPromoCode)
	require.Equal(t, "Promo code has expired", res.PromoCodeMessage)
	require.True(t, res.Total.Equal(dec("100")))
}

func TestComputeTotalTaxAndShipping(t *testing.T) {
	cfg := order.TotalsConfig{TaxRate: dec("0.16"), ShippingCost: dec("99.50"), Currency: "MXN"}
	svc := newService(cfg)
	req := onePoster()
	req.PromoCode = strPtr("DESC20")

	res, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	// tax = 0.16 * (100 - 20) = 12.80; total = 80 + 99.50 + 12.80.
	require.True(t, res.TaxAmount.Equal(dec("12.80")))
	require.True(t, res.ShippingCost.Equal(dec("99.50")))
	require.True(t, res.Total.Equal(dec("192.30")))
}

func TestComputeTotalStructuralErrors(t *testing.T) {
	svc := newService(zeroConfig())

	tests := []struct {
		name string
		req  order.TotalRequest
	}{
		{name: "empty items", req: order.TotalRequest{}},
		{
			name: "bad quantity",
			req: order.TotalRequest{
				Items: []catalog.LineItemRequest{{ProductID: posterID.String(), Quantity: 0}},
			},
		},
		{
			name: "blank promo code",
			req: order.TotalRequest{
				Items:     []catalog.LineItemRequest{{ProductID: posterID.String(), Quantity: 1}},
				PromoCode: strPtr("   "),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ComputeTotal(context.Background(), tc.req)
			require.Error(t, err)
			require.True(t, common.IsValidation(err))
		})
	}
}

func TestComputeTotalIdempotent(t *testing.T) {
	svc := newService(zeroConfig())
	req := onePoster()
	req.PromoCode = strPtr("DESC20")

	first, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.ComputeTotal(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
