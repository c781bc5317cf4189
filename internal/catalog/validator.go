package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tienda-mx/checkout-api/internal/common"
	"github.com/tienda-mx/checkout-api/internal/money"
)

// Store is the read-only catalog lookup the validator depends on.
type Store interface {
	// FindProductsByIDs returns all matching rows regardless of active or
	// deleted state.
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
}

// Validator resolves requested line items against the catalog and classifies
// each as accepted or rejected with a specific reason.
type Validator struct {
	Store    Store
	Validate *validator.Validate
}

// ValidateCart checks the request shape, prices the resolvable items and
// accumulates one error per rejected item. Shape violations abort before any
// catalog lookup; a storage failure propagates unclassified.
func (v *Validator) ValidateCart(ctx context.Context, req ValidateCartRequest) (Result, error) {
	if v == nil || v.Store == nil || v.Validate == nil {
		return Result{}, errors.New("catalog validator not configured")
	}
	normalizeSizes(req.Items)
	if err := common.ValidateStruct(v.Validate, req); err != nil {
		return Result{}, err
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	for _, item := range req.Items {
		id := uuid.MustParse(item.ProductID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	products, err := v.Store.FindProductsByIDs(ctx, ids)
	if err != nil {
		return Result{}, fmt.Errorf("find products: %w", err)
	}
	byID := make(map[uuid.UUID]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	result := Result{
		Items:  make([]ValidatedItem, 0, len(req.Items)),
		Errors: make([]ItemError, 0),
	}
	for _, item := range req.Items {
		id := uuid.MustParse(item.ProductID)
		product, found := byID[id]
		if itemErr := classify(item, product, found); itemErr != nil {
			result.Errors = append(result.Errors, *itemErr)
			continue
		}
		subtotal := money.Round2(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		result.Items = append(result.Items, ValidatedItem{
			ProductID: id,
			Quantity:  item.Quantity,
			Size:      item.Size,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
			Product: ProductSummary{
				ID:       product.ID,
				Title:    product.Title,
				Slug:     product.Slug,
				ImageURL: product.ImageURL,
			},
			Status: "valid",
		})
	}

	subtotals := make([]decimal.Decimal, 0, len(result.Items))
	for _, it := range result.Items {
		subtotals = append(subtotals, it.Subtotal)
		result.Summary.ItemCount += it.Quantity
	}
	result.Summary.Subtotal = money.Sum2(subtotals...)
	result.Valid = len(result.Errors) == 0
	return result, nil
}

// classify applies the ordered guard chain; the first matching rule wins.
func classify(item LineItemRequest, product Product, found bool) *ItemError {
	switch {
	case !found:
		return &ItemError{ProductID: item.ProductID, Code: CodeProductNotFound, Message: "Product not found"}
	case !product.IsActive || product.DeletedAt != nil:
		return &ItemError{ProductID: item.ProductID, Code: CodeProductInactive, Message: "Product is not available"}
	case product.HasSizes && item.Size == nil:
		return &ItemError{ProductID: item.ProductID, Code: CodeSizeRequired, Message: "A size is required for this product"}
	case !product.HasSizes && item.Size != nil:
		return &ItemError{ProductID: item.ProductID, Code: CodeSizeNotAllowed, Message: "This product does not accept a size"}
	case item.Size != nil && !containsSize(product.AvailableSizes, *item.Size):
		return &ItemError{ProductID: item.ProductID, Code: CodeInvalidSize, Message: "Size is not available for this product"}
	default:
		return nil
	}
}

func containsSize(available []string, size string) bool {
	for _, s := range available {
		if s == size {
			return true
		}
	}
	return false
}

func normalizeSizes(items []LineItemRequest) {
	for i := range items {
		if items[i].Size == nil {
			continue
		}
		trimmed := strings.TrimSpace(*items[i].Size)
		items[i].Size = &trimmed
	}
}
