package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog row as returned by the bulk lookup. Inactive and
// soft-deleted rows are included so the validator can tell "inactive" apart
// from "not found".
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Price          decimal.Decimal `json:"price"`
	IsActive       bool            `json:"isActive"`
	DeletedAt      *time.Time      `json:"deletedAt"`
	HasSizes       bool            `json:"hasSizes"`
	AvailableSizes []string        `json:"availableSizes"`
	ImageURL       *string         `json:"imageUrl"`
}

// ErrorCode classifies why a line item was rejected.
type ErrorCode string

// Rejection codes, mutually exclusive and order-sensitive: existence is
// checked before activity, activity before sizing.
const (
	CodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"
	CodeProductInactive ErrorCode = "PRODUCT_INACTIVE"
	CodeSizeRequired    ErrorCode = "SIZE_REQUIRED"
	CodeSizeNotAllowed  ErrorCode = "SIZE_NOT_ALLOWED"
	CodeInvalidSize     ErrorCode = "INVALID_SIZE"
)

// LineItemRequest is one requested cart entry. Input only, never persisted.
type LineItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gte=1,lte=99"`
	Size      *string `json:"size" validate:"omitnil,min=1,max=20"`
}

// ValidateCartRequest is the cart validation payload.
type ValidateCartRequest struct {
	Items []LineItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

// ProductSummary carries the display fields echoed on validated items.
type ProductSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	ImageURL *string   `json:"imageUrl,omitempty"`
}

// ValidatedItem is a priced, accepted line item.
type ValidatedItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Size      *string         `json:"size"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   ProductSummary  `json:"product"`
	Status    string          `json:"status"`
}

// ItemError describes one rejected line item. Rejected items are dropped from
// totals, not retried.
type ItemError struct {
	ProductID string    `json:"productId"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
}

// Summary aggregates the accepted items only.
type Summary struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
}

// Result is the outcome of validating a cart. Valid is true only when every
// requested item was accepted.
type Result struct {
	Valid   bool            `json:"valid"`
	Items   []ValidatedItem `json:"items"`
	Summary Summary         `json:"summary"`
	Errors  []ItemError     `json:"errors"`
}
