package promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const findByCodeSQL = `
SELECT code,
       is_active,
       discount_type,
       discount_value::text,
       min_order_amount::text,
       max_discount_amount::text,
       max_uses,
       current_uses,
       valid_from,
       valid_until
  FROM promo_codes
 WHERE code = $1
`

// PGStore loads promo records from Postgres. Rows are never cached: a stale
// current_uses snapshot would let an exhausted code pass the usage check.
//
// The store is read-only. When order placement lands, usage consumption must
// be a single conditional UPDATE (compare-and-increment on current_uses under
// max_uses) so the eligibility check and the increment cannot race.
type PGStore struct {
	Pool *pgxpool.Pool
}

// FindByCode returns the promo record for an exact normalized-code match.
func (s *PGStore) FindByCode(ctx context.Context, code string) (Code, bool, error) {
	var (
		c        Code
		valueRaw string
		minRaw   *string
		maxRaw   *string
		dtype    string
	)
	row := s.Pool.QueryRow(ctx, findByCodeSQL, code)
	err := row.Scan(&c.Code, &c.IsActive, &dtype, &valueRaw, &minRaw, &maxRaw, &c.MaxUses, &c.CurrentUses, &c.ValidFrom, &c.ValidUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Code{}, false, nil
		}
		return Code{}, false, fmt.Errorf("query promo code: %w", err)
	}
	c.DiscountType = DiscountType(dtype)
	if c.DiscountValue, err = decimal.NewFromString(valueRaw); err != nil {
		return Code{}, false, fmt.Errorf("parse discount value: %w", err)
	}
	if c.MinOrderAmount, err = parseNullableDecimal(minRaw); err != nil {
		return Code{}, false, fmt.Errorf("parse min order amount: %w", err)
	}
	if c.MaxDiscountAmount, err = parseNullableDecimal(maxRaw); err != nil {
		return Code{}, false, fmt.Errorf("parse max discount amount: %w", err)
	}
	return c, true, nil
}

func parseNullableDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
