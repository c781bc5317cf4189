package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const findProductsSQL = `
SELECT p.id,
       p.title,
       p.slug,
       p.price::text,
       p.is_active,
       p.deleted_at,
       pt.has_sizes,
       p.available_sizes,
       (SELECT i.url
          FROM product_images i
         WHERE i.product_id = p.id AND i.is_primary
         ORDER BY i.position
         LIMIT 1) AS image_url
  FROM products p
  JOIN product_types pt ON pt.id = p.product_type_id
 WHERE p.id = ANY($1)
`

// PGStore loads catalog rows from Postgres with a per-product read-through
// Redis cache. The query deliberately skips active/deleted filters: the
// validator needs inactive rows to tell PRODUCT_INACTIVE from
// PRODUCT_NOT_FOUND.
type PGStore struct {
	Pool  *pgxpool.Pool
	Cache *Cache
}

// FindProductsByIDs resolves the id set against cache first, then queries only
// the misses and backfills the cache.
func (s *PGStore) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	products := make([]Product, 0, len(ids))
	misses := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		var cached Product
		hit, err := s.Cache.GetJSON(ctx, ProductKey(id), &cached)
		if err != nil || !hit {
			// Cache failures fall back to the database.
			misses = append(misses, id)
			continue
		}
		products = append(products, cached)
	}
	if len(misses) == 0 {
		return products, nil
	}

	rows, err := s.Pool.Query(ctx, findProductsSQL, misses)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p        Product
			priceRaw string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &priceRaw, &p.IsActive, &p.DeletedAt, &p.HasSizes, &p.AvailableSizes, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price, err = decimal.NewFromString(priceRaw)
		if err != nil {
			return nil, fmt.Errorf("parse price for %s: %w", p.ID, err)
		}
		products = append(products, p)
		_ = s.Cache.SetJSON(ctx, ProductKey(p.ID), p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
