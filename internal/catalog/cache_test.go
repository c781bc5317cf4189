package catalog_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/catalog"
)

func newTestCache(t *testing.T, ttl time.Duration) *catalog.Cache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return catalog.NewCache(client, ttl)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t, time.Minute)
	ctx := context.Background()

	product := catalog.Product{
		ID:             shirtID,
		Title:          "Playera Azul",
		Slug:           "playera-azul",
		Price:          decimal.RequireFromString("299.90"),
		IsActive:       true,
		HasSizes:       true,
		AvailableSizes: []string{"S", "M"},
	}
	require.NoError(t, cache.SetJSON(ctx, catalog.ProductKey(product.ID), product))

	var got catalog.Product
	hit, err := cache.GetJSON(ctx, catalog.ProductKey(product.ID), &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, product.Slug, got.Slug)
	require.True(t, got.Price.Equal(product.Price))
	require.True(t, got.HasSizes)
}

func TestCacheMiss(t *testing.T) {
	cache := newTestCache(t, time.Minute)
	var got catalog.Product
	hit, err := cache.GetJSON(context.Background(), catalog.ProductKey(ghostID), &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestNilCacheIsPassThrough(t *testing.T) {
	var cache *catalog.Cache
	var got catalog.Product
	hit, err := cache.GetJSON(context.Background(), catalog.ProductKey(shirtID), &got)
	require.NoError(t, err)
	require.False(t, hit)
	require.NoError(t, cache.SetJSON(context.Background(), catalog.ProductKey(shirtID), got))
}

func TestStoreServesFullyCachedLookups(t *testing.T) {
	cache := newTestCache(t, time.Minute)
	ctx := context.Background()
	for _, p := range testProducts() {
		require.NoError(t, cache.SetJSON(ctx, catalog.ProductKey(p.ID), p))
	}

	// Pool is nil: any cache miss would panic, so a clean return proves the
	// lookup was served entirely from Redis.
	store := &catalog.PGStore{Cache: cache}
	products, err := store.FindProductsByIDs(ctx, []uuid.UUID{shirtID, mugID})
	require.NoError(t, err)
	require.Len(t, products, 2)
}
