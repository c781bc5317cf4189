// Seeder inserts a small local-development dataset: a few product types,
// products with images and a handful of promo codes in every eligibility
// state. Re-runnable; every insert is ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	seedCatalog(ctx, pool)
	seedPromoCodes(ctx, pool)

	log.Println("seeding completed")
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, `
		INSERT INTO product_types (id, name, has_sizes) VALUES
			('0191c0de-0000-4000-8000-000000000001', 'apparel', TRUE),
			('0191c0de-0000-4000-8000-000000000002', 'accessory', FALSE)
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("seed product types: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO products (id, title, slug, price, is_active, product_type_id, available_sizes) VALUES
			('0191c0de-1111-4000-8000-000000000001', 'Playera Azul', 'playera-azul', 299.90, TRUE,
			 '0191c0de-0000-4000-8000-000000000001', ARRAY['S','M','L','XL']),
			('0191c0de-1111-4000-8000-000000000002', 'Sudadera Gris', 'sudadera-gris', 649.00, TRUE,
			 '0191c0de-0000-4000-8000-000000000001', ARRAY['M','L']),
			('0191c0de-1111-4000-8000-000000000003', 'Taza Esmaltada', 'taza-esmaltada', 189.50, TRUE,
			 '0191c0de-0000-4000-8000-000000000002', NULL),
			('0191c0de-1111-4000-8000-000000000004', 'Gorra Retirada', 'gorra-retirada', 249.00, FALSE,
			 '0191c0de-0000-4000-8000-000000000002', NULL)
		ON CONFLICT (slug) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO product_images (product_id, url, is_primary, position)
		SELECT p.id, 'https://cdn.example.com/img/' || p.slug || '.jpg', TRUE, 0
		  FROM products p
		 WHERE NOT EXISTS (
			SELECT 1 FROM product_images i WHERE i.product_id = p.id
		 );
	`)
	if err != nil {
		log.Fatalf("seed product images: %v", err)
	}

	log.Println("catalog seeded")
}

func seedPromoCodes(ctx context.Context, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, `
		INSERT INTO promo_codes
			(code, is_active, discount_type, discount_value, min_order_amount,
			 max_discount_amount, max_uses, current_uses, valid_from, valid_until)
		VALUES
			('VERANO10',  TRUE,  'PERCENTAGE',   10,  NULL, NULL, NULL, 0, now() - interval '1 day', NULL),
			('TOPE100',   TRUE,  'PERCENTAGE',   50,  NULL, 100,  NULL, 0, now() - interval '1 day', NULL),
			('MENOS50',   TRUE,  'FIXED_AMOUNT', 50,  300,  NULL, NULL, 0, now() - interval '1 day', NULL),
			('EXPIRED20', TRUE,  'PERCENTAGE',   20,  NULL, NULL, NULL, 0, now() - interval '30 days', now() - interval '1 day'),
			('FUTURO15',  TRUE,  'PERCENTAGE',   15,  NULL, NULL, NULL, 0, now() + interval '7 days', NULL),
			('PAUSADO',   FALSE, 'PERCENTAGE',   25,  NULL, NULL, NULL, 0, now() - interval '1 day', NULL),
			('AGOTADO',   TRUE,  'FIXED_AMOUNT', 100, NULL, NULL, 5,    5, now() - interval '1 day', NULL)
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("seed promo codes: %v", err)
	}

	log.Println("promo codes seeded")
}
