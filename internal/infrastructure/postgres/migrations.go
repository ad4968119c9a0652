package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema sentencias idempotentes del esquema del POS, en orden de dependencia.
// sale_items cae en cascada con su venta; Product y User son entidades raíz
// referenciadas (nunca poseídas) por sales/sale_items.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		status        TEXT NOT NULL,
		bio           TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL,
		category       TEXT NOT NULL,
		purchase_price NUMERIC(12,2) NOT NULL CHECK (purchase_price >= 0),
		selling_price  NUMERIC(12,2) NOT NULL CHECK (selling_price >= 0),
		stock          INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id            UUID PRIMARY KEY,
		sale_date     TIMESTAMPTZ NOT NULL,
		customer_name TEXT NOT NULL DEFAULT '',
		total         NUMERIC(12,2) NOT NULL,
		user_id       UUID NOT NULL REFERENCES users(id),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id         UUID PRIMARY KEY,
		sale_id    UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(12,2) NOT NULL,
		subtotal   NUMERIC(12,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
}

// Migrate ejecuta el esquema embebido al arrancar. Las sentencias son
// CREATE ... IF NOT EXISTS, por lo que arrancar sobre una DB ya poblada es seguro.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración: %w", err)
		}
	}
	return nil
}
