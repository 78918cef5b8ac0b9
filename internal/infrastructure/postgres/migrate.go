package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema se aplica en orden en cada arranque; todas las sentencias son idempotentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		email              TEXT NOT NULL,
		password_hash      TEXT NOT NULL,
		role               TEXT NOT NULL DEFAULT 'customer',
		phone              TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'pending',
		created_by         TEXT,
		reset_token        TEXT NOT NULL DEFAULT '',
		reset_token_expiry TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email));`,
	`CREATE INDEX IF NOT EXISTS users_created_by_idx ON users (created_by);`,
	`CREATE TABLE IF NOT EXISTS vehicle_sales (
		id                 TEXT PRIMARY KEY,
		make               TEXT NOT NULL,
		model              TEXT NOT NULL,
		year               INTEGER NOT NULL,
		vin                TEXT NOT NULL,
		price              NUMERIC(14,2) NOT NULL,
		customer_id        TEXT NOT NULL,
		amount_paid        NUMERIC(14,2) NOT NULL,
		amount_due         NUMERIC(14,2),
		payment_status     TEXT NOT NULL DEFAULT 'Pending',
		currency           TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'pending',
		seller_id          TEXT NOT NULL,
		estimated_delivery TIMESTAMPTZ,
		sale_date          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS vehicle_sales_seller_idx ON vehicle_sales (seller_id);`,
	`CREATE INDEX IF NOT EXISTS vehicle_sales_customer_idx ON vehicle_sales (customer_id);`,
}

// Migrate crea las tablas e índices si no existen.
// Las referencias (created_by, customer_id, seller_id) no llevan FOREIGN KEY: no hay borrado en cascada
// y una referencia colgante se devuelve como nula en las lecturas.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
