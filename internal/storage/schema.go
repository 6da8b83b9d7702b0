package storage

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates all tables and constraints if they do not exist.
// Statements are idempotent so the service can run it on every start.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_categories (
			id SERIAL PRIMARY KEY,
			key TEXT NOT NULL UNIQUE,
			title JSONB NOT NULL DEFAULT '{}',
			list_image TEXT,
			banner_image TEXT,
			display_order INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			category_id INT NOT NULL REFERENCES menu_categories(id),
			name JSONB NOT NULL DEFAULT '{}',
			description JSONB NOT NULL DEFAULT '{}',
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			has_sizes BOOLEAN NOT NULL DEFAULT FALSE,
			is_discounted BOOLEAN NOT NULL DEFAULT FALSE,
			is_discounted_small BOOLEAN NOT NULL DEFAULT FALSE,
			is_discounted_large BOOLEAN NOT NULL DEFAULT FALSE,
			price JSONB NOT NULL,
			original_price JSONB,
			display_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			address TEXT NOT NULL,
			email TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS discount_coupons (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_type TEXT NOT NULL,
			discount_value NUMERIC NOT NULL,
			min_order_amount NUMERIC NOT NULL DEFAULT 0,
			max_discount_amount NUMERIC,
			usage_limit INT,
			used_count INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			valid_from TIMESTAMPTZ,
			valid_until TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			customer_address TEXT NOT NULL,
			customer_email TEXT,
			items JSONB NOT NULL,
			subtotal NUMERIC NOT NULL,
			discount_amount NUMERIC NOT NULL DEFAULT 0,
			discount_code TEXT,
			total NUMERIC NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			payment_reference TEXT,
			notes TEXT,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS customer_surveys (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			food_rating INT NOT NULL,
			service_rating INT NOT NULL,
			atmosphere_rating INT NOT NULL,
			value_rating INT NOT NULL,
			recommend_score INT NOT NULL,
			liked TEXT,
			improve TEXT,
			marketing_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
			newsletter_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
			submitted_ip TEXT,
			submitted_language TEXT,
			user_agent TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'employee',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
