package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVendorsQuery := `
	CREATE TABLE IF NOT EXISTS vendors (
		id text PRIMARY KEY,
		display_name text NOT NULL,
		address text NOT NULL DEFAULT '',
		lat double precision,
		lon double precision
	);
	`

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		id text PRIMARY KEY,
		vendor_id text NOT NULL REFERENCES vendors(id),
		name text NOT NULL,
		description text NOT NULL DEFAULT '',
		price double precision NOT NULL CHECK (price >= 0),
		image_url text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	);
	`

	createCartLinesQuery := `
	CREATE TABLE IF NOT EXISTS cart_lines (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		vendor_id text NOT NULL DEFAULT '',
		product_id text NOT NULL,
		product_name text NOT NULL,
		quantity integer NOT NULL CHECK (quantity >= 1),
		unit_price double precision NOT NULL CHECK (unit_price >= 0),
		created_at timestamptz NOT NULL DEFAULT now()
	);
	`

	createTransactionsQuery := `
	CREATE TABLE IF NOT EXISTS transactions (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		vendor_id text NOT NULL,
		vendor_name text NOT NULL,
		items jsonb NOT NULL,
		total_amount double precision NOT NULL,
		delivery_lat double precision NOT NULL,
		delivery_lon double precision NOT NULL,
		status text NOT NULL,
		checkout_token text NOT NULL UNIQUE,
		created_at timestamptz NOT NULL,
		updated_at timestamptz NOT NULL
	);
	`

	createIndexesQuery := `
	CREATE INDEX IF NOT EXISTS idx_cart_lines_user ON cart_lines(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions(user_id, created_at DESC);
	`

	statements := []string{
		createVendorsQuery,
		createProductsQuery,
		createCartLinesQuery,
		createTransactionsQuery,
		createIndexesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VendorSeed struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

type ProductSeed struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendor_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type SeedFile struct {
	Vendors  []VendorSeed  `json:"vendors"`
	Products []ProductSeed `json:"products"`
}

// Populate the database with vendor and product data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed store: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed store: parse json: %w", err)
	}

	for i, v := range data.Vendors {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("seed store: vendor at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(v.DisplayName) == "" {
			return fmt.Errorf("seed store: vendor %q: display_name cannot be empty", v.ID)
		}
		if (v.Lat == nil) != (v.Lon == nil) {
			return fmt.Errorf("seed store: vendor %q: lat and lon must be set together", v.ID)
		}
	}

	for i, p := range data.Products {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("seed store: product at index %d: id cannot be empty", i+1)
		}
		if p.Price < 0 {
			return fmt.Errorf("seed store: product %q: price cannot be negative", p.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	vendorStmt, err := tx.Prepare(`
	INSERT INTO vendors (id, display_name, address, lat, lon)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET display_name = EXCLUDED.display_name,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`)
	if err != nil {
		return fmt.Errorf("seed store: prepare vendor insert: %w", err)
	}
	defer vendorStmt.Close()

	for _, v := range data.Vendors {
		if _, err := vendorStmt.Exec(v.ID, v.DisplayName, strings.TrimSpace(v.Address), v.Lat, v.Lon); err != nil {
			return fmt.Errorf("seed store: insert vendor %q: %w", v.ID, err)
		}
	}

	productStmt, err := tx.Prepare(`
	INSERT INTO products (id, vendor_id, name, description, price, image_url)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET vendor_id = EXCLUDED.vendor_id,
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		image_url = EXCLUDED.image_url;
	`)
	if err != nil {
		return fmt.Errorf("seed store: prepare product insert: %w", err)
	}
	defer productStmt.Close()

	for _, p := range data.Products {
		if _, err := productStmt.Exec(p.ID, p.VendorID, p.Name, p.Description, p.Price, p.ImageURL); err != nil {
			return fmt.Errorf("seed store: insert product %q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed store: commit tx: %w", err)
	}

	return nil
}
