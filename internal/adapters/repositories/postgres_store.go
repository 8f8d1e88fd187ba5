package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/platform/obs"
	"storefront-checkout-service/internal/ports"
)

// PostgresStore backs the vendor, product, cart and order ports with a
// single Postgres database.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

var (
	_ ports.VendorRepository  = (*PostgresStore)(nil)
	_ ports.ProductRepository = (*PostgresStore)(nil)
	_ ports.CartRepository    = (*PostgresStore)(nil)
)

// ListVendors retrieves every vendor record.
func (s *PostgresStore) ListVendors(ctx context.Context) (_ []domain.Vendor, err error) {
	defer obs.Time(ctx, "store.ListVendors")(&err)

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, display_name, address, lat, lon
	FROM vendors
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: query vendors table: %w", err)
	}
	defer rows.Close()

	return scanVendors(rows)
}

// ListVendorsByIDs retrieves the vendors matching ids, preserving the order
// of ids for the ones that exist.
func (s *PostgresStore) ListVendorsByIDs(ctx context.Context, ids []string) (_ []domain.Vendor, err error) {
	defer obs.Time(ctx, "store.ListVendorsByIDs")(&err)

	if len(ids) == 0 {
		return []domain.Vendor{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, display_name, address, lat, lon
	FROM vendors
	WHERE id = ANY($1::text[]);
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("list vendors by ids: query vendors table: %w", err)
	}
	defer rows.Close()

	found, err := scanVendors(rows)
	if err != nil {
		return nil, fmt.Errorf("list vendors by ids: %w", err)
	}

	byID := make(map[string]domain.Vendor, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	out := make([]domain.Vendor, 0, len(found))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}

	return out, nil
}

func (s *PostgresStore) GetVendor(ctx context.Context, id string) (domain.Vendor, error) {
	row := s.DB.QueryRowContext(ctx, `
	SELECT id, display_name, address, lat, lon
	FROM vendors
	WHERE id = $1;
	`, id)

	v, err := scanVendor(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, fmt.Errorf("get vendor %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("get vendor %q: %w", id, err)
	}

	return v, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) (_ []domain.Product, err error) {
	defer obs.Time(ctx, "store.ListProducts")(&err)

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, vendor_id, name, description, price, image_url, created_at
	FROM products
	ORDER BY created_at DESC, id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("list products: scan rows: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := s.DB.QueryRowContext(ctx, `
	SELECT id, vendor_id, name, description, price, image_url, created_at
	FROM products
	WHERE id = $1;
	`, id).Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("get product %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %q: %w", id, err)
	}

	return p, nil
}

func (s *PostgresStore) ListLines(ctx context.Context, userID string) (_ []domain.CartLine, err error) {
	defer obs.Time(ctx, "store.ListLines")(&err)

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, user_id, vendor_id, product_id, product_name, quantity, unit_price, created_at
	FROM cart_lines
	WHERE user_id = $1
	ORDER BY created_at, id;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: query cart_lines table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CartLine, 0)
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.VendorID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("list cart lines: scan rows: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart lines: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) AddLine(ctx context.Context, line domain.CartLine) error {
	if err := line.Validate(); err != nil {
		return fmt.Errorf("add cart line: %w", err)
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO cart_lines (id, user_id, vendor_id, product_id, product_name, quantity, unit_price, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, line.ID, line.UserID, line.VendorID, line.ProductID, line.ProductName, line.Quantity, line.UnitPrice, line.CreatedAt)
	if err != nil {
		return fmt.Errorf("add cart line %q: %w", line.ID, err)
	}

	return nil
}

func (s *PostgresStore) DeleteLine(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM cart_lines WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete cart line %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart line %q: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete cart line %q: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanVendors(rows *sql.Rows) ([]domain.Vendor, error) {
	out := make([]domain.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan rows: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return out, nil
}

func scanVendor(scan func(...any) error) (domain.Vendor, error) {
	var (
		v        domain.Vendor
		lat, lon sql.NullFloat64
	)
	if err := scan(&v.ID, &v.DisplayName, &v.Address, &lat, &lon); err != nil {
		return domain.Vendor{}, err
	}

	// A coordinate exists only when both columns are set.
	if lat.Valid && lon.Valid {
		v.Coordinate = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	return v, nil
}
