package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/platform/obs"
	"storefront-checkout-service/internal/ports"
)

var _ ports.OrderRepository = (*PostgresStore)(nil)

// CommitCheckout writes the order and deletes its cart lines in one
// transaction. The checkout token carries the idempotency: a replayed token
// inserts nothing, deletes nothing, and reports committed=false.
func (s *PostgresStore) CommitCheckout(ctx context.Context, order domain.OrderRecord, lineIDs []string) (_ bool, err error) {
	defer obs.Time(ctx, "store.CommitCheckout")(&err)

	items, err := json.Marshal(order.Items)
	if err != nil {
		return false, fmt.Errorf("commit checkout: marshal items: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("commit checkout: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO transactions (
		id, user_id, vendor_id, vendor_name, items, total_amount,
		delivery_lat, delivery_lon, status, checkout_token, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (checkout_token) DO NOTHING;
	`,
		order.ID, order.UserID, order.VendorID, order.VendorName, items, order.TotalAmount,
		order.Delivery.Lat, order.Delivery.Lon, string(order.Status), order.CheckoutToken,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("commit checkout: insert transaction: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("commit checkout: rows affected: %w", err)
	}
	if inserted == 0 {
		return false, nil
	}

	if len(lineIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `
		DELETE FROM cart_lines WHERE id = ANY($1::text[]);
		`, lineIDs); err != nil {
			return false, fmt.Errorf("commit checkout: delete cart lines: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit checkout: commit: %w", err)
	}

	return true, nil
}

// ListOrders returns a user's placed orders newest first; an empty status
// matches all statuses.
func (s *PostgresStore) ListOrders(ctx context.Context, userID string, status domain.OrderStatus) (_ []domain.OrderRecord, err error) {
	defer obs.Time(ctx, "store.ListOrders")(&err)

	q := `
	SELECT id, user_id, vendor_id, vendor_name, items, total_amount,
	       delivery_lat, delivery_lon, status, checkout_token, created_at, updated_at
	FROM transactions
	WHERE user_id = $1
	`
	args := []any{userID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC, id;`

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: query transactions table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.OrderRecord, 0)
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id string) (domain.OrderRecord, error) {
	return s.getOrderWhere(ctx, `id = $1`, id)
}

func (s *PostgresStore) GetOrderByToken(ctx context.Context, token string) (domain.OrderRecord, error) {
	return s.getOrderWhere(ctx, `checkout_token = $1`, token)
}

func (s *PostgresStore) getOrderWhere(ctx context.Context, where string, arg any) (domain.OrderRecord, error) {
	row := s.DB.QueryRowContext(ctx, `
	SELECT id, user_id, vendor_id, vendor_name, items, total_amount,
	       delivery_lat, delivery_lon, status, checkout_token, created_at, updated_at
	FROM transactions
	WHERE `+where+`;`, arg)

	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.OrderRecord{}, fmt.Errorf("get order: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

// UpdateStatus persists a transition already validated against the status machine.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	res, err := s.DB.ExecContext(ctx, `
	UPDATE transactions
	SET status = $2, updated_at = now()
	WHERE id = $1;
	`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status %q: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update order status %q: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanOrder(scan func(...any) error) (domain.OrderRecord, error) {
	var (
		o      domain.OrderRecord
		items  []byte
		status string
	)
	if err := scan(
		&o.ID, &o.UserID, &o.VendorID, &o.VendorName, &items, &o.TotalAmount,
		&o.Delivery.Lat, &o.Delivery.Lon, &status, &o.CheckoutToken, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return domain.OrderRecord{}, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return domain.OrderRecord{}, fmt.Errorf("unmarshal items: %w", err)
	}
	o.Status = domain.OrderStatus(status)

	return o, nil
}
