package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

const orderColumns = `
	id, merchant_order_id, salon_id, salon_name, customer_name, customer_phone,
	additional_phone, address, city, items, total_cents, payment_method,
	status, status_date, returned_at, cancelled_at, created_at
`

func (s *OrderStore) Create(ctx context.Context, order *Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	const query = `
		INSERT INTO orders (
			merchant_order_id, salon_id, salon_name, customer_name, customer_phone,
			additional_phone, address, city, items, total_cents, payment_method,
			status, status_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, status_date, created_at
	`
	merchantID := pgtype.Text{String: order.MerchantOrderID, Valid: order.MerchantOrderID != ""}
	return s.pool.QueryRow(ctx, query,
		merchantID, order.SalonID, order.SalonName, order.CustomerName, order.CustomerPhone,
		order.AdditionalPhone, order.Address, order.City, itemsJSON, order.TotalCents,
		string(order.PaymentMethod), string(order.Status),
	).Scan(&order.ID, &order.StatusDate, &order.CreatedAt)
}

func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (s *OrderStore) GetByMerchantOrderID(ctx context.Context, merchantOrderID string) (*Order, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE merchant_order_id = $1`, merchantOrderID)
	return scanOrder(row)
}

// Update overwrites the mutable order fields. Used by finalize to commit
// items, total, payment method and refreshed customer details in place.
func (s *OrderStore) Update(ctx context.Context, order *Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	const query = `
		UPDATE orders
		SET merchant_order_id = $1, customer_name = $2, customer_phone = $3,
		    additional_phone = $4, address = $5, city = $6, items = $7,
		    total_cents = $8, payment_method = $9, status = $10, status_date = NOW()
		WHERE id = $11
		RETURNING status_date
	`
	merchantID := pgtype.Text{String: order.MerchantOrderID, Valid: order.MerchantOrderID != ""}
	err = s.pool.QueryRow(ctx, query,
		merchantID, order.CustomerName, order.CustomerPhone, order.AdditionalPhone,
		order.Address, order.City, itemsJSON, order.TotalCents,
		string(order.PaymentMethod), string(order.Status), order.ID,
	).Scan(&order.StatusDate)
	return err
}

// MarkPaid transitions the order to paid and reports whether this call made
// the transition. A repeated callback for an already-paid order affects zero
// rows, which is how duplicate gateway deliveries stay idempotent.
func (s *OrderStore) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE orders
		SET status = $1, status_date = NOW()
		WHERE id = $2 AND status <> $1
	`
	tag, err := s.pool.Exec(ctx, query, string(StatusPaid), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus persists the status and its timestamps as set by the service
// (any state may jump to any status; the permissive graph is intentional).
func (s *OrderStore) UpdateStatus(ctx context.Context, order *Order) error {
	const query = `
		UPDATE orders
		SET status = $1, status_date = $2, returned_at = $3, cancelled_at = $4
		WHERE id = $5
	`
	tag, err := s.pool.Exec(ctx, query,
		string(order.Status), order.StatusDate, order.ReturnedAt, order.CancelledAt, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LatestByCustomerPhone returns the most recent order placed with the given
// phone number, used to prefill returning-customer checkout details.
func (s *OrderStore) LatestByCustomerPhone(ctx context.Context, phone string) (*Order, error) {
	const query = `
		SELECT ` + orderColumns + `
		FROM orders WHERE customer_phone = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := s.pool.QueryRow(ctx, query, phone)
	return scanOrder(row)
}

// List returns orders newest first, optionally filtered by salon.
func (s *OrderStore) List(ctx context.Context, salonID *uuid.UUID) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if salonID != nil {
		query += ` WHERE salon_id = $1`
		args = append(args, *salonID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		order       Order
		merchantID  pgtype.Text
		itemsJSON   []byte
		returnedAt  pgtype.Timestamptz
		cancelledAt pgtype.Timestamptz
		method      string
		status      string
	)
	err := row.Scan(
		&order.ID, &merchantID, &order.SalonID, &order.SalonName,
		&order.CustomerName, &order.CustomerPhone, &order.AdditionalPhone,
		&order.Address, &order.City, &itemsJSON, &order.TotalCents,
		&method, &status, &order.StatusDate, &returnedAt, &cancelledAt,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if merchantID.Valid {
		order.MerchantOrderID = merchantID.String
	}
	if returnedAt.Valid {
		t := returnedAt.Time
		order.ReturnedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		order.CancelledAt = &t
	}
	order.PaymentMethod = PaymentMethod(method)
	order.Status = OrderStatus(status)

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	return &order, nil
}
