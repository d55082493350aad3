package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Statuses that never count toward revenue or sold-item figures.
const excludedStatuses = `('draft', 'pending_payment', 'payment_failed', 'cancelled', 'returned')`

type SalonPerformance struct {
	SalonID         uuid.UUID `json:"salon_id"`
	SalonName       string    `json:"salon_name"`
	TotalOrders     int64     `json:"total_orders"`
	RevenueCents    int64     `json:"revenue_cents"`
	ItemsSold       int64     `json:"items_sold"`
	ReturnedOrders  int64     `json:"returned_orders"`
	CancelledOrders int64     `json:"cancelled_orders"`
}

type ItemPerformance struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int64  `json:"total_quantity"`
	RevenueCents  int64  `json:"revenue_cents"`
}

type AnalyticsStore struct {
	pool *pgxpool.Pool
}

func NewAnalyticsStore(pool *pgxpool.Pool) *AnalyticsStore {
	return &AnalyticsStore{pool: pool}
}

// SalonPerformance aggregates orders, revenue and items sold per salon,
// optionally restricted to one salon. Revenue counts only orders that made
// it past payment.
func (s *AnalyticsStore) SalonPerformance(ctx context.Context, salonID *uuid.UUID) ([]SalonPerformance, error) {
	query := `
		SELECT
			salon_id,
			MAX(salon_name) AS salon_name,
			COUNT(*) FILTER (WHERE status NOT IN ` + excludedStatuses + `) AS total_orders,
			COALESCE(SUM(total_cents) FILTER (WHERE status NOT IN ` + excludedStatuses + `), 0) AS revenue_cents,
			COALESCE(SUM(
				(SELECT COALESCE(SUM((item->>'quantity')::BIGINT), 0) FROM jsonb_array_elements(items) item)
			) FILTER (WHERE status NOT IN ` + excludedStatuses + `), 0) AS items_sold,
			COUNT(*) FILTER (WHERE status = 'returned') AS returned_orders,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_orders
		FROM orders
	`
	args := []any{}
	if salonID != nil {
		query += ` WHERE salon_id = $1`
		args = append(args, *salonID)
	}
	query += ` GROUP BY salon_id ORDER BY revenue_cents DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []SalonPerformance
	for rows.Next() {
		var p SalonPerformance
		if err := rows.Scan(
			&p.SalonID, &p.SalonName, &p.TotalOrders, &p.RevenueCents,
			&p.ItemsSold, &p.ReturnedOrders, &p.CancelledOrders,
		); err != nil {
			return nil, err
		}
		stats = append(stats, p)
	}
	return stats, rows.Err()
}

// ItemPerformance aggregates sold quantity and revenue per product name
// across order line-item snapshots.
func (s *AnalyticsStore) ItemPerformance(ctx context.Context, salonID *uuid.UUID) ([]ItemPerformance, error) {
	query := `
		SELECT
			item->>'product_name' AS product_name,
			SUM((item->>'quantity')::BIGINT) AS total_quantity,
			SUM((item->>'quantity')::BIGINT * (item->>'price_cents')::BIGINT) AS revenue_cents
		FROM orders, jsonb_array_elements(items) item
		WHERE status NOT IN ` + excludedStatuses
	args := []any{}
	if salonID != nil {
		query += ` AND salon_id = $1`
		args = append(args, *salonID)
	}
	query += ` GROUP BY item->>'product_name' ORDER BY total_quantity DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ItemPerformance
	for rows.Next() {
		var p ItemPerformance
		if err := rows.Scan(&p.ProductName, &p.TotalQuantity, &p.RevenueCents); err != nil {
			return nil, err
		}
		stats = append(stats, p)
	}
	return stats, rows.Err()
}
