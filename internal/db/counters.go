package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderIDCounter is the counter backing merchant order id allocation.
const OrderIDCounter = "order_id"

// CounterStore issues monotonically increasing sequence values. The
// increment happens inside a single upsert statement so two concurrent
// callers can never observe the same value.
type CounterStore struct {
	pool *pgxpool.Pool
}

func NewCounterStore(pool *pgxpool.Pool) *CounterStore {
	return &CounterStore{pool: pool}
}

// Next atomically increments the named counter and returns the new value.
// The counter row is created on first use, starting from 1.
func (s *CounterStore) Next(ctx context.Context, name string) (int64, error) {
	const query = `
		INSERT INTO counters (name, seq) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`
	var seq int64
	if err := s.pool.QueryRow(ctx, query, name).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to increment counter %q: %w", name, err)
	}
	return seq, nil
}
