package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/saloncartapp/saloncart/internal/models"
)

type stubHook struct {
	name  string
	err   error
	calls int
}

func (s *stubHook) Name() string { return s.name }

func (s *stubHook) Notify(_ context.Context, _ *models.Order, _ *models.Salon) error {
	s.calls++
	return s.err
}

func testOrder() (*models.Order, *models.Salon) {
	salonID := uuid.New()
	order := &models.Order{
		ID:              uuid.New(),
		MerchantOrderID: "7",
		SalonID:         salonID,
		SalonName:       "Liyo Salon",
		CustomerName:    "Nimal Perera",
		Status:          models.StatusPaid,
		TotalCents:      20000,
		Items:           []models.OrderItem{{ProductName: "Shampoo", Quantity: 2, PriceCents: 10000}},
	}
	return order, &models.Salon{ID: salonID, Name: "Liyo Salon", ContactNumber: "0711234567"}
}

func TestDispatchRunsAllHooks(t *testing.T) {
	t.Parallel()

	first := &stubHook{name: "sheets"}
	second := &stubHook{name: "whatsapp"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewDispatcher(nil, logger, first, second)

	order, salon := testOrder()
	dispatcher.Dispatch(context.Background(), order, salon)

	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("every hook must run once: sheets=%d whatsapp=%d", first.calls, second.calls)
	}
}

func TestDispatchContinuesPastFailingHook(t *testing.T) {
	t.Parallel()

	failing := &stubHook{name: "sheets", err: fmt.Errorf("append failed")}
	healthy := &stubHook{name: "whatsapp"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewDispatcher(nil, logger, failing, healthy)

	order, salon := testOrder()
	dispatcher.Dispatch(context.Background(), order, salon)

	if healthy.calls != 1 {
		t.Fatalf("later hooks must still run after a failure, got %d", healthy.calls)
	}
}

func TestNewDispatcherDropsNilHooks(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewDispatcher(nil, logger, nil, &stubHook{name: "whatsapp"}, nil)

	if dispatcher.HookCount() != 1 {
		t.Fatalf("unexpected hook count: %d", dispatcher.HookCount())
	}

	order, salon := testOrder()
	dispatcher.Dispatch(context.Background(), order, salon)
}
