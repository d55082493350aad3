// Package notify fans out best-effort side effects after a confirmed
// payment: spreadsheet logging and a WhatsApp message to the salon.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/saloncartapp/saloncart/internal/logging"
	"github.com/saloncartapp/saloncart/internal/models"
	"github.com/saloncartapp/saloncart/internal/observability"
)

const defaultHookTimeout = 15 * time.Second

// Hook is one post-payment side effect. Implementations must be safe to
// call concurrently and should honor ctx cancellation.
type Hook interface {
	Name() string
	Notify(ctx context.Context, order *models.Order, salon *models.Salon) error
}

// Dispatcher invokes every hook independently. A failing hook is logged and
// counted but never blocks or fails the others, and nothing is retried.
type Dispatcher struct {
	hooks   []Hook
	timeout time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewDispatcher(metrics *observability.Metrics, logger *slog.Logger, hooks ...Hook) *Dispatcher {
	kept := make([]Hook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			kept = append(kept, h)
		}
	}
	return &Dispatcher{
		hooks:   kept,
		timeout: defaultHookTimeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Dispatch runs all hooks for a freshly paid order. Errors are absorbed
// here; the payment confirmation must never fail because a side channel did.
func (d *Dispatcher) Dispatch(ctx context.Context, order *models.Order, salon *models.Salon) {
	logger := logging.FromContext(ctx, d.logger)

	for _, hook := range d.hooks {
		hookCtx, cancel := context.WithTimeout(ctx, d.timeout)
		if err := hook.Notify(hookCtx, order, salon); err != nil {
			logger.Error("notification hook failed",
				"hook", hook.Name(),
				"order_id", order.ID,
				"merchant_order_id", order.MerchantOrderID,
				"error", err,
			)
			if d.metrics != nil {
				d.metrics.NotifyFailures.WithLabelValues(hook.Name()).Inc()
			}
		} else {
			logger.Info("notification hook completed", "hook", hook.Name(), "order_id", order.ID)
		}
		cancel()
	}
}

// HookCount reports how many hooks are enabled.
func (d *Dispatcher) HookCount() int {
	return len(d.hooks)
}
