package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saloncartapp/saloncart/internal/cache"
	"github.com/saloncartapp/saloncart/internal/db"
	"github.com/saloncartapp/saloncart/internal/logging"
	"github.com/saloncartapp/saloncart/internal/models"
	"github.com/saloncartapp/saloncart/internal/observability"
	"github.com/saloncartapp/saloncart/internal/payhere"
)

// callbackDedupeTTL is how long gateway payment ids are remembered to
// short-circuit replayed notifications before they reach the store.
const callbackDedupeTTL = 24 * time.Hour

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByMerchantOrderID(ctx context.Context, merchantOrderID string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, order *models.Order) error
	LatestByCustomerPhone(ctx context.Context, phone string) (*models.Order, error)
	List(ctx context.Context, salonID *uuid.UUID) ([]*models.Order, error)
}

type salonGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Salon, error)
}

type sequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}

type orderNotifier interface {
	Dispatch(ctx context.Context, order *models.Order, salon *models.Salon)
}

// OrderService owns the draft/finalize/pay/notify/status-update workflow.
type OrderService struct {
	salons     salonGetter
	orders     orderStore
	counters   sequenceAllocator
	dispatcher orderNotifier
	dedupe     cache.Provider
	gateway    payhere.Config
	metrics    *observability.Metrics
	logger     *slog.Logger
}

func NewOrderService(
	salons salonGetter,
	orders orderStore,
	counters sequenceAllocator,
	dispatcher orderNotifier,
	dedupe cache.Provider,
	gateway payhere.Config,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		salons:     salons,
		orders:     orders,
		counters:   counters,
		dispatcher: dispatcher,
		dedupe:     dedupe,
		gateway:    gateway,
		metrics:    metrics,
		logger:     logger,
	}
}

func (s *OrderService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type CustomerInfo struct {
	Name            string
	Phone           string
	AdditionalPhone string
	Address         string
	City            string
}

type DraftInput struct {
	SalonID  uuid.UUID
	Customer CustomerInfo
}

type DraftResult struct {
	OrderID         uuid.UUID
	MerchantOrderID string
}

// CreateDraft persists an order shell before checkout details are known.
// The merchant order id is allocated up front so the payment flow can refer
// to it even if finalize arrives much later.
func (s *OrderService) CreateDraft(ctx context.Context, input DraftInput) (*DraftResult, error) {
	salon, err := s.salons.GetByID(ctx, input.SalonID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("failed to look up salon: %w", err)
	}

	merchantOrderID, err := s.nextMerchantOrderID(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		MerchantOrderID: merchantOrderID,
		SalonID:         salon.ID,
		SalonName:       salon.Name,
		CustomerName:    input.Customer.Name,
		CustomerPhone:   input.Customer.Phone,
		AdditionalPhone: input.Customer.AdditionalPhone,
		Address:         input.Customer.Address,
		City:            input.Customer.City,
		Items:           []models.OrderItem{},
		TotalCents:      0,
		PaymentMethod:   models.PaymentOnline,
		Status:          models.StatusDraft,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create draft order: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.WithLabelValues(string(models.StatusDraft)).Inc()
	}
	s.loggerFromContext(ctx).Info("draft order created",
		"order_id", order.ID, "merchant_order_id", merchantOrderID, "salon_id", salon.ID)

	return &DraftResult{OrderID: order.ID, MerchantOrderID: merchantOrderID}, nil
}

type FinalizeInput struct {
	// OrderRef optionally points at an existing draft. An absent or
	// unresolvable reference is not an error: it means create fresh.
	OrderRef      string
	SalonID       uuid.UUID
	Customer      CustomerInfo
	Items         []models.OrderItem
	TotalCents    int64
	PaymentMethod models.PaymentMethod
}

type FinalizeResult struct {
	Order *models.Order
	// Checkout is set only for online payment.
	Checkout *payhere.Checkout
}

// Finalize commits line items and total to an order and moves it to
// pending_payment. Items and total are trusted as submitted; there is no
// server-side reprice against the catalog (known limitation, kept on
// purpose for parity with the upstream flow).
func (s *OrderService) Finalize(ctx context.Context, input FinalizeInput) (*FinalizeResult, error) {
	logger := s.loggerFromContext(ctx)

	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentOnline
	}

	order, err := s.resolveExisting(ctx, input.OrderRef)
	if err != nil {
		// A store failure is not "no draft": creating fresh here would
		// duplicate the order once the store recovers.
		return nil, err
	}
	if order != nil {
		if order.MerchantOrderID == "" {
			merchantOrderID, err := s.nextMerchantOrderID(ctx)
			if err != nil {
				return nil, err
			}
			order.MerchantOrderID = merchantOrderID
		}
		order.CustomerName = input.Customer.Name
		order.CustomerPhone = input.Customer.Phone
		order.AdditionalPhone = input.Customer.AdditionalPhone
		order.Address = input.Customer.Address
		order.City = input.Customer.City
		order.Items = input.Items
		order.TotalCents = input.TotalCents
		order.PaymentMethod = input.PaymentMethod
		order.Status = models.StatusPendingPayment

		if err := s.orders.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to finalize order: %w", err)
		}
		logger.Info("draft order finalized",
			"order_id", order.ID, "merchant_order_id", order.MerchantOrderID,
			"total_cents", order.TotalCents, "payment_method", order.PaymentMethod)
	} else {
		salon, err := s.salons.GetByID(ctx, input.SalonID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrSalonNotFound
			}
			return nil, fmt.Errorf("failed to look up salon: %w", err)
		}

		merchantOrderID, err := s.nextMerchantOrderID(ctx)
		if err != nil {
			return nil, err
		}

		order = &models.Order{
			MerchantOrderID: merchantOrderID,
			SalonID:         salon.ID,
			SalonName:       salon.Name,
			CustomerName:    input.Customer.Name,
			CustomerPhone:   input.Customer.Phone,
			AdditionalPhone: input.Customer.AdditionalPhone,
			Address:         input.Customer.Address,
			City:            input.Customer.City,
			Items:           input.Items,
			TotalCents:      input.TotalCents,
			PaymentMethod:   input.PaymentMethod,
			Status:          models.StatusPendingPayment,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		logger.Info("order created at finalize",
			"order_id", order.ID, "merchant_order_id", order.MerchantOrderID,
			"total_cents", order.TotalCents, "payment_method", order.PaymentMethod)
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.WithLabelValues(string(models.StatusPendingPayment)).Inc()
	}

	result := &FinalizeResult{Order: order}
	if order.PaymentMethod == models.PaymentOnline {
		checkout := payhere.BuildCheckout(s.gateway, payhere.CheckoutRequest{
			OrderID:       order.MerchantOrderID,
			ItemsTitle:    "Salon Order",
			AmountCents:   order.TotalCents,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			Email:         "customer@example.com",
			Address:       order.Address,
			City:          order.City,
			Country:       "Sri Lanka",
		})
		result.Checkout = &checkout
	}
	return result, nil
}

// HandleGatewayCallback processes the asynchronous server-to-server payment
// notification. Delivery is at-least-once; duplicates must be no-ops after
// the first. Unverified or non-success callbacks are absorbed: logged,
// acknowledged upstream, no state change.
func (s *OrderService) HandleGatewayCallback(ctx context.Context, cb payhere.Callback) error {
	logger := s.loggerFromContext(ctx)

	verified, statusCode := payhere.VerifyCallback(cb, s.gateway.MerchantSecret)
	if !verified {
		s.countCallback("unverified")
		logger.Warn("payment callback signature mismatch",
			"order_id", cb.OrderID, "payment_id", cb.PaymentID)
		return nil
	}
	if statusCode != payhere.StatusSuccess {
		// A non-success code currently leaves the order untouched. Whether it
		// should mark payment_failed is an open product question.
		s.countCallback("ignored_status")
		logger.Info("payment callback with non-success status",
			"order_id", cb.OrderID, "status_code", statusCode)
		return nil
	}

	if s.alreadySeen(ctx, cb.PaymentID) {
		s.countCallback("duplicate")
		logger.Info("payment callback already processed", "payment_id", cb.PaymentID)
		return nil
	}

	order, err := s.resolveByMerchantThenID(ctx, cb.OrderID)
	if err != nil {
		s.countCallback("error")
		return err
	}
	if order == nil {
		s.countCallback("order_missing")
		logger.Warn("payment callback for unknown order", "order_id", cb.OrderID)
		return nil
	}

	transitioned, err := s.orders.MarkPaid(ctx, order.ID)
	if err != nil {
		s.countCallback("error")
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if !transitioned {
		s.countCallback("duplicate")
		logger.Info("order already paid, skipping notifications", "order_id", order.ID)
		s.rememberCallback(ctx, cb.PaymentID)
		return nil
	}

	s.countCallback("paid")
	if s.metrics != nil {
		s.metrics.PaymentsMarked.Inc()
	}
	order.Status = models.StatusPaid
	logger.Info("order marked paid",
		"order_id", order.ID, "merchant_order_id", order.MerchantOrderID, "payment_id", cb.PaymentID)

	if s.dispatcher != nil {
		salon, salonErr := s.salons.GetByID(ctx, order.SalonID)
		if salonErr != nil {
			logger.Error("failed to load salon for notifications", "error", salonErr, "salon_id", order.SalonID)
			salon = &models.Salon{ID: order.SalonID, Name: order.SalonName}
		}
		s.dispatcher.Dispatch(ctx, order, salon)
	}

	s.rememberCallback(ctx, cb.PaymentID)
	return nil
}

// UpdateStatus sets any status on any order; the transition graph is
// deliberately unvalidated. Returned/cancelled statuses also stamp their
// dedicated timestamps.
func (s *OrderService) UpdateStatus(ctx context.Context, orderRef string, status models.OrderStatus) (*models.Order, error) {
	if !status.IsKnown() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	order, err := s.resolveExisting(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if order == nil {
		// resolveExisting tries internal id first; fall back to merchant id.
		order, err = s.resolveByMerchantThenID(ctx, orderRef)
		if err != nil {
			return nil, err
		}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now().UTC()
	order.Status = status
	order.StatusDate = now
	switch status {
	case models.StatusReturned:
		order.ReturnedAt = &now
	case models.StatusCancelled:
		order.CancelledAt = &now
	}
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.loggerFromContext(ctx).Info("order status updated",
		"order_id", order.ID, "status", order.Status)
	return order, nil
}

// CustomerByPhone returns the customer snapshot from the most recent order
// placed with the given phone number.
func (s *OrderService) CustomerByPhone(ctx context.Context, phone string) (*CustomerInfo, error) {
	order, err := s.orders.LatestByCustomerPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	return &CustomerInfo{
		Name:            order.CustomerName,
		Phone:           order.CustomerPhone,
		AdditionalPhone: order.AdditionalPhone,
		Address:         order.Address,
		City:            order.City,
	}, nil
}

// ListOrders returns orders newest first, optionally filtered by salon.
func (s *OrderService) ListOrders(ctx context.Context, salonID *uuid.UUID) ([]*models.Order, error) {
	orders, err := s.orders.List(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) nextMerchantOrderID(ctx context.Context) (string, error) {
	seq, err := s.counters.Next(ctx, db.OrderIDCounter)
	if err != nil {
		// Never fabricate an id when the allocator is unavailable.
		return "", fmt.Errorf("failed to allocate merchant order id: %w", err)
	}
	return strconv.FormatInt(seq, 10), nil
}

// resolveExisting looks up an order by internal id. A blank or malformed
// reference, or a miss, yields nil; only a store failure is an error.
func (s *OrderService) resolveExisting(ctx context.Context, ref string) (*models.Order, error) {
	if ref == "" {
		return nil, nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, nil
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	return order, nil
}

// resolveByMerchantThenID is the callback-side lookup: merchant order id
// first, internal id as a legacy fallback. A miss on both yields nil; a
// store failure is an error so callers do not mistake an outage for an
// unknown order.
func (s *OrderService) resolveByMerchantThenID(ctx context.Context, ref string) (*models.Order, error) {
	if ref == "" {
		return nil, nil
	}
	order, err := s.orders.GetByMerchantOrderID(ctx, ref)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		order, err = s.orders.GetByID(ctx, id)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to look up order: %w", err)
		}
	}
	return nil, nil
}

func (s *OrderService) alreadySeen(ctx context.Context, paymentID string) bool {
	if s.dedupe == nil || paymentID == "" {
		return false
	}
	_, err := s.dedupe.Get(ctx, cache.CallbackKey("payhere", paymentID))
	return err == nil
}

func (s *OrderService) rememberCallback(ctx context.Context, paymentID string) {
	if s.dedupe == nil || paymentID == "" {
		return
	}
	key := cache.CallbackKey("payhere", paymentID)
	if err := s.dedupe.Set(ctx, key, "processed", callbackDedupeTTL); err != nil {
		s.loggerFromContext(ctx).Warn("failed to record callback in cache", "error", err)
	}
}

func (s *OrderService) countCallback(outcome string) {
	if s.metrics != nil {
		s.metrics.CallbacksTotal.WithLabelValues(outcome).Inc()
	}
}
