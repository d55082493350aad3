package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusDraft          OrderStatus = "draft"
	StatusPendingPayment OrderStatus = "pending_payment"
	StatusPaid           OrderStatus = "paid"
	StatusProcessing     OrderStatus = "processing"
	StatusShipped        OrderStatus = "shipped"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
	StatusReturned       OrderStatus = "returned"
	StatusPaymentFailed  OrderStatus = "payment_failed"
)

// IsKnown reports whether the status is one of the defined lifecycle states.
func (s OrderStatus) IsKnown() bool {
	switch s {
	case StatusDraft, StatusPendingPayment, StatusPaid, StatusProcessing,
		StatusShipped, StatusCompleted, StatusCancelled, StatusReturned,
		StatusPaymentFailed:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentOnline         PaymentMethod = "online"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// OrderItem is a snapshot of a product at finalize time. Name and unit price
// are copied, never re-read from the catalog afterwards.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"price_cents"`
}

type Order struct {
	ID              uuid.UUID     `json:"id"`
	MerchantOrderID string        `json:"merchant_order_id"`
	SalonID         uuid.UUID     `json:"salon_id"`
	SalonName       string        `json:"salon_name"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	AdditionalPhone string        `json:"additional_phone,omitempty"`
	Address         string        `json:"address"`
	City            string        `json:"city"`
	Items           []OrderItem   `json:"items"`
	TotalCents      int64         `json:"total_cents"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Status          OrderStatus   `json:"status"`
	StatusDate      time.Time     `json:"status_date"`
	ReturnedAt      *time.Time    `json:"returned_at,omitempty"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// ItemsSummary renders the line items as a single human-readable string for
// spreadsheet rows and chat messages.
func (o *Order) ItemsSummary() string {
	var b strings.Builder
	for i, item := range o.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (x%d)", item.ProductName, item.Quantity)
	}
	return b.String()
}
