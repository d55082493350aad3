package db

import "github.com/saloncartapp/saloncart/internal/models"

type Salon = models.Salon
type Order = models.Order
type OrderItem = models.OrderItem
type OrderStatus = models.OrderStatus
type PaymentMethod = models.PaymentMethod
type Product = models.Product
type Admin = models.Admin

const (
	StatusDraft          = models.StatusDraft
	StatusPendingPayment = models.StatusPendingPayment
	StatusPaid           = models.StatusPaid
	StatusProcessing     = models.StatusProcessing
	StatusShipped        = models.StatusShipped
	StatusCompleted      = models.StatusCompleted
	StatusCancelled      = models.StatusCancelled
	StatusReturned       = models.StatusReturned
	StatusPaymentFailed  = models.StatusPaymentFailed
)
