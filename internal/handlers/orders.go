package handlers

import (
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/saloncartapp/saloncart/internal/models"
	"github.com/saloncartapp/saloncart/internal/payhere"
	"github.com/saloncartapp/saloncart/internal/services"
)

type customerPayload struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	AdditionalPhone string `json:"additional_phone"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
}

func (p customerPayload) info() services.CustomerInfo {
	return services.CustomerInfo{
		Name:            p.Name,
		Phone:           p.Phone,
		AdditionalPhone: p.AdditionalPhone,
		Address:         p.Address,
		City:            p.City,
	}
}

type orderItemPayload struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type createDraftRequest struct {
	SalonID  uuid.UUID       `json:"salon_id" validate:"required"`
	Customer customerPayload `json:"customer" validate:"required"`
}

// CreateDraftOrder reserves a merchant order id and stores the customer
// details before the cart is final.
func (h *Handlers) CreateDraftOrder(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.orderService.CreateDraft(r.Context(), services.DraftInput{
		SalonID:  req.SalonID,
		Customer: req.Customer.info(),
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":           true,
		"order_id":          result.OrderID,
		"merchant_order_id": result.MerchantOrderID,
	})
}

type finalizeOrderRequest struct {
	OrderID       string             `json:"order_id"`
	SalonID       uuid.UUID          `json:"salon_id"`
	Customer      customerPayload    `json:"customer" validate:"required"`
	Items         []orderItemPayload `json:"items" validate:"required,min=1,dive"`
	Total         float64            `json:"total" validate:"required,gt=0"`
	PaymentMethod string             `json:"payment_method" validate:"omitempty,oneof=online cash_on_delivery"`
}

// FinalizeOrder commits the cart. If order_id points at an existing draft it
// is completed in place; otherwise a fresh order is created. Online payments
// get a signed checkout payload back.
func (h *Handlers) FinalizeOrder(w http.ResponseWriter, r *http.Request) {
	var req finalizeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			PriceCents:  toCents(item.Price),
		})
	}

	result, err := h.orderService.Finalize(r.Context(), services.FinalizeInput{
		OrderRef:      req.OrderID,
		SalonID:       req.SalonID,
		Customer:      req.Customer.info(),
		Items:         items,
		TotalCents:    toCents(req.Total),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	payload := map[string]any{
		"success": true,
		"order":   result.Order,
	}
	if result.Checkout != nil {
		payload["checkout"] = result.Checkout
	}
	respondJSON(w, http.StatusOK, payload)
}

// PaymentNotify receives the gateway's server-to-server callback. The gateway
// posts form-encoded fields and retries on non-200, so this endpoint always
// acknowledges; all failure handling happens inside the service.
func (h *Handlers) PaymentNotify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := r.ParseForm(); err != nil {
		logger.Warn("failed to parse payment notification form", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	cb := payhere.Callback{
		MerchantID: r.PostFormValue("merchant_id"),
		OrderID:    r.PostFormValue("order_id"),
		PaymentID:  r.PostFormValue("payment_id"),
		Amount:     r.PostFormValue("payhere_amount"),
		Currency:   r.PostFormValue("payhere_currency"),
		StatusCode: r.PostFormValue("status_code"),
		MD5Sig:     r.PostFormValue("md5sig"),
	}

	if err := h.orderService.HandleGatewayCallback(ctx, cb); err != nil {
		// Logged, not surfaced: a retry storm from the gateway helps nobody.
		logger.Error("failed to process payment notification", "error", err, "order_id", cb.OrderID)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderRef := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), orderRef, models.OrderStatus(req.Status))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	salonID, err := optionalSalonID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid salon_id")
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), salonID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

// CustomerByPhone returns the customer snapshot from the most recent order for
// the given phone number, used to prefill the order form for repeat customers.
func (h *Handlers) CustomerByPhone(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	customer, err := h.orderService.CustomerByPhone(r.Context(), phone)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"customer": map[string]string{
			"name":             customer.Name,
			"phone":            customer.Phone,
			"additional_phone": customer.AdditionalPhone,
			"address":          customer.Address,
			"city":             customer.City,
		},
	})
}

// toCents converts a rupee amount from the wire into integer cents.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func optionalSalonID(r *http.Request) (*uuid.UUID, error) {
	raw := r.URL.Query().Get("salon_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
