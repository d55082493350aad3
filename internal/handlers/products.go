package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/saloncartapp/saloncart/internal/models"
)

type productRequest struct {
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	DiscountType  string  `json:"discount_type" validate:"omitempty,oneof=none percentage amount"`
	DiscountValue float64 `json:"discount_value" validate:"gte=0"`
	IsActive      *bool   `json:"is_active"`
}

func (req productRequest) apply(product *models.Product) {
	product.Name = req.Name
	product.PriceCents = toCents(req.Price)
	product.DiscountType = models.DiscountType(req.DiscountType)
	if product.DiscountType == "" {
		product.DiscountType = models.DiscountNone
	}
	if product.DiscountType == models.DiscountAmount {
		product.DiscountValue = toCents(req.DiscountValue)
	} else {
		product.DiscountValue = int64(req.DiscountValue)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{IsActive: true}
	req.apply(product)

	if err := h.productService.CreateProduct(r.Context(), product); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "product": product})
}

// ListProducts serves the catalog. Without authentication only active
// products are returned; the admin catalog passes all=true.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	products, err := h.productService.ListProducts(r.Context(), activeOnly)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "products": products})
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{ID: id, IsActive: true}
	req.apply(product)

	if err := h.productService.UpdateProduct(r.Context(), product); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
}
