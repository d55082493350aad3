package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/saloncartapp/saloncart/internal/services"
)

type salonRequest struct {
	Name          string `json:"name" validate:"required"`
	Location      string `json:"location" validate:"required"`
	ContactNumber string `json:"contact_number"`
}

// CreateSalon registers a salon and returns its generated credentials and QR
// code. The plaintext password appears in this response only.
func (h *Handlers) CreateSalon(w http.ResponseWriter, r *http.Request) {
	var req salonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.salonService.CreateSalon(r.Context(), services.CreateSalonInput{
		Name:          req.Name,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"salon":    result.Salon,
		"qr_code":  result.QRCode,
		"qr_url":   result.QRURL,
		"username": result.Username,
		"password": result.Password,
	})
}

// GetSalon is public: the customer order page loads it from the QR link.
// The reference is the internal id or, for printed material, the salon code.
func (h *Handlers) GetSalon(w http.ResponseWriter, r *http.Request) {
	salon, err := h.salonService.GetSalon(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "salon": salon})
}

func (h *Handlers) ListSalons(w http.ResponseWriter, r *http.Request) {
	salons, err := h.salonService.ListSalons(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "salons": salons})
}

func (h *Handlers) UpdateSalon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid salon id")
		return
	}

	var req salonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	salon, err := h.salonService.UpdateSalon(r.Context(), id, services.CreateSalonInput{
		Name:          req.Name,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "salon": salon})
}

func (h *Handlers) DeleteSalon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid salon id")
		return
	}

	if err := h.salonService.DeleteSalon(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

type salonLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SalonLogin authenticates a salon dashboard user.
func (h *Handlers) SalonLogin(w http.ResponseWriter, r *http.Request) {
	var req salonLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	salon, err := h.salonService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "salon": salon})
}

// RevealSalonPassword returns the stored credential copy for admin display.
func (h *Handlers) RevealSalonPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid salon id")
		return
	}

	password, err := h.salonService.RevealPassword(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "password": password})
}
