package handlers

import "net/http"

// SalonPerformance serves per-salon order, revenue and return/cancel counts.
// An optional salon_id query restricts the report to one salon.
func (h *Handlers) SalonPerformance(w http.ResponseWriter, r *http.Request) {
	salonID, err := optionalSalonID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid salon_id")
		return
	}

	stats, err := h.analyticsService.SalonPerformance(r.Context(), salonID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "salons": stats})
}

// ItemPerformance serves sold quantity and revenue per product.
func (h *Handlers) ItemPerformance(w http.ResponseWriter, r *http.Request) {
	salonID, err := optionalSalonID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid salon_id")
		return
	}

	stats, err := h.analyticsService.ItemPerformance(r.Context(), salonID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "items": stats})
}
