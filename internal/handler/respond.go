package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"appointment-booking-api/internal/booking"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// domainError maps the booking error taxonomy onto HTTP status codes.
// Nothing here is allowed to escalate beyond the request.
func (h *Handler) domainError(w http.ResponseWriter, err error) {
	switch {
	case booking.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrConflict):
		writeError(w, http.StatusBadRequest, "the selected timeslot is already booked")
	case errors.Is(err, booking.ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found")
	case errors.Is(err, booking.ErrForbidden):
		writeError(w, http.StatusForbidden, "only admins can confirm appointments")
	default:
		h.log.Error("store error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
