package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
)

func actor(r *http.Request) booking.Actor {
	return booking.Actor{
		UserID: middleware.UserID(r.Context()),
		Role:   model.Role(middleware.Role(r.Context())),
	}
}

// dates arrive as "2006-01-02" from the booking form; RFC 3339 is
// accepted for API clients
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	var day *time.Time
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := parseDate(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date filter")
			return
		}
		day = &d
	}

	apts, err := h.svc.List(r.Context(), actor(r), day)
	if err != nil {
		h.domainError(w, err)
		return
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, apts)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     string `json:"date"`
		Timeslot string `json:"timeslot"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	apt, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), date, req.Timeslot, req.Notes)
	if err != nil {
		h.domainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, apt)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status   *model.Status `json:"status"`
		Timeslot *string       `json:"timeslot"`
		Notes    *string       `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	apt, err := h.svc.Apply(r.Context(), actor(r), r.PathValue("id"), booking.Update{
		Status:   req.Status,
		Timeslot: req.Timeslot,
		Notes:    req.Notes,
	})
	if err != nil {
		h.domainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment updated successfully",
		"appointment": apt,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "server is healthy"})
}
