package handler

import (
	"net/http"

	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/notify"
)

// Routes assembles the full HTTP surface: auth endpoints (rate limited),
// appointment endpoints (bearer auth), the health check, and the
// WebSocket upgrade for the real-time channel.
func (h *Handler) Routes(hub *notify.Hub, rl *middleware.RateLimiter, allowedOrigin string) http.Handler {
	authed := middleware.Auth(h.secret)

	mux := http.NewServeMux()
	mux.Handle("POST /auth/register", rl.Limit(http.HandlerFunc(h.Register)))
	mux.Handle("POST /auth/login", rl.Limit(http.HandlerFunc(h.Login)))
	mux.Handle("GET /appointments", authed(http.HandlerFunc(h.ListAppointments)))
	mux.Handle("POST /appointments", authed(http.HandlerFunc(h.CreateAppointment)))
	mux.Handle("PATCH /appointments/{id}", authed(http.HandlerFunc(h.UpdateAppointment)))
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ws", hub.ServeWS(allowedOrigin))

	return middleware.CORS(allowedOrigin)(mux)
}
