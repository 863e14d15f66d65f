package notify

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
)

type joinMessage struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// ServeWS upgrades the connection and registers it with the hub once the
// client announces its identity and role in a join message.
func (h *Hub) ServeWS(allowedOrigin string) http.HandlerFunc {
	up := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		var join joinMessage
		if err := ws.ReadJSON(&join); err != nil || join.UserID == "" || join.Role == "" {
			h.log.Warn("websocket join rejected", zap.Error(err))
			ws.Close()
			return
		}

		cl := h.join(join.UserID, join.Role == string(model.RoleAdmin), ws)
		h.log.Info("websocket connected",
			zap.String("user_id", join.UserID), zap.String("role", join.Role))

		// the read loop only detects disconnects; inbound frames after the
		// join message are ignored
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		h.leave(cl)
		ws.Close()
		h.log.Info("websocket disconnected", zap.String("user_id", join.UserID))
	}
}
