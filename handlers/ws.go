package handlers

import (
	"net/http"
	"time"

	"coachly/middleware"
	"coachly/services/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades authenticated clients to a websocket and registers
// them on the realtime hub so notification events reach open trays.
type WSHandler struct {
	Hub    *realtime.Hub
	Logger *zap.Logger
}

func NewWSHandler(hub *realtime.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{Hub: hub, Logger: logger}
}

// Connect upgrades the request and keeps the connection registered until
// the client goes away. Inbound frames only refresh liveness.
func (h *WSHandler) Connect(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("ws upgrade failed", zap.String("user", userID), zap.Error(err))
		return
	}

	wsConn := h.Hub.Add(userID, conn)

	conn.SetPongHandler(func(string) error {
		h.Hub.Touch(wsConn)
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Minute))
		return nil
	})
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Minute))

	go func() {
		defer h.Hub.Remove(wsConn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			h.Hub.Touch(wsConn)
		}
	}()
}
