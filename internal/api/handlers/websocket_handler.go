package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

// Maximum wait for any client message before the connection is dropped.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub      *socket.Hub
	Sessions service.SessionService
	Logger   *zap.Logger
}

// ServeWs upgrades the connection and subscribes it to mutation events.
// The session token is passed as a query parameter because browsers
// cannot set headers on WebSocket requests.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	result, err := h.Sessions.Validate(c.Request.Context(), token)
	if err != nil || !result.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("failed to upgrade websocket connection", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	h.Hub.Register(connID, conn)
	defer func() {
		h.Hub.Unregister(connID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The client never sends application messages; the read loop only
	// notices disconnects and ping traffic.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Logger.Warn("unexpected websocket close", zap.String("connId", connID), zap.Error(err))
			}
			break
		}
	}
}
