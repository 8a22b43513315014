package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/mirakh/gallery-backend/internal/middleware"
	"github.com/mirakh/gallery-backend/internal/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens in middleware; the dashboard may be served from another
	// origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type OrderFeedController struct {
	hub *websocket.Hub
}

func NewOrderFeedController(hub *websocket.Hub) *OrderFeedController {
	return &OrderFeedController{hub: hub}
}

// Connect upgrades the connection and streams new orders to the admin
// dashboard
// GET /api/v1/admin/orders/feed?token=...
func (ctrl *OrderFeedController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	adminID := middleware.GetAdminID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade order feed connection", err, map[string]interface{}{
			"admin_id": adminID,
		})
		return
	}

	client := websocket.NewClient(ctrl.hub, conn, adminID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
