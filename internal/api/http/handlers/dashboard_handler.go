package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/dashboard"
)

// DashboardHandler upgrades browser connections onto the live dashboard feed.
type DashboardHandler struct {
	hub *dashboard.Hub
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(hub *dashboard.Hub) *DashboardHandler {
	return &DashboardHandler{hub: hub}
}

// Upgrade handles GET /ws/dashboard. The feed is server-to-client only.
func (h *DashboardHandler) Upgrade() fiber.Handler {
	serve := websocket.New(func(conn *websocket.Conn) {
		h.hub.ServeClient(conn)
	})
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return serve(c)
	}
}
