package routes

import (
	"net/http"

	"coachly/handlers"
	"coachly/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes mounts the notification tray endpoints. All of
// them require an authenticated recipient.
func RegisterNotificationRoutes(router *gin.Engine, h *handlers.NotificationHandler) {
	notifications := router.Group("/api/notifications")
	notifications.Use(middleware.JWTAuthMiddleware())
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.POST("/read-batch", h.MarkReadBatch)
		notifications.PATCH("/:id/status", h.UpdateStatus)
		notifications.POST("/:id/actioned", h.MarkActioned)
		notifications.POST("/trash-batch", h.TrashBatch)
		notifications.DELETE("/trash", h.EmptyTrash)
	}
}

// RegisterRealtimeRoutes mounts the websocket endpoint notification trays
// subscribe to.
func RegisterRealtimeRoutes(router *gin.Engine, h *handlers.WSHandler) {
	ws := router.Group("/api/realtime")
	ws.Use(middleware.JWTAuthMiddleware())
	{
		ws.GET("/ws", h.Connect)
	}
}

// RegisterWebhookRoutes mounts payment provider callbacks. Stripe signs its
// requests, so these stay outside the JWT middleware.
func RegisterWebhookRoutes(router *gin.Engine, h *handlers.StripeWebhookHandler) {
	webhooks := router.Group("/api/webhooks")
	{
		webhooks.POST("/stripe", h.HandleWebhook)
	}
}

// RegisterHealthRoutes mounts the liveness probe.
func RegisterHealthRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
