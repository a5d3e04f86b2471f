package routes

import (
	"net/http"
	"time"

	"campusnews/handlers"
	"campusnews/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Reminder     *handlers.ReminderHandler
	Device       *handlers.DeviceHandler
	Announcement *handlers.AnnouncementHandler
}

// RegisterReminderRoutes registers the moderator reminder admin endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthModeratorMiddleware())
		api.GET("", hb.Reminder.ListRemindersHandler)
		api.GET("/:id", hb.Reminder.GetReminderHandler)
		api.POST("", hb.Reminder.CreateReminderHandler)
		api.PUT("/:id", hb.Reminder.UpdateReminderHandler)
		api.DELETE("/:id", hb.Reminder.DeleteReminderHandler)
	}
}

// RegisterChannelRoutes registers device registration and announcement
// publishing per channel.
func RegisterChannelRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/channels")
	{
		// Device registration and the news feed are open to clients.
		api.POST("/:id/devices", hb.Device.SubscribeDeviceHandler)
		api.DELETE("/:id/devices", hb.Device.UnsubscribeDeviceHandler)
		api.GET("/:id/announcements", hb.Announcement.ListAnnouncementsHandler)

		// Publishing requires moderator auth.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthModeratorMiddleware())
		protected.POST("/:id/announcements", hb.Announcement.CreateAnnouncementHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires CORS and every route group.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterReminderRoutes(r, hb)
	RegisterChannelRoutes(r, hb)
}
