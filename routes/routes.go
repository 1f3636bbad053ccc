package routes

import (
	"time"

	"vetchat/config"
	"vetchat/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP endpoints onto the router.
func RegisterRoutes(r *gin.Engine, chatHandler *handlers.ChatHandler, apptHandler *handlers.AppointmentHandler) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origin := config.AppConfig.CORSOrigin; origin == "" || origin == "*" {
		// The embed loader can run on any customer site.
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = []string{origin}
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", handlers.HealthCheck)

	chatAPI := r.Group("/api/chat")
	{
		chatAPI.POST("/message", chatHandler.SendMessage)
		chatAPI.GET("/history/:sessionId", chatHandler.GetHistory)
	}

	apptAPI := r.Group("/api/appointments")
	{
		apptAPI.POST("/book", apptHandler.BookAppointment)
		apptAPI.GET("", apptHandler.ListAppointments)
		apptAPI.GET("/:id", apptHandler.GetAppointment)
		apptAPI.PATCH("/:id/status", apptHandler.UpdateAppointmentStatus)
	}
}
