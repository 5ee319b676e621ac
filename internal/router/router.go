package router

import (
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/handlers"
	"github.com/alertdeck-dev/alertdeck/internal/middleware"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:user_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", handlers.Logout)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware())
		{
			admin.POST("/teams", handlers.CreateTeam)
			admin.GET("/teams", handlers.ListTeams)

			admin.POST("/users", handlers.CreateManagedUser)
			admin.GET("/users", handlers.ListUsers)

			admin.POST("/alerts", handlers.CreateAlert)
			admin.GET("/alerts", handlers.ListAlerts)
			admin.GET("/alerts/:alert_id", handlers.GetAlert)
			admin.PUT("/alerts/:alert_id", handlers.UpdateAlert)
			admin.DELETE("/alerts/:alert_id", handlers.ArchiveAlert)

			// Manual trigger; the scheduler covers the periodic case
			admin.POST("/alerts/trigger-reminders", handlers.TriggerReminders)

			admin.GET("/analytics/dashboard", handlers.GetAnalyticsDashboard)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("/:user_id/alerts", handlers.GetUserAlerts)
			users.POST("/:user_id/alerts/:alert_id/read", handlers.MarkAlertRead)
			users.POST("/:user_id/alerts/:alert_id/snooze", handlers.SnoozeAlert)
		}
	}

	return r
}
