package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quantamisecode-hub/groona-sub009/internal/handlers"
	"github.com/quantamisecode-hub/groona-sub009/internal/middleware"
	"github.com/quantamisecode-hub/groona-sub009/internal/types"
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
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		events := api.Group("/events", middleware.AuthMiddleware())
		{
			events.POST("", handlers.IngestEvent)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.GET("/unread_count", handlers.GetUnreadCount)
			notifications.POST("/read_all", handlers.MarkAllNotificationsRead)
			notifications.PATCH("/:notification_id/read", handlers.MarkNotificationRead)
			notifications.DELETE("/:notification_id", handlers.DeleteNotification)
		}

		preferences := api.Group("/preferences", middleware.AuthMiddleware())
		{
			preferences.GET("", handlers.GetPreferences)
			preferences.PUT("", handlers.UpdatePreferences)
		}

		tickets := api.Group("/tickets", middleware.AuthMiddleware())
		{
			tickets.POST("", handlers.CreateTicket)
			tickets.GET("", handlers.ListTickets)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.POST("/:project_id/tasks", handlers.CreateTask)
			projects.PUT("/:project_id/tasks/:task_id/assignees", handlers.AssignTask)
		}
	}

	return r
}
