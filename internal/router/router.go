package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mindsender/mindsender/internal/assistant"
	"github.com/mindsender/mindsender/internal/handlers"
	"github.com/mindsender/mindsender/internal/middleware"
	"github.com/mindsender/mindsender/internal/quota"
	"github.com/mindsender/mindsender/internal/types"
)

// Dependencies holds the request-scoped services the router cannot reach
// through package globals. Assistant may be nil when no LLM key is set.
type Dependencies struct {
	Assistant *assistant.Assistant
	Quota     *quota.Limiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

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
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", handlers.CreateTask)
			tasks.GET("", handlers.ListTasks)
			tasks.PATCH("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)
		}

		friends := api.Group("/friends", middleware.AuthMiddleware())
		{
			friends.GET("", handlers.ListFriends)
			friends.POST("/requests", handlers.SendFriendRequest)
			friends.GET("/requests", handlers.ListFriendRequests)
			friends.POST("/requests/:request_id/accept", handlers.AcceptFriendRequest)
			friends.POST("/requests/:request_id/reject", handlers.RejectFriendRequest)
		}

		messages := api.Group("/messages", middleware.AuthMiddleware())
		{
			messages.POST("/:user_id", handlers.SendMessage)
			messages.GET("/:user_id", handlers.ListMessages)
		}

		api.POST("/assistant/chat", middleware.AuthMiddleware(), handlers.AssistantChat(deps.Assistant, deps.Quota))

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/users", handlers.AdminListUsers)
			admin.PATCH("/users/:user_id", handlers.AdminUpdateUser)
		}
	}

	return r
}
