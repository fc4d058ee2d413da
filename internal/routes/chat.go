package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/handlers"
	"github.com/lakshmanbhukya/threadly-backend/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/conversations", handlers.GetConversations)
		chat.POST("/conversations", handlers.CreateConversation)
		chat.GET("/conversations/:id/messages", handlers.GetMessages)
		chat.POST("/conversations/:id/messages", middleware.ChatRateLimit(), handlers.SendMessage)
		chat.PUT("/conversations/:id/read", handlers.MarkConversationRead)
		chat.GET("/users/online", handlers.GetOnlineUsers)
	}
}
