package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/handlers"
	"github.com/lakshmanbhukya/threadly-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
