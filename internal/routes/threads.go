package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/handlers"
	"github.com/lakshmanbhukya/threadly-backend/internal/middleware"
)

func RegisterThreadRoutes(r gin.IRouter) {
	threads := r.Group("/threads")
	{
		threads.GET("", handlers.GetThreads)
		threads.GET("/:id", handlers.GetThread)
		threads.GET("/liked/:userId", handlers.GetLikedThreads)

		authed := threads.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("", handlers.CreateThread)
			authed.POST("/:id/like", handlers.ToggleThreadLike)
			authed.POST("/:id/downvote", handlers.ToggleThreadDownvote)
			authed.POST("/:id/poll-vote", handlers.VoteOnPoll)
		}
	}
}
