package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/handlers"
	"github.com/lakshmanbhukya/threadly-backend/internal/middleware"
)

func RegisterPostRoutes(r gin.IRouter) {
	posts := r.Group("/posts")
	{
		posts.GET("/thread/:threadId", handlers.GetPostsByThread)

		authed := posts.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("", handlers.CreatePost)
			authed.POST("/:id/like", handlers.TogglePostLike)
		}
	}
}

func RegisterCommentRoutes(r gin.IRouter) {
	comments := r.Group("/comments")
	{
		comments.GET("/post/:postId", handlers.GetCommentsByPost)

		authed := comments.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("", handlers.CreateComment)
			authed.POST("/:id/like", handlers.ToggleCommentLike)
		}
	}
}
