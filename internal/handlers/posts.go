package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
)

// CreatePost POST /posts
func CreatePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		Content     string  `json:"content" binding:"required"`
		ThreadID    *string `json:"threadId"`
		IsAnonymous bool    `json:"isAnonymous"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	var thread *models.Thread
	if input.ThreadID != nil && *input.ThreadID != "" {
		thread = &models.Thread{}
		if err := database.DB.First(thread, "id = ?", *input.ThreadID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
			return
		}
	}

	post := models.Post{
		Content:     strings.TrimSpace(input.Content),
		ThreadID:    input.ThreadID,
		CreatedByID: userID,
		IsAnonymous: input.IsAnonymous,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("CreatedBy").First(&post, "id = ?", post.ID)

	// Owner notification is skipped by the dispatcher when the poster owns
	// the thread.
	if thread != nil {
		notifier.NotifyNewPost(thread, &post)
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPostsByThread GET /posts/thread/:threadId
func GetPostsByThread(c *gin.Context) {
	var posts []models.Post
	if err := database.DB.Preload("CreatedBy").
		Where("thread_id = ?", c.Param("threadId")).
		Order("created_at asc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// TogglePostLike POST /posts/:id/like
func TogglePostLike(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var post models.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	liked := post.ToggleLike(userID)

	if err := database.DB.Model(&post).Update("likes", post.Likes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like"})
		return
	}

	if liked {
		notifier.NotifyPostLiked(&post, userID)
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"likesCount": post.Likes.Count(),
		"isLiked":    liked,
	})
}
