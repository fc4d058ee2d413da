package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
)

// CreateComment POST /comments
func CreateComment(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		Content string `json:"content" binding:"required"`
		PostID  string `json:"postId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content and postId required"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, "id = ?", input.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		Content:     strings.TrimSpace(input.Content),
		PostID:      post.ID,
		CreatedByID: userID,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Preload("CreatedBy").First(&comment, "id = ?", comment.ID)

	notifier.NotifyNewComment(&post, &comment)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetCommentsByPost GET /comments/post/:postId
func GetCommentsByPost(c *gin.Context) {
	var comments []models.Comment
	if err := database.DB.Preload("CreatedBy").
		Where("post_id = ?", c.Param("postId")).
		Order("created_at asc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ToggleCommentLike POST /comments/:id/like
func ToggleCommentLike(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	liked := comment.ToggleLike(userID)

	if err := database.DB.Model(&comment).Update("likes", comment.Likes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like"})
		return
	}

	if liked {
		notifier.NotifyCommentLiked(&comment, userID)
	}

	message := "Comment unliked"
	if liked {
		message = "Comment liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"likesCount": comment.Likes.Count(),
		"isLiked":    liked,
	})
}
