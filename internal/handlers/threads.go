package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"gorm.io/gorm"
)

const threadListCacheKey = "threads:list"

type CreateThreadInput struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content"`
	PostType    string   `json:"postType"`
	PollOptions []string `json:"pollOptions"`
}

// CreateThread POST /threads
func CreateThread(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input CreateThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	postType := models.PostType(input.PostType)
	if postType == "" {
		postType = models.PostTypeThread
	}

	if postType == models.PostTypePoll && len(input.PollOptions) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 poll options are required"})
		return
	}

	thread := models.Thread{
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		PostType:    postType,
		CreatedByID: userID,
	}

	if postType == models.PostTypePoll {
		for i, text := range input.PollOptions {
			thread.PollOptions = append(thread.PollOptions, models.PollOption{
				Position: i,
				Text:     strings.TrimSpace(text),
				Votes:    models.ActorSet{},
			})
		}
	}

	if err := database.DB.Create(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create thread"})
		return
	}

	database.DB.Preload("CreatedBy").Preload("PollOptions").First(&thread, "id = ?", thread.ID)

	if database.Redis != nil {
		database.CacheInvalidate(threadListCacheKey + "*")
	}

	// Fan-out to active users runs off the request path; a failed
	// notification never fails the creation.
	go notifier.NotifyNewThread(&thread)

	c.JSON(http.StatusCreated, gin.H{"thread": thread})
}

// GetThreads GET /threads
func GetThreads(c *gin.Context) {
	var threads []models.Thread

	if database.Redis != nil {
		if err := database.CacheGet(threadListCacheKey, &threads); err == nil {
			c.JSON(http.StatusOK, gin.H{"threads": threads})
			return
		}
	}

	if err := database.DB.Preload("CreatedBy").Preload("PollOptions").
		Order("created_at desc").Limit(50).Find(&threads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch threads"})
		return
	}

	if database.Redis != nil {
		database.CacheSet(threadListCacheKey, threads, 30*time.Second)
	}

	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// GetThread GET /threads/:id
func GetThread(c *gin.Context) {
	var thread models.Thread
	if err := database.DB.Preload("CreatedBy").Preload("PollOptions").
		First(&thread, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread": thread})
}

// ToggleThreadLike POST /threads/:id/like
func ToggleThreadLike(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var thread models.Thread
	if err := database.DB.First(&thread, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	liked := thread.ToggleLike(userID)

	if err := database.DB.Model(&thread).Select("likes", "downvotes").Updates(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update thread like"})
		return
	}

	if liked {
		notifier.NotifyThreadLiked(&thread, userID)
	}

	message := "Thread unliked"
	if liked {
		message = "Thread liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"likesCount": thread.Likes.Count(),
		"isLiked":    liked,
	})
}

// ToggleThreadDownvote POST /threads/:id/downvote
func ToggleThreadDownvote(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var thread models.Thread
	if err := database.DB.First(&thread, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	downvoted := thread.ToggleDownvote(userID)

	if err := database.DB.Model(&thread).Select("likes", "downvotes").Updates(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update thread downvote"})
		return
	}

	message := "Thread undownvoted"
	if downvoted {
		message = "Thread downvoted"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"downvotesCount": thread.Downvotes.Count(),
		"isDownvoted":    downvoted,
	})
}

// VoteOnPoll POST /threads/:id/poll-vote
func VoteOnPoll(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		OptionIndex *int `json:"optionIndex" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "optionIndex required"})
		return
	}

	var thread models.Thread
	if err := database.DB.Preload("PollOptions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&thread, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if thread.PostType != models.PostTypePoll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This thread is not a poll"})
		return
	}

	index := *input.OptionIndex
	if index < 0 || index >= len(thread.PollOptions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid poll option"})
		return
	}

	voted := thread.VoteOption(index, userID)

	// Exclusivity may touch several option rows; save them all.
	for i := range thread.PollOptions {
		if err := database.DB.Model(&thread.PollOptions[i]).
			Update("votes", thread.PollOptions[i].Votes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update poll vote"})
			return
		}
	}

	message := "Vote removed"
	if voted {
		message = "Vote recorded"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"pollOptions": thread.PollOptions,
		"totalVotes":  thread.TotalVotes(),
	})
}

// GetLikedThreads GET /threads/liked/:userId
func GetLikedThreads(c *gin.Context) {
	targetID := c.Param("userId")

	var threads []models.Thread
	if err := database.DB.Preload("CreatedBy").
		Where("likes LIKE ?", "%\""+targetID+"\"%").
		Order("created_at desc").Find(&threads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch threads"})
		return
	}

	// The LIKE filter is a coarse prefilter over the JSON column; confirm
	// membership before returning.
	liked := make([]models.Thread, 0, len(threads))
	for _, t := range threads {
		if t.Likes.Contains(targetID) {
			liked = append(liked, t)
		}
	}

	c.JSON(http.StatusOK, gin.H{"threads": liked})
}
