package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/lakshmanbhukya/threadly-backend/internal/realtime"
	"github.com/lakshmanbhukya/threadly-backend/internal/services"
	"github.com/lakshmanbhukya/threadly-backend/pkg/errors"
	"github.com/lakshmanbhukya/threadly-backend/pkg/logger"
)

// respondServiceError maps store errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// GetConversations GET /chat/conversations
func GetConversations(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	conversations, err := services.ListConversations(userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch conversations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// CreateConversation POST /chat/conversations
func CreateConversation(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var req struct {
		ParticipantID string `json:"participantId" binding:"required"`
		Type          string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participantId required"})
		return
	}

	if req.Type != "" && req.Type != string(models.ConversationDirect) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group chats not implemented yet"})
		return
	}

	conversation, err := services.FindOrCreateDirect(userID, req.ParticipantID)
	if err != nil {
		respondServiceError(c, err, "Failed to create conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

// GetMessages GET /chat/conversations/:id/messages
func GetMessages(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	conversationID := c.Param("id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := services.ListMessages(conversationID, userID, page, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage POST /chat/conversations/:id/messages
func SendMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	conversationID := c.Param("id")

	var req struct {
		Content string `json:"content" binding:"required"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	// Per-user send throttle on top of the IP limiter. Fails open if Redis
	// is down.
	if database.Redis != nil {
		if ok, _ := database.CheckMessageRate(userID, 30, time.Minute); !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Sending too fast, slow down"})
			return
		}
	}

	messageType := models.MessageType(req.Type)
	message, err := services.AppendMessage(conversationID, userID, req.Content, messageType)
	if err != nil {
		respondServiceError(c, err, "Failed to send message")
		return
	}

	// The sender has the confirmed message in this response; exclude its
	// connection from the channel push.
	if router != nil {
		excludeID, _ := registry.Lookup(userID)
		router.Broadcast(realtime.ConversationChannel(conversationID), "newMessage", message, excludeID)
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// MarkConversationRead PUT /chat/conversations/:id/read
func MarkConversationRead(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	conversationID := c.Param("id")

	receipts, err := services.MarkConversationRead(conversationID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to mark messages as read")
		return
	}

	if router != nil {
		excludeID, _ := registry.Lookup(userID)
		channel := realtime.ConversationChannel(conversationID)
		for _, receipt := range receipts {
			router.Broadcast(channel, "messageRead", map[string]interface{}{
				"messageId": receipt.MessageID,
				"readBy":    receipt.UserID,
				"readAt":    receipt.ReadAt,
			}, excludeID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "markedRead": len(receipts)})
}

// GetOnlineUsers GET /chat/users/online
func GetOnlineUsers(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	online := registry.Online()

	ids := make([]string, 0, len(online))
	for _, id := range online {
		if id != userID {
			ids = append(ids, id)
		}
	}

	users := []models.PublicUser{}
	if len(ids) > 0 {
		var rows []models.User
		if err := database.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		for _, row := range rows {
			users = append(users, row.Public())
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
