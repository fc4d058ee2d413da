package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMarkAllNotificationsRead(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	seedChatUsers("na_recipient", "na_actor")
	for i := 0; i < 3; i++ {
		database.DB.Create(&models.Notification{
			RecipientID: "na_recipient",
			Type:        models.NotificationNewThread,
			Message:     "New thread: hello",
			CreatedByID: "na_actor",
		})
	}

	c, w := testContext("PUT", "/api/notifications/read-all", nil)
	c.Set("userId", "na_recipient")
	MarkAllNotificationsRead(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", "na_recipient", false).
		Count(&unread)
	assert.Equal(t, int64(0), unread)
}

func TestMarkNotificationReadRejectsOtherRecipient(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	seedChatUsers("nr_recipient", "nr_actor", "nr_other")
	notification := models.Notification{
		RecipientID: "nr_recipient",
		Type:        models.NotificationPostLiked,
		Message:     "Someone liked your post",
		CreatedByID: "nr_actor",
	}
	database.DB.Create(&notification)

	c, w := testContext("PUT", "/api/notifications/"+notification.ID+"/read", nil)
	c.Params = gin.Params{{Key: "id", Value: notification.ID}}
	c.Set("userId", "nr_other")
	MarkNotificationRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var reloaded models.Notification
	database.DB.First(&reloaded, "id = ?", notification.ID)
	assert.False(t, reloaded.IsRead)
}

func TestGetNotificationsReturnsUnreadCount(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	seedChatUsers("gn_recipient", "gn_actor")
	database.DB.Create(&models.Notification{
		RecipientID: "gn_recipient",
		Type:        models.NotificationNewComment,
		Message:     "Someone commented on your post",
		CreatedByID: "gn_actor",
	})

	c, w := testContext("GET", "/api/notifications", nil)
	c.Set("userId", "gn_recipient")
	GetNotifications(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unreadCount"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Notifications, 1)
	assert.Equal(t, int64(1), resp.UnreadCount)
	assert.Equal(t, "gn_actor", resp.Notifications[0].CreatedBy.ID)
}
