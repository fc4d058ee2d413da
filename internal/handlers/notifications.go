package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
)

// GetNotifications GET /notifications
func GetNotifications(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var notifications []models.Notification
	if err := database.DB.Preload("CreatedBy").
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unreadCount int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount)

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unreadCount": unreadCount})
}

// GetUnreadCount GET /notifications/unread-count
func GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead PUT /notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	notificationID := c.Param("id")

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ? AND recipient_id = ?", notificationID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	notification.IsRead = true
	database.DB.Save(&notification)

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead PUT /notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification DELETE /notifications/:id
func DeleteNotification(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	notificationID := c.Param("id")

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ? AND recipient_id = ?", notificationID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	database.DB.Delete(&notification)

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
