package models

import (
	"time"

	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationNewThread    NotificationType = "new_thread"
	NotificationNewPost      NotificationType = "new_post"
	NotificationNewComment   NotificationType = "new_comment"
	NotificationThreadLiked  NotificationType = "thread_liked"
	NotificationPostLiked    NotificationType = "post_liked"
	NotificationCommentLiked NotificationType = "comment_liked"
)

// Related entity names for the polymorphic reference.
const (
	RelatedThread  = "Thread"
	RelatedPost    = "Post"
	RelatedComment = "Comment"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	RecipientID string           `gorm:"index;type:text;not null" json:"recipientId"`
	Type        NotificationType `gorm:"type:text;not null" json:"type"`
	Message     string           `gorm:"type:text" json:"message"`

	// Polymorphic reference to the entity the notification points at.
	RelatedID    string `gorm:"index;type:text" json:"relatedId"`
	RelatedModel string `gorm:"type:text" json:"relatedModel"`

	CreatedByID string `gorm:"index;type:text" json:"createdById"`
	CreatedBy   User   `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	IsRead bool `gorm:"default:false" json:"isRead"`

	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = utils.GenerateID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return
}
