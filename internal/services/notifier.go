package services

import (
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/lakshmanbhukya/threadly-backend/internal/realtime"
	"github.com/lakshmanbhukya/threadly-backend/pkg/logger"
	"gorm.io/gorm"
)

// Notifier persists notifications and pushes them to the recipient's personal
// channel when reachable. Notifications are side effects of other actions, so
// every failure here is logged and swallowed: a broken notification must never
// fail the thread creation or like that triggered it.
type Notifier struct {
	db  *gorm.DB
	pub realtime.Publisher
}

// NewNotifier wires the dispatcher to its storage and an injected publisher.
// pub may be nil, in which case delivery is skipped and only the row is kept.
func NewNotifier(db *gorm.DB, pub realtime.Publisher) *Notifier {
	return &Notifier{db: db, pub: pub}
}

// Create persists a notification and attempts one best-effort push. Self
// notifications (recipient == actor) are suppressed. Returns the persisted
// notification or nil when suppressed or failed.
func (n *Notifier) Create(recipientID string, ntype models.NotificationType, message, relatedID, relatedModel, createdByID string) *models.Notification {
	if recipientID == "" || recipientID == createdByID {
		return nil
	}

	notification := models.Notification{
		RecipientID:  recipientID,
		Type:         ntype,
		Message:      message,
		RelatedID:    relatedID,
		RelatedModel: relatedModel,
		CreatedByID:  createdByID,
	}

	if err := n.db.Create(&notification).Error; err != nil {
		logger.Error().Err(err).
			Str("recipient", recipientID).
			Str("type", string(ntype)).
			Msg("Failed to persist notification")
		return nil
	}

	// Enrich with the actor for the client; skip delivery rather than fail.
	if err := n.db.Preload("CreatedBy").First(&notification, "id = ?", notification.ID).Error; err != nil {
		logger.Warn().Err(err).Str("id", notification.ID).Msg("Failed to load notification actor, skipping push")
		return &notification
	}

	if n.pub != nil {
		n.pub.Publish(recipientID, "notification", notification)
	}

	return &notification
}

// NotifyNewThread fans out to every active user except the author. Each
// recipient is handled independently; one failure does not stop the rest.
func (n *Notifier) NotifyNewThread(thread *models.Thread) {
	var users []models.User
	if err := n.db.Where("id <> ? AND is_active = ?", thread.CreatedByID, true).Find(&users).Error; err != nil {
		logger.Error().Err(err).Str("thread", thread.ID).Msg("Failed to load recipients for new thread")
		return
	}

	for _, user := range users {
		n.Create(user.ID, models.NotificationNewThread,
			"New thread: "+thread.Title, thread.ID, models.RelatedThread, thread.CreatedByID)
	}
}

// NotifyNewPost tells the thread owner about a new post under their thread.
func (n *Notifier) NotifyNewPost(thread *models.Thread, post *models.Post) {
	n.Create(thread.CreatedByID, models.NotificationNewPost,
		"New post in your thread: "+thread.Title, post.ID, models.RelatedPost, post.CreatedByID)
}

// NotifyNewComment tells the post owner about a new comment.
func (n *Notifier) NotifyNewComment(post *models.Post, comment *models.Comment) {
	n.Create(post.CreatedByID, models.NotificationNewComment,
		"Someone commented on your post", post.ID, models.RelatedPost, comment.CreatedByID)
}

// NotifyThreadLiked runs on a false-to-true like transition only.
func (n *Notifier) NotifyThreadLiked(thread *models.Thread, actorID string) {
	n.Create(thread.CreatedByID, models.NotificationThreadLiked,
		"Someone liked your thread", thread.ID, models.RelatedThread, actorID)
}

// NotifyPostLiked runs on a false-to-true like transition only.
func (n *Notifier) NotifyPostLiked(post *models.Post, actorID string) {
	n.Create(post.CreatedByID, models.NotificationPostLiked,
		"Someone liked your post", post.ID, models.RelatedPost, actorID)
}

// NotifyCommentLiked runs on a false-to-true like transition only.
func (n *Notifier) NotifyCommentLiked(comment *models.Comment, actorID string) {
	n.Create(comment.CreatedByID, models.NotificationCommentLiked,
		"Someone liked your comment", comment.ID, models.RelatedComment, actorID)
}
