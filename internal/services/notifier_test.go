package services

import (
	"sync"
	"testing"

	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

type publishedEvent struct {
	Channel string
	Event   string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(channel, event string, payload interface{}) {
	p.mu.Lock()
	p.events = append(p.events, publishedEvent{Channel: channel, Event: event})
	p.mu.Unlock()
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

func TestCreateNotificationPersistsAndPushes(t *testing.T) {
	SetupTestDB()
	createUser("notif_actor")
	createUser("notif_recipient")

	pub := &fakePublisher{}
	notifier := NewNotifier(database.DB, pub)

	notification := notifier.Create("notif_recipient", models.NotificationNewPost,
		"New post in your thread: Hello", "post1", models.RelatedPost, "notif_actor")
	assert.NotNil(t, notification)
	assert.Equal(t, "notif_actor", notification.CreatedBy.ID)

	var stored models.Notification
	assert.NoError(t, database.DB.First(&stored, "recipient_id = ?", "notif_recipient").Error)
	assert.False(t, stored.IsRead)
	assert.Equal(t, models.RelatedPost, stored.RelatedModel)

	events := pub.published()
	assert.Len(t, events, 1)
	assert.Equal(t, "notif_recipient", events[0].Channel)
	assert.Equal(t, "notification", events[0].Event)
}

func TestCreateNotificationSuppressesSelf(t *testing.T) {
	SetupTestDB()
	createUser("self_notif")

	pub := &fakePublisher{}
	notifier := NewNotifier(database.DB, pub)

	notification := notifier.Create("self_notif", models.NotificationPostLiked,
		"Someone liked your post", "post1", models.RelatedPost, "self_notif")
	assert.Nil(t, notification)

	var count int64
	database.DB.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Len(t, pub.published(), 0)
}

func TestCreateNotificationWithoutPublisherStillPersists(t *testing.T) {
	SetupTestDB()
	createUser("offline_actor")
	createUser("offline_recipient")

	notifier := NewNotifier(database.DB, nil)

	notification := notifier.Create("offline_recipient", models.NotificationNewComment,
		"Someone commented on your post", "post1", models.RelatedPost, "offline_actor")
	assert.NotNil(t, notification)

	// The row is the durability guarantee; no publisher, no push, no error.
	var count int64
	database.DB.Model(&models.Notification{}).Where("recipient_id = ?", "offline_recipient").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestNotifyNewThreadExcludesAuthorAndInactive(t *testing.T) {
	SetupTestDB()
	author := createUser("fan_author")
	createUser("fan_b")
	createUser("fan_c")
	inactive := createUser("fan_d")
	database.DB.Model(&inactive).Update("is_active", false)

	pub := &fakePublisher{}
	notifier := NewNotifier(database.DB, pub)

	thread := models.Thread{Title: "Big announcement", CreatedByID: author.ID}
	database.DB.Create(&thread)

	notifier.NotifyNewThread(&thread)

	var notifications []models.Notification
	database.DB.Order("recipient_id asc").Find(&notifications)
	assert.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.NotEqual(t, n.RecipientID, n.CreatedByID)
		assert.NotEqual(t, author.ID, n.RecipientID)
		assert.Equal(t, "New thread: Big announcement", n.Message)
		assert.Equal(t, models.NotificationNewThread, n.Type)
	}

	assert.Len(t, pub.published(), 2)
}
