package models

import (
	"strings"
	"time"

	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
	"gorm.io/gorm"
)

type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	// ConversationGroup is reserved; group chats are not implemented yet.
	ConversationGroup ConversationType = "group"
)

// Conversation is a messaging thread between users. The participant set is
// fixed at creation; for direct conversations it is exactly two users and the
// pair is deduplicated by DirectKey.
type Conversation struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Type ConversationType `gorm:"type:text;default:'direct'" json:"type"`

	// DirectKey is the canonicalized participant pair (sorted, colon-joined).
	// The unique index makes concurrent find-or-create collide at the storage
	// layer instead of racing in application code.
	DirectKey string `gorm:"uniqueIndex;type:text" json:"-"`

	Participants []User `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`

	LastMessageID *string   `gorm:"type:text" json:"lastMessageId"`
	LastMessage   *Message  `gorm:"foreignKey:LastMessageID" json:"lastMessage,omitempty"`
	LastActivity  time.Time `gorm:"index" json:"lastActivity"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	if c.LastActivity.IsZero() {
		c.LastActivity = time.Now()
	}
	return
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// DirectKeyFor canonicalizes an unordered user pair into the dedup key.
func DirectKeyFor(userA, userB string) string {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

type MessageType string

const (
	MessageTypeText MessageType = "text"
)

// Message belongs to exactly one conversation. It is immutable after creation
// except for read-receipt appends.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	ConversationID string       `gorm:"index;type:text;not null" json:"conversationId"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID" json:"-"`

	SenderID string `gorm:"index;type:text;not null" json:"senderId"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Content string      `gorm:"type:text;not null" json:"content"`
	Type    MessageType `gorm:"type:text;default:'text'" json:"type"`

	ReadBy []MessageReceipt `gorm:"foreignKey:MessageID" json:"readBy"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = utils.GenerateID()
	}
	return
}

// MessageReceipt records that a user has read a message. The composite primary
// key keeps each reader to at most one receipt per message.
type MessageReceipt struct {
	MessageID string    `gorm:"primaryKey;type:text" json:"messageId"`
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	ReadAt    time.Time `json:"readAt"`
}
