package models

import (
	"time"

	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content string `gorm:"type:text;not null" json:"content"`

	PostID string `gorm:"index;type:text;not null" json:"postId"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	CreatedByID string `gorm:"index;type:text;not null" json:"createdById"`
	CreatedBy   User   `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	Likes ActorSet `gorm:"type:jsonb;default:'[]'" json:"likes"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	return
}

// ToggleLike flips the actor's like and returns true when the comment is now liked.
func (c *Comment) ToggleLike(actorID string) bool {
	return c.Likes.Toggle(actorID)
}
