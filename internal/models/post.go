package models

import (
	"time"

	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content string `gorm:"type:text;not null" json:"content"`

	// Posts can live under a thread or stand alone on a profile feed.
	ThreadID *string `gorm:"index;type:text" json:"threadId"`
	Thread   *Thread `gorm:"foreignKey:ThreadID" json:"-"`

	CreatedByID string `gorm:"index;type:text;not null" json:"createdById"`
	CreatedBy   User   `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	IsAnonymous bool `gorm:"default:false" json:"isAnonymous"`

	Likes ActorSet `gorm:"type:jsonb;default:'[]'" json:"likes"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = utils.GenerateID()
	}
	return
}

// ToggleLike flips the actor's like and returns true when the post is now liked.
func (p *Post) ToggleLike(actorID string) bool {
	return p.Likes.Toggle(actorID)
}
