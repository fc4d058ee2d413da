package models

import (
	"time"

	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
	"gorm.io/gorm"
)

type PostType string

const (
	PostTypeThread PostType = "thread"
	PostTypeMedia  PostType = "media"
	PostTypeLink   PostType = "link"
	PostTypePoll   PostType = "poll"
)

type Thread struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title    string   `gorm:"not null" json:"title"`
	Content  string   `gorm:"type:text" json:"content"`
	PostType PostType `gorm:"type:text;default:'thread'" json:"postType"`

	CreatedByID string `gorm:"index;type:text;not null" json:"createdById"`
	CreatedBy   User   `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	Likes     ActorSet `gorm:"type:jsonb;default:'[]'" json:"likes"`
	Downvotes ActorSet `gorm:"type:jsonb;default:'[]'" json:"downvotes"`

	PollOptions []PollOption `gorm:"foreignKey:ThreadID" json:"pollOptions,omitempty"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = utils.GenerateID()
	}
	return
}

// ToggleLike flips the actor's like. Adding a like removes any standing
// downvote so an actor is never in both sets. Returns true when the thread
// is now liked by the actor.
func (t *Thread) ToggleLike(actorID string) bool {
	liked := t.Likes.Toggle(actorID)
	if liked {
		t.Downvotes.Remove(actorID)
	}
	return liked
}

// ToggleDownvote mirrors ToggleLike for the downvote set.
func (t *Thread) ToggleDownvote(actorID string) bool {
	downvoted := t.Downvotes.Toggle(actorID)
	if downvoted {
		t.Likes.Remove(actorID)
	}
	return downvoted
}

type PollOption struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	ThreadID string `gorm:"index;type:text;not null" json:"threadId"`
	Position int    `json:"position"`
	Text     string `gorm:"not null" json:"text"`

	Votes ActorSet `gorm:"type:jsonb;default:'[]'" json:"votes"`
}

func (o *PollOption) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = utils.GenerateID()
	}
	return
}

// VoteOption toggles the actor's vote on option index. Voting clears the
// actor from every other option first, so at most one vote stands across
// the poll. Returns true when the actor ends up voted on the option.
func (t *Thread) VoteOption(index int, actorID string) bool {
	if index < 0 || index >= len(t.PollOptions) {
		return false
	}

	option := &t.PollOptions[index]
	if option.Votes.Contains(actorID) {
		option.Votes.Remove(actorID)
		return false
	}

	for i := range t.PollOptions {
		if i != index {
			t.PollOptions[i].Votes.Remove(actorID)
		}
	}
	option.Votes.Add(actorID)
	return true
}

// TotalVotes sums vote counts across all poll options.
func (t *Thread) TotalVotes() int {
	total := 0
	for _, opt := range t.PollOptions {
		total += opt.Votes.Count()
	}
	return total
}
