package models

import (
	"time"

	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`

	Role     Role `gorm:"type:text;default:'USER'" json:"role"`
	IsActive bool `gorm:"default:true" json:"isActive"`

	Password string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = utils.GenerateID()
	}
	return
}

// PublicUser is the slim projection embedded in messages, notifications and
// presence payloads.
type PublicUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}
