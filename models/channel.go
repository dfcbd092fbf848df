package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a creator profile. A user owns at most one channel.
type Channel struct {
	ID                uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Name              string      `json:"name" gorm:"not null" conform:"trim"`
	Description       string      `json:"description"`
	OwnerID           uint        `json:"owner_id" gorm:"uniqueIndex;not null"`
	Owner             User        `json:"owner" gorm:"foreignKey:OwnerID"`
	Avatar            string      `json:"avatar"`
	CoverPhoto        string      `json:"cover_photo"`
	IsVerified        bool        `json:"is_verified" gorm:"default:false"`
	SubscriptionCount int         `json:"subscription_count" gorm:"default:0"`
	ContentCount      int         `json:"content_count" gorm:"default:0"`
	IsActive          bool        `json:"is_active" gorm:"default:true"`
	Privacy           string      `json:"privacy" gorm:"default:public"`
	SocialLinks       SocialLinks `json:"social_links" gorm:"embedded;embeddedPrefix:social_"`
	Subscribers       []User      `json:"-" gorm:"many2many:channel_subscribers;"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type CreateChannelRequest struct {
	Name        string `json:"name" conform:"trim"`
	Description string `json:"description"`
}

type UpdateChannelRequest struct {
	Name        *string      `json:"name" conform:"trim"`
	Description *string      `json:"description"`
	Avatar      *string      `json:"avatar"`
	CoverPhoto  *string      `json:"cover_photo"`
	Privacy     *string      `json:"privacy"`
	SocialLinks *SocialLinks `json:"social_links"`
}
