package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
	NotificationMention = "mention"
)

// Notification is append-only except for the read flag.
type Notification struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	Type           string     `json:"type" gorm:"not null"`
	SenderID       uint       `json:"sender_id" gorm:"not null"`
	Sender         User       `json:"sender" gorm:"foreignKey:SenderID"`
	Read           bool       `json:"read" gorm:"default:false"`
	MessageID      *uuid.UUID `json:"message_id" gorm:"type:uuid"`
	ConversationID *uuid.UUID `json:"conversation_id" gorm:"type:uuid"`
	ReelID         *uuid.UUID `json:"reel_id" gorm:"type:uuid"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NotificationRefs are the optional references to whatever triggered the
// notification.
type NotificationRefs struct {
	MessageID      *uuid.UUID
	ConversationID *uuid.UUID
	ReelID         *uuid.UUID
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
	UnreadCount   int64          `json:"unread_count"`
	HasMore       bool           `json:"has_more"`
}
