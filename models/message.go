package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
	MessageTypeAudio = "audio"
)

// Message is immutable after creation except for its read-by set.
type Message struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `json:"conversation_id" gorm:"type:uuid;not null;index"`
	SenderID       uint      `json:"sender_id" gorm:"not null"`
	Sender         User      `json:"sender" gorm:"foreignKey:SenderID"`
	Content        string    `json:"content" gorm:"not null"`
	Type           string    `json:"type" gorm:"default:text"`
	CreatedAt      time.Time `json:"created_at"`
	ReadBy         []uint    `json:"read_by" gorm:"-"`
}

// MessageRead is one entry of a message's read-by set. The composite
// primary key gives the set its idempotence.
type MessageRead struct {
	MessageID uuid.UUID `json:"message_id" gorm:"type:uuid;primaryKey"`
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Content        string `json:"content" binding:"required" conform:"trim"`
	Type           string `json:"type"`
}
