package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MinConversationParticipants = 2
	MaxConversationParticipants = 10
)

var ErrParticipantCount = errors.New("a conversation must have between 2 and 10 participants")

type Conversation struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Participants  []User     `json:"participants" gorm:"many2many:conversation_participants;"`
	LastMessageID *uuid.UUID `json:"last_message_id" gorm:"type:uuid"`
	LastMessage   *Message   `json:"last_message" gorm:"foreignKey:LastMessageID"`
	IsGroup       bool       `json:"is_group" gorm:"default:false"`
	GroupName     string     `json:"group_name"`
	GroupPhoto    string     `json:"group_photo"`
	GroupAdminID  *uint      `json:"group_admin_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ConversationDelete marks a participant's soft-delete of their view of a
// conversation. The conversation itself is never hard-deleted.
type ConversationDelete struct {
	ConversationID uuid.UUID `json:"conversation_id" gorm:"type:uuid;primaryKey"`
	UserID         uint      `json:"user_id" gorm:"primaryKey"`
	DeletedAt      time.Time `json:"deleted_at"`
}

// NormalizeParticipants deduplicates the participant set, preserving order,
// and enforces the [2,10] size invariant. Called on every persistence write
// that touches the participant set.
func NormalizeParticipants(ids []uint) ([]uint, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) < MinConversationParticipants || len(unique) > MaxConversationParticipants {
		return nil, ErrParticipantCount
	}
	return unique, nil
}

type CreateConversationRequest struct {
	ParticipantID uint `json:"participant_id" binding:"required"`
}

type CreateGroupConversationRequest struct {
	ParticipantIDs []uint `json:"participant_ids" binding:"required"`
	GroupName      string `json:"group_name" conform:"trim"`
	GroupPhoto     string `json:"group_photo"`
}
