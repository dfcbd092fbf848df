package db

import (
	"time"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository persists conversations, messages and read receipts.
type ChatRepository interface {
	SaveMessage(msg *models.Message) error
	UpdateConversationLastMessage(conversationID uuid.UUID, messageID uuid.UUID, at time.Time) error
	FindMessageByID(id uuid.UUID) (*models.Message, error)
	AddReadReceipt(messageID uuid.UUID, userID uint) error
	GetMessageReadBy(messageID uuid.UUID) ([]uint, error)
	GetUserConversations(userID uint) ([]models.Conversation, error)
	GetConversationMessages(conversationID uuid.UUID) ([]models.Message, error)
	FindOrCreateConversation(userID uint, participantID uint) (*models.Conversation, error)
	CreateGroupConversation(adminID uint, participantIDs []uint, name string, photo string) (*models.Conversation, error)
	AddParticipant(conversationID uuid.UUID, userID uint) error
	SoftDeleteConversation(conversationID uuid.UUID, userID uint) error
}

type chatRepo struct {
	DB *gorm.DB
}

func NewChatRepo(db *GormDB) ChatRepository {
	return &chatRepo{db.DB}
}

// SaveMessage creates the message together with the sender's read receipt,
// so a freshly persisted message always has readBy = {sender}.
func (r *chatRepo) SaveMessage(msg *models.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Type == "" {
		msg.Type = models.MessageTypeText
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return errors.Wrap(err, "could not create message")
		}
		receipt := models.MessageRead{MessageID: msg.ID, UserID: msg.SenderID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&receipt).Error
	})
	if err != nil {
		return err
	}
	msg.ReadBy = []uint{msg.SenderID}
	return nil
}

func (r *chatRepo) UpdateConversationLastMessage(conversationID uuid.UUID, messageID uuid.UUID, at time.Time) error {
	return r.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Updates(map[string]interface{}{
			"last_message_id": messageID,
			"updated_at":      at,
		}).Error
}

func (r *chatRepo) FindMessageByID(id uuid.UUID) (*models.Message, error) {
	var msg models.Message
	if err := r.DB.First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	readBy, err := r.GetMessageReadBy(id)
	if err != nil {
		return nil, err
	}
	msg.ReadBy = readBy
	return &msg, nil
}

// AddReadReceipt is idempotent: re-reading the same message leaves the
// read-by set unchanged.
func (r *chatRepo) AddReadReceipt(messageID uuid.UUID, userID uint) error {
	receipt := models.MessageRead{MessageID: messageID, UserID: userID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&receipt).Error
}

func (r *chatRepo) GetMessageReadBy(messageID uuid.UUID) ([]uint, error) {
	var readBy []uint
	err := r.DB.Model(&models.MessageRead{}).
		Where("message_id = ?", messageID).
		Order("created_at").
		Pluck("user_id", &readBy).Error
	return readBy, err
}

func (r *chatRepo) GetUserConversations(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Where("conversations.id NOT IN (?)",
			r.DB.Model(&models.ConversationDelete{}).Select("conversation_id").Where("user_id = ?", userID)).
		Order("conversations.updated_at DESC").
		Preload("Participants").
		Preload("LastMessage").
		Find(&conversations).Error
	return conversations, err
}

func (r *chatRepo) GetConversationMessages(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i := range messages {
		readBy, err := r.GetMessageReadBy(messages[i].ID)
		if err != nil {
			return nil, err
		}
		messages[i].ReadBy = readBy
	}
	return messages, nil
}

// FindOrCreateConversation returns the existing two-party conversation
// between the users, creating it on first contact.
func (r *chatRepo) FindOrCreateConversation(userID uint, participantID uint) (*models.Conversation, error) {
	participants, err := models.NormalizeParticipants([]uint{userID, participantID})
	if err != nil {
		return nil, err
	}

	var conversationID uuid.UUID
	row := r.DB.Raw(`
		SELECT c.id FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE c.is_group = false AND cp.user_id IN (?, ?)
		GROUP BY c.id
		HAVING COUNT(DISTINCT cp.user_id) = 2
		LIMIT 1`, userID, participantID).Row()
	if err := row.Scan(&conversationID); err == nil {
		return r.findConversation(conversationID)
	}

	conversation := &models.Conversation{ID: uuid.New()}
	for _, id := range participants {
		conversation.Participants = append(conversation.Participants, models.User{Model: models.Model{ID: id}})
	}
	if err := r.DB.Omit("Participants.*").Create(conversation).Error; err != nil {
		return nil, errors.Wrap(err, "could not create conversation")
	}
	return r.findConversation(conversation.ID)
}

func (r *chatRepo) CreateGroupConversation(adminID uint, participantIDs []uint, name string, photo string) (*models.Conversation, error) {
	ids, err := models.NormalizeParticipants(append([]uint{adminID}, participantIDs...))
	if err != nil {
		return nil, err
	}

	conversation := &models.Conversation{
		ID:           uuid.New(),
		IsGroup:      true,
		GroupName:    name,
		GroupPhoto:   photo,
		GroupAdminID: &adminID,
	}
	for _, id := range ids {
		conversation.Participants = append(conversation.Participants, models.User{Model: models.Model{ID: id}})
	}
	if err := r.DB.Omit("Participants.*").Create(conversation).Error; err != nil {
		return nil, errors.Wrap(err, "could not create group conversation")
	}
	return r.findConversation(conversation.ID)
}

func (r *chatRepo) findConversation(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.Preload("Participants").Preload("LastMessage").First(&conversation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// AddParticipant adds the user to the conversation's participant set if not
// already present, re-checking the [2,10] invariant before writing.
func (r *chatRepo) AddParticipant(conversationID uuid.UUID, userID uint) error {
	var current []uint
	err := r.DB.Table("conversation_participants").
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &current).Error
	if err != nil {
		return err
	}
	for _, id := range current {
		if id == userID {
			return nil
		}
	}
	if _, err := models.NormalizeParticipants(append(current, userID)); err != nil {
		return err
	}
	return r.DB.Exec(
		"INSERT INTO conversation_participants (conversation_id, user_id) VALUES (?, ?)",
		conversationID, userID).Error
}

func (r *chatRepo) SoftDeleteConversation(conversationID uuid.UUID, userID uint) error {
	marker := models.ConversationDelete{
		ConversationID: conversationID,
		UserID:         userID,
		DeletedAt:      time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&marker).Error
}
