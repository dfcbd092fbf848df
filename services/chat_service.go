package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cookiepedia/cookiepedia/db"
	apiError "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService covers the REST side of messaging: conversation management
// and history. Live delivery goes through the relay.
type ChatService interface {
	GetUserConversations(userID uint) ([]models.Conversation, *apiError.Error)
	StartConversation(userID uint, participantID uint) (*models.Conversation, *apiError.Error)
	CreateGroupConversation(adminID uint, request *models.CreateGroupConversationRequest) (*models.Conversation, *apiError.Error)
	GetConversationMessages(conversationID uuid.UUID) ([]models.Message, *apiError.Error)
	SendMessage(senderID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error)
	MarkMessageRead(messageID uuid.UUID, userID uint) ([]uint, *apiError.Error)
	AddParticipant(conversationID uuid.UUID, userID uint) *apiError.Error
	DeleteConversation(conversationID uuid.UUID, userID uint) *apiError.Error
}

type chatService struct {
	chatRepo db.ChatRepository
	authRepo db.AuthRepository
}

// NewChatService instantiates a chatService.
func NewChatService(chatRepo db.ChatRepository, authRepo db.AuthRepository) ChatService {
	return &chatService{chatRepo: chatRepo, authRepo: authRepo}
}

func (s *chatService) GetUserConversations(userID uint) ([]models.Conversation, *apiError.Error) {
	conversations, err := s.chatRepo.GetUserConversations(userID)
	if err != nil {
		log.Printf("error fetching conversations for user %d: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}
	return conversations, nil
}

func (s *chatService) StartConversation(userID uint, participantID uint) (*models.Conversation, *apiError.Error) {
	if _, err := s.authRepo.FindUserByID(participantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}

	conversation, err := s.chatRepo.FindOrCreateConversation(userID, participantID)
	if err != nil {
		if errors.Is(err, models.ErrParticipantCount) {
			return nil, apiError.New(err.Error(), http.StatusBadRequest)
		}
		log.Printf("error starting conversation for user %d: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}
	return conversation, nil
}

func (s *chatService) CreateGroupConversation(adminID uint, request *models.CreateGroupConversationRequest) (*models.Conversation, *apiError.Error) {
	conversation, err := s.chatRepo.CreateGroupConversation(adminID, request.ParticipantIDs, request.GroupName, request.GroupPhoto)
	if err != nil {
		if errors.Is(err, models.ErrParticipantCount) {
			return nil, apiError.New(err.Error(), http.StatusBadRequest)
		}
		log.Printf("error creating group conversation: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conversation, nil
}

func (s *chatService) GetConversationMessages(conversationID uuid.UUID) ([]models.Message, *apiError.Error) {
	messages, err := s.chatRepo.GetConversationMessages(conversationID)
	if err != nil {
		log.Printf("error fetching messages for conversation %s: %v", conversationID, err)
		return nil, apiError.ErrInternalServerError
	}
	return messages, nil
}

// SendMessage persists through the same path as the relay so history and
// live delivery agree on read-by semantics.
func (s *chatService) SendMessage(senderID uint, request *models.SendMessageRequest) (*models.Message, *apiError.Error) {
	conversationID, err := uuid.Parse(request.ConversationID)
	if err != nil {
		return nil, apiError.New("invalid conversation id", http.StatusBadRequest)
	}
	if request.Content == "" {
		return nil, apiError.New("message content cannot be empty", http.StatusBadRequest)
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        request.Content,
		Type:           request.Type,
		CreatedAt:      time.Now(),
	}
	if err := s.chatRepo.SaveMessage(message); err != nil {
		log.Printf("error saving message from user %d: %v", senderID, err)
		return nil, apiError.ErrInternalServerError
	}
	// sending joins the sender into the participant set; a full
	// conversation only logs, the message itself already persisted
	if err := s.chatRepo.AddParticipant(conversationID, senderID); err != nil {
		log.Printf("error adding sender %d to conversation %s: %v", senderID, conversationID, err)
	}
	if err := s.chatRepo.UpdateConversationLastMessage(conversationID, message.ID, message.CreatedAt); err != nil {
		log.Printf("error updating conversation %s: %v", conversationID, err)
	}
	return message, nil
}

func (s *chatService) MarkMessageRead(messageID uuid.UUID, userID uint) ([]uint, *apiError.Error) {
	if _, err := s.chatRepo.FindMessageByID(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("message not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}
	if err := s.chatRepo.AddReadReceipt(messageID, userID); err != nil {
		log.Printf("error adding read receipt for message %s: %v", messageID, err)
		return nil, apiError.ErrInternalServerError
	}
	readBy, err := s.chatRepo.GetMessageReadBy(messageID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return readBy, nil
}

func (s *chatService) AddParticipant(conversationID uuid.UUID, userID uint) *apiError.Error {
	if err := s.chatRepo.AddParticipant(conversationID, userID); err != nil {
		if errors.Is(err, models.ErrParticipantCount) {
			return apiError.New(err.Error(), http.StatusBadRequest)
		}
		log.Printf("error adding participant to conversation %s: %v", conversationID, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *chatService) DeleteConversation(conversationID uuid.UUID, userID uint) *apiError.Error {
	if err := s.chatRepo.SoftDeleteConversation(conversationID, userID); err != nil {
		log.Printf("error deleting conversation %s for user %d: %v", conversationID, userID, err)
		return apiError.ErrInternalServerError
	}
	return nil
}
