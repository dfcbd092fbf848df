package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/cookiepedia/cookiepedia/db"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
)

// RelayService processes the typed events a connected client sends:
// chat messages, read receipts and typing indicators. Events are
// fire-and-forget; failures are logged, never surfaced to the sender.
type RelayService interface {
	HandleEvent(senderID uint, raw []byte)
}

type relayService struct {
	chatRepo      db.ChatRepository
	notifications NotificationService
	registry      *ConnectionRegistry
}

// NewRelayService instantiates a relayService.
func NewRelayService(chatRepo db.ChatRepository, notifications NotificationService, registry *ConnectionRegistry) RelayService {
	return &relayService{
		chatRepo:      chatRepo,
		notifications: notifications,
		registry:      registry,
	}
}

func (s *relayService) HandleEvent(senderID uint, raw []byte) {
	var event models.ClientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("dropping malformed event from user %d: %v", senderID, err)
		return
	}

	switch event.Type {
	case models.EventMessage:
		s.relayMessage(senderID, event)
	case models.EventMessageRead:
		s.markMessageRead(senderID, event)
	case models.EventTyping:
		s.forwardTyping(senderID, event)
	default:
		log.Printf("unknown event type %q from user %d", event.Type, senderID)
	}
}

// relayMessage persists the message before any delivery attempt, then
// pushes best-effort: recipient first, then an echo to the sender tagged
// isOwnMessage, then the notification side channel regardless of the
// recipient's connectivity. Delivery is at-most-once; an offline recipient
// retrieves the message through conversation history.
func (s *relayService) relayMessage(senderID uint, event models.ClientEvent) {
	if event.Content == "" {
		log.Printf("dropping empty message from user %d", senderID)
		return
	}
	conversationID, err := uuid.Parse(event.ConversationID)
	if err != nil {
		log.Printf("dropping message with bad conversation id %q from user %d", event.ConversationID, senderID)
		return
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        event.Content,
		CreatedAt:      time.Now(),
	}
	if err := s.chatRepo.SaveMessage(message); err != nil {
		log.Printf("error saving message from user %d: %v", senderID, err)
		return
	}
	if err := s.chatRepo.UpdateConversationLastMessage(conversationID, message.ID, message.CreatedAt); err != nil {
		log.Printf("error updating conversation %s: %v", conversationID, err)
		return
	}

	envelope := models.Envelope{
		Type:           models.EventMessage,
		Message:        message,
		ConversationID: event.ConversationID,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	s.push(event.RecipientID, envelope)

	envelope.IsOwnMessage = true
	s.push(senderID, envelope)

	refs := models.NotificationRefs{
		MessageID:      &message.ID,
		ConversationID: &conversationID,
	}
	if err := s.notifications.Notify(event.RecipientID, models.NotificationMessage, senderID, refs); err != nil {
		log.Printf("error notifying user %d: %v", event.RecipientID, err)
	}
}

// markMessageRead adds the reader to the message's read-by set and tells
// the original sender, if connected. An unknown message id is a silent
// no-op and writes nothing.
func (s *relayService) markMessageRead(readerID uint, event models.ClientEvent) {
	messageID, err := uuid.Parse(event.MessageID)
	if err != nil {
		log.Printf("dropping read receipt with bad message id %q from user %d", event.MessageID, readerID)
		return
	}

	message, err := s.chatRepo.FindMessageByID(messageID)
	if err != nil {
		return
	}

	if err := s.chatRepo.AddReadReceipt(messageID, readerID); err != nil {
		log.Printf("error adding read receipt for message %s: %v", messageID, err)
		return
	}
	readBy, err := s.chatRepo.GetMessageReadBy(messageID)
	if err != nil {
		log.Printf("error fetching read-by set for message %s: %v", messageID, err)
		return
	}

	s.push(message.SenderID, models.Envelope{
		Type:           models.EventMessageRead,
		MessageID:      event.MessageID,
		ReadBy:         readBy,
		ConversationID: event.ConversationID,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

// forwardTyping relays the typing indicator to the recipient if connected.
// Never persisted.
func (s *relayService) forwardTyping(senderID uint, event models.ClientEvent) {
	s.push(event.RecipientID, models.Envelope{
		Type:           models.EventTyping,
		SenderID:       senderID,
		ConversationID: event.ConversationID,
		IsTyping:       true,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *relayService) push(userID uint, envelope models.Envelope) {
	conn, ok := s.registry.Lookup(userID)
	if !ok {
		return
	}
	if err := conn.WriteJSON(envelope); err != nil {
		log.Printf("error pushing %s event to user %d: %v", envelope.Type, userID, err)
	}
}
