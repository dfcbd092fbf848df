package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type participantAdd struct {
	conversationID uuid.UUID
	userID         uint
}

type fakeChatRepo struct {
	saved           []*models.Message
	saveErr         error
	pointerMoves    int
	receipts        map[uuid.UUID][]uint
	messages        map[uuid.UUID]*models.Message
	participantAdds []participantAdd
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		receipts: make(map[uuid.UUID][]uint),
		messages: make(map[uuid.UUID]*models.Message),
	}
}

func (f *fakeChatRepo) SaveMessage(msg *models.Message) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.ReadBy = []uint{msg.SenderID}
	f.saved = append(f.saved, msg)
	f.messages[msg.ID] = msg
	f.receipts[msg.ID] = []uint{msg.SenderID}
	return nil
}

func (f *fakeChatRepo) UpdateConversationLastMessage(uuid.UUID, uuid.UUID, time.Time) error {
	f.pointerMoves++
	return nil
}

func (f *fakeChatRepo) FindMessageByID(id uuid.UUID) (*models.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *msg
	copied.ReadBy = append([]uint(nil), f.receipts[id]...)
	return &copied, nil
}

func (f *fakeChatRepo) AddReadReceipt(messageID uuid.UUID, userID uint) error {
	for _, id := range f.receipts[messageID] {
		if id == userID {
			return nil
		}
	}
	f.receipts[messageID] = append(f.receipts[messageID], userID)
	return nil
}

func (f *fakeChatRepo) GetMessageReadBy(messageID uuid.UUID) ([]uint, error) {
	return f.receipts[messageID], nil
}

func (f *fakeChatRepo) GetUserConversations(uint) ([]models.Conversation, error) {
	return nil, nil
}

func (f *fakeChatRepo) GetConversationMessages(uuid.UUID) ([]models.Message, error) {
	return nil, nil
}

func (f *fakeChatRepo) FindOrCreateConversation(uint, uint) (*models.Conversation, error) {
	return nil, nil
}

func (f *fakeChatRepo) CreateGroupConversation(uint, []uint, string, string) (*models.Conversation, error) {
	return nil, nil
}

func (f *fakeChatRepo) AddParticipant(conversationID uuid.UUID, userID uint) error {
	f.participantAdds = append(f.participantAdds, participantAdd{conversationID, userID})
	return nil
}

func (f *fakeChatRepo) SoftDeleteConversation(uuid.UUID, uint) error { return nil }

type notifyCall struct {
	targetID uint
	kind     string
	senderID uint
	refs     models.NotificationRefs
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(targetID uint, kind string, senderID uint, refs models.NotificationRefs) error {
	f.calls = append(f.calls, notifyCall{targetID: targetID, kind: kind, senderID: senderID, refs: refs})
	return nil
}

func (f *fakeNotifier) GetUserNotifications(uint, int, int) (*models.NotificationListResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(uuid.UUID, uint) (*models.Notification, error) { return nil, nil }

func (f *fakeNotifier) MarkAllRead(uint) error { return nil }

func (f *fakeNotifier) DeleteNotification(uuid.UUID, uint) error { return nil }

func (f *fakeNotifier) UnreadCount(uint) (int64, error) { return 0, nil }

func messageEvent(conversationID uuid.UUID, recipientID uint, content string) []byte {
	raw, _ := json.Marshal(map[string]interface{}{
		"type":           models.EventMessage,
		"conversationId": conversationID.String(),
		"recipientId":    recipientID,
		"content":        content,
	})
	return raw
}

func TestRelayMessageDeliversToBothSides(t *testing.T) {
	repo := newFakeChatRepo()
	notifier := &fakeNotifier{}
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, notifier, registry)

	senderConn := &fakeConn{}
	recipientConn := &fakeConn{}
	registry.Register(1, senderConn)
	registry.Register(2, recipientConn)

	conversationID := uuid.New()
	relay.HandleEvent(1, messageEvent(conversationID, 2, "hello"))

	require.Len(t, repo.saved, 1)
	msg := repo.saved[0]
	assert.Equal(t, uint(1), msg.SenderID)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, []uint{1}, msg.ReadBy, "a fresh message is read by its sender only")
	assert.Equal(t, 1, repo.pointerMoves)

	recipientPayloads := recipientConn.sent()
	require.Len(t, recipientPayloads, 1)
	recipientEnvelope := recipientPayloads[0].(models.Envelope)
	assert.Equal(t, models.EventMessage, recipientEnvelope.Type)
	assert.False(t, recipientEnvelope.IsOwnMessage)
	assert.Equal(t, msg, recipientEnvelope.Message)

	senderPayloads := senderConn.sent()
	require.Len(t, senderPayloads, 1)
	senderEnvelope := senderPayloads[0].(models.Envelope)
	assert.True(t, senderEnvelope.IsOwnMessage, "sender receives an echo marked as own message")

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, uint(2), notifier.calls[0].targetID)
	assert.Equal(t, models.NotificationMessage, notifier.calls[0].kind)
	require.NotNil(t, notifier.calls[0].refs.MessageID)
	assert.Equal(t, msg.ID, *notifier.calls[0].refs.MessageID)
}

func TestRelayMessageOfflineRecipientStillNotified(t *testing.T) {
	repo := newFakeChatRepo()
	notifier := &fakeNotifier{}
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, notifier, registry)

	relay.HandleEvent(1, messageEvent(uuid.New(), 2, "are you there"))

	require.Len(t, repo.saved, 1, "message persists regardless of connectivity")
	require.Len(t, notifier.calls, 1, "notification fires regardless of connectivity")
}

func TestRelayMessageEmptyContentDropped(t *testing.T) {
	repo := newFakeChatRepo()
	notifier := &fakeNotifier{}
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, notifier, registry)

	relay.HandleEvent(1, messageEvent(uuid.New(), 2, ""))

	assert.Empty(t, repo.saved)
	assert.Empty(t, notifier.calls)
}

func TestRelayMessageBadConversationIDDropped(t *testing.T) {
	repo := newFakeChatRepo()
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, &fakeNotifier{}, registry)

	raw, _ := json.Marshal(map[string]interface{}{
		"type":           models.EventMessage,
		"conversationId": "not-a-uuid",
		"recipientId":    2,
		"content":        "hello",
	})
	relay.HandleEvent(1, raw)

	assert.Empty(t, repo.saved)
}

func TestRelayMessageSaveFailureStopsDelivery(t *testing.T) {
	repo := newFakeChatRepo()
	repo.saveErr = fmt.Errorf("db down")
	notifier := &fakeNotifier{}
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, notifier, registry)

	recipientConn := &fakeConn{}
	registry.Register(2, recipientConn)

	relay.HandleEvent(1, messageEvent(uuid.New(), 2, "hello"))

	assert.Empty(t, recipientConn.sent(), "nothing is pushed when persistence fails")
	assert.Empty(t, notifier.calls)
}

func TestRelayMalformedEventDropped(t *testing.T) {
	repo := newFakeChatRepo()
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, &fakeNotifier{}, registry)

	relay.HandleEvent(1, []byte("{not json"))
	relay.HandleEvent(1, []byte(`{"type":"SOMETHING_ELSE"}`))

	assert.Empty(t, repo.saved)
}

func TestMarkMessageReadNotifiesSender(t *testing.T) {
	repo := newFakeChatRepo()
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, &fakeNotifier{}, registry)

	conversationID := uuid.New()
	msg := &models.Message{ConversationID: conversationID, SenderID: 1, Content: "hello"}
	require.NoError(t, repo.SaveMessage(msg))

	senderConn := &fakeConn{}
	registry.Register(1, senderConn)

	raw, _ := json.Marshal(map[string]interface{}{
		"type":           models.EventMessageRead,
		"messageId":      msg.ID.String(),
		"conversationId": conversationID.String(),
	})
	relay.HandleEvent(2, raw)

	readBy, err := repo.GetMessageReadBy(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, readBy)

	payloads := senderConn.sent()
	require.Len(t, payloads, 1)
	envelope := payloads[0].(models.Envelope)
	assert.Equal(t, models.EventMessageRead, envelope.Type)
	assert.Equal(t, msg.ID.String(), envelope.MessageID)
	assert.Equal(t, []uint{1, 2}, envelope.ReadBy)
}

func TestMarkMessageReadIsIdempotent(t *testing.T) {
	repo := newFakeChatRepo()
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, &fakeNotifier{}, registry)

	msg := &models.Message{ConversationID: uuid.New(), SenderID: 1, Content: "hello"}
	require.NoError(t, repo.SaveMessage(msg))

	raw, _ := json.Marshal(map[string]interface{}{
		"type":      models.EventMessageRead,
		"messageId": msg.ID.String(),
	})
	relay.HandleEvent(2, raw)
	relay.HandleEvent(2, raw)

	readBy, err := repo.GetMessageReadBy(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, readBy, "re-reading must not grow the read-by set")
}

func TestMarkMessageReadMissingMessageWritesNothing(t *testing.T) {
	repo := newFakeChatRepo()
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, &fakeNotifier{}, registry)

	unknown := uuid.New()
	raw, _ := json.Marshal(map[string]interface{}{
		"type":      models.EventMessageRead,
		"messageId": unknown.String(),
	})
	relay.HandleEvent(2, raw)

	readBy, err := repo.GetMessageReadBy(unknown)
	require.NoError(t, err)
	assert.Empty(t, readBy, "an unknown message id must not leave a receipt behind")
}

func TestTypingForwardedToRecipientOnly(t *testing.T) {
	repo := newFakeChatRepo()
	registry := NewConnectionRegistry()
	relay := NewRelayService(repo, &fakeNotifier{}, registry)

	senderConn := &fakeConn{}
	recipientConn := &fakeConn{}
	registry.Register(1, senderConn)
	registry.Register(2, recipientConn)

	conversationID := uuid.New()
	raw, _ := json.Marshal(map[string]interface{}{
		"type":           models.EventTyping,
		"conversationId": conversationID.String(),
		"recipientId":    2,
	})
	relay.HandleEvent(1, raw)

	payloads := recipientConn.sent()
	require.Len(t, payloads, 1)
	envelope := payloads[0].(models.Envelope)
	assert.Equal(t, models.EventTyping, envelope.Type)
	assert.Equal(t, uint(1), envelope.SenderID)
	assert.True(t, envelope.IsTyping)
	assert.Empty(t, senderConn.sent(), "typing indicators are never echoed")
	assert.Empty(t, repo.saved, "typing indicators are never persisted")
}
