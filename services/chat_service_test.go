package services

import (
	"net/http"
	"testing"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageJoinsSenderIntoParticipants(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, nil)

	conversationID := uuid.New()
	msg, apiErr := svc.SendMessage(7, &models.SendMessageRequest{
		ConversationID: conversationID.String(),
		Content:        "hello",
	})
	require.Nil(t, apiErr)
	require.NotNil(t, msg)

	require.Len(t, repo.participantAdds, 1)
	assert.Equal(t, participantAdd{conversationID, 7}, repo.participantAdds[0])
	assert.Equal(t, []uint{7}, msg.ReadBy)
	assert.Equal(t, 1, repo.pointerMoves)
}

func TestSendMessageEmptyContentRejected(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, nil)

	_, apiErr := svc.SendMessage(7, &models.SendMessageRequest{
		ConversationID: uuid.New().String(),
		Content:        "",
	})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Empty(t, repo.saved)
	assert.Empty(t, repo.participantAdds)
}

func TestSendMessageBadConversationIDRejected(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, nil)

	_, apiErr := svc.SendMessage(7, &models.SendMessageRequest{
		ConversationID: "not-a-uuid",
		Content:        "hello",
	})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Empty(t, repo.saved)
}

func TestMarkMessageReadRestPath(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, nil)

	msg := &models.Message{ConversationID: uuid.New(), SenderID: 1, Content: "hello"}
	require.NoError(t, repo.SaveMessage(msg))

	readBy, apiErr := svc.MarkMessageRead(msg.ID, 2)
	require.Nil(t, apiErr)
	assert.Equal(t, []uint{1, 2}, readBy)
}

func TestMarkMessageReadUnknownMessageIsNotFound(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo, nil)

	unknown := uuid.New()
	_, apiErr := svc.MarkMessageRead(unknown, 2)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Empty(t, repo.receipts[unknown], "an unknown message id must not leave a receipt behind")
}
