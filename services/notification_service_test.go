package services

import (
	"fmt"
	"testing"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	created   []*models.Notification
	createErr error
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetUserNotifications(userID uint, page int, limit int) ([]models.Notification, int64, int64, error) {
	out := make([]models.Notification, 0)
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkRead(id uuid.UUID, userID uint) (*models.Notification, error) {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return n, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeNotificationRepo) MarkAllRead(userID uint) error { return nil }

func (f *fakeNotificationRepo) DeleteNotification(id uuid.UUID, userID uint) error { return nil }

func (f *fakeNotificationRepo) UnreadCount(userID uint) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func TestNotifyPersistsBeforePush(t *testing.T) {
	repo := &fakeNotificationRepo{}
	registry := NewConnectionRegistry()
	svc := NewNotificationService(repo, nil, registry, nil)

	conn := &fakeConn{}
	registry.Register(2, conn)

	messageID := uuid.New()
	err := svc.Notify(2, models.NotificationMessage, 1, models.NotificationRefs{MessageID: &messageID})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	notification := repo.created[0]
	assert.Equal(t, uint(2), notification.UserID)
	assert.Equal(t, uint(1), notification.SenderID)
	assert.Equal(t, models.NotificationMessage, notification.Type)
	require.NotNil(t, notification.MessageID)
	assert.Equal(t, messageID, *notification.MessageID)

	payloads := conn.sent()
	require.Len(t, payloads, 1)
	envelope := payloads[0].(models.Envelope)
	assert.Equal(t, models.EventNotification, envelope.Type)
	assert.Equal(t, notification, envelope.Notification)
}

func TestNotifyOfflineTargetStillPersists(t *testing.T) {
	repo := &fakeNotificationRepo{}
	registry := NewConnectionRegistry()
	svc := NewNotificationService(repo, nil, registry, nil)

	err := svc.Notify(2, models.NotificationFollow, 1, models.NotificationRefs{})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
}

func TestNotifyDuplicateEventsCreateDuplicateRecords(t *testing.T) {
	repo := &fakeNotificationRepo{}
	registry := NewConnectionRegistry()
	svc := NewNotificationService(repo, nil, registry, nil)

	require.NoError(t, svc.Notify(2, models.NotificationLike, 1, models.NotificationRefs{}))
	require.NoError(t, svc.Notify(2, models.NotificationLike, 1, models.NotificationRefs{}))
	assert.Len(t, repo.created, 2, "dedup is not the notifier's job")
}

func TestNotifyPersistenceFailureSurfaces(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: fmt.Errorf("db down")}
	registry := NewConnectionRegistry()
	svc := NewNotificationService(repo, nil, registry, nil)

	conn := &fakeConn{}
	registry.Register(2, conn)

	err := svc.Notify(2, models.NotificationMessage, 1, models.NotificationRefs{})
	assert.Error(t, err)
	assert.Empty(t, conn.sent(), "no push without a durable record")
}

func TestGetUserNotificationsHasMore(t *testing.T) {
	repo := &fakeNotificationRepo{}
	registry := NewConnectionRegistry()
	svc := NewNotificationService(repo, nil, registry, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(2, models.NotificationLike, 1, models.NotificationRefs{}))
	}

	list, err := svc.GetUserNotifications(2, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.False(t, list.HasMore)
	assert.Len(t, list.Notifications, 3)
}
