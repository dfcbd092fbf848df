package services

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/cookiepedia/cookiepedia/db"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
)

// NotificationService creates durable notifications and pushes them to the
// target: over the live connection when one exists, otherwise through FCM
// when the target registered a device token.
type NotificationService interface {
	Notify(targetID uint, kind string, senderID uint, refs models.NotificationRefs) error
	GetUserNotifications(userID uint, page int, limit int) (*models.NotificationListResponse, error)
	MarkRead(id uuid.UUID, userID uint) (*models.Notification, error)
	MarkAllRead(userID uint) error
	DeleteNotification(id uuid.UUID, userID uint) error
	UnreadCount(userID uint) (int64, error)
}

type notificationService struct {
	notificationRepo db.NotificationRepository
	authRepo         db.AuthRepository
	registry         *ConnectionRegistry
	fcmClient        *messaging.Client
}

// NewNotificationService instantiates a notificationService. fcmClient may
// be nil when push credentials are not configured.
func NewNotificationService(notificationRepo db.NotificationRepository, authRepo db.AuthRepository, registry *ConnectionRegistry, fcmClient *messaging.Client) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		authRepo:         authRepo,
		registry:         registry,
		fcmClient:        fcmClient,
	}
}

// Notify persists the notification first, then attempts best-effort
// delivery. Sending the same logical event twice creates two records.
func (s *notificationService) Notify(targetID uint, kind string, senderID uint, refs models.NotificationRefs) error {
	notification := &models.Notification{
		ID:             uuid.New(),
		UserID:         targetID,
		Type:           kind,
		SenderID:       senderID,
		MessageID:      refs.MessageID,
		ConversationID: refs.ConversationID,
		ReelID:         refs.ReelID,
		CreatedAt:      time.Now(),
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		log.Printf("error creating notification for user %d: %v", targetID, err)
		return err
	}

	if conn, ok := s.registry.Lookup(targetID); ok {
		envelope := models.Envelope{
			Type:         models.EventNotification,
			Notification: notification,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := conn.WriteJSON(envelope); err != nil {
			log.Printf("error pushing notification to user %d: %v", targetID, err)
		}
		return nil
	}

	s.sendPush(targetID, kind)
	return nil
}

func (s *notificationService) sendPush(targetID uint, kind string) {
	if s.fcmClient == nil {
		return
	}
	deviceToken, err := s.authRepo.GetDeviceToken(targetID)
	if err != nil || deviceToken == "" {
		return
	}

	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: pushTitle(kind),
			Body:  "Open Cookiepedia to see what's new",
		},
	}
	if _, err := s.fcmClient.Send(context.Background(), message); err != nil {
		log.Printf("error sending push to user %d: %v", targetID, err)
	}
}

func pushTitle(kind string) string {
	switch kind {
	case models.NotificationMessage:
		return "New message"
	case models.NotificationFollow:
		return "New follower"
	case models.NotificationLike:
		return "Someone liked your post"
	case models.NotificationComment:
		return "New comment"
	case models.NotificationMention:
		return "You were mentioned"
	default:
		return "New activity"
	}
}

func (s *notificationService) GetUserNotifications(userID uint, page int, limit int) (*models.NotificationListResponse, error) {
	notifications, total, unread, err := s.notificationRepo.GetUserNotifications(userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &models.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
		HasMore:       int64((page-1)*limit+len(notifications)) < total,
	}, nil
}

func (s *notificationService) MarkRead(id uuid.UUID, userID uint) (*models.Notification, error) {
	return s.notificationRepo.MarkRead(id, userID)
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

func (s *notificationService) DeleteNotification(id uuid.UUID, userID uint) error {
	return s.notificationRepo.DeleteNotification(id, userID)
}

func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}
