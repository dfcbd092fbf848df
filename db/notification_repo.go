package db

import (
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// NotificationRepository interface
type NotificationRepository interface {
	CreateNotification(n *models.Notification) error
	GetUserNotifications(userID uint, page int, limit int) ([]models.Notification, int64, int64, error)
	MarkRead(id uuid.UUID, userID uint) (*models.Notification, error)
	MarkAllRead(userID uint) error
	DeleteNotification(id uuid.UUID, userID uint) error
	UnreadCount(userID uint) (int64, error)
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) CreateNotification(n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if err := r.DB.Create(n).Error; err != nil {
		return errors.Wrap(err, "could not create notification")
	}
	return nil
}

func (r *notificationRepo) GetUserNotifications(userID uint, page int, limit int) ([]models.Notification, int64, int64, error) {
	var notifications []models.Notification
	var total, unread int64

	if err := r.DB.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	if err := r.DB.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userID, false).Count(&unread).Error; err != nil {
		return nil, 0, 0, err
	}
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Preload("Sender").
		Find(&notifications).Error
	return notifications, total, unread, err
}

func (r *notificationRepo) MarkRead(id uuid.UUID, userID uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.DB.First(&n, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	if n.Read {
		return &n, nil
	}
	if err := r.DB.Model(&n).Update("read", true).Error; err != nil {
		return nil, err
	}
	n.Read = true
	return &n, nil
}

func (r *notificationRepo) MarkAllRead(userID uint) error {
	return r.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (r *notificationRepo) DeleteNotification(id uuid.UUID, userID uint) error {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
