package db

import (
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ChannelRepository interface
type ChannelRepository interface {
	CreateChannel(channel *models.Channel) error
	FindChannelByOwner(ownerID uint) (*models.Channel, error)
	UpdateChannel(channel *models.Channel) error
	AddSubscriber(channelID uuid.UUID, userID uint) error
	RemoveSubscriber(channelID uuid.UUID, userID uint) error
}

type channelRepo struct {
	DB *gorm.DB
}

func NewChannelRepo(db *GormDB) ChannelRepository {
	return &channelRepo{db.DB}
}

func (r *channelRepo) CreateChannel(channel *models.Channel) error {
	if channel.ID == uuid.Nil {
		channel.ID = uuid.New()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(channel).Error; err != nil {
			return errors.Wrap(err, "could not create channel")
		}
		return tx.Model(&models.User{}).
			Where("id = ?", channel.OwnerID).
			Update("channel_id", channel.ID).Error
	})
}

func (r *channelRepo) FindChannelByOwner(ownerID uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.DB.Preload("Owner").First(&channel, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepo) UpdateChannel(channel *models.Channel) error {
	return r.DB.Save(channel).Error
}

func (r *channelRepo) AddSubscriber(channelID uuid.UUID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		channel := models.Channel{ID: channelID}
		subscriber := models.User{Model: models.Model{ID: userID}}
		if err := tx.Model(&channel).Association("Subscribers").Append(&subscriber); err != nil {
			return err
		}
		return tx.Model(&models.Channel{}).Where("id = ?", channelID).
			UpdateColumn("subscription_count", gorm.Expr("subscription_count + 1")).Error
	})
}

func (r *channelRepo) RemoveSubscriber(channelID uuid.UUID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		channel := models.Channel{ID: channelID}
		subscriber := models.User{Model: models.Model{ID: userID}}
		if err := tx.Model(&channel).Association("Subscribers").Delete(&subscriber); err != nil {
			return err
		}
		return tx.Model(&models.Channel{}).Where("id = ? AND subscription_count > 0", channelID).
			UpdateColumn("subscription_count", gorm.Expr("subscription_count - 1")).Error
	})
}
