package db

import (
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReelRepository interface
type ReelRepository interface {
	CreateReel(reel *models.Reel) error
	FindReelByID(id uuid.UUID) (*models.Reel, error)
	GetFeed(page int, limit int) ([]models.Reel, error)
	HasLiked(reelID uuid.UUID, userID uint) (bool, error)
	LikeReel(reelID uuid.UUID, userID uint) error
	UnlikeReel(reelID uuid.UUID, userID uint) error
}

type reelRepo struct {
	DB *gorm.DB
}

func NewReelRepo(db *GormDB) ReelRepository {
	return &reelRepo{db.DB}
}

func (r *reelRepo) CreateReel(reel *models.Reel) error {
	if reel.ID == uuid.Nil {
		reel.ID = uuid.New()
	}
	if err := r.DB.Create(reel).Error; err != nil {
		return errors.Wrap(err, "could not create reel")
	}
	return nil
}

func (r *reelRepo) FindReelByID(id uuid.UUID) (*models.Reel, error) {
	var reel models.Reel
	if err := r.DB.Preload("User").First(&reel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reel, nil
}

func (r *reelRepo) GetFeed(page int, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	err := r.DB.
		Where("is_published = ? AND is_archived = ?", true, false).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Preload("User").
		Find(&reels).Error
	return reels, err
}

func (r *reelRepo) HasLiked(reelID uuid.UUID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Table("reel_likes").
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reelRepo) LikeReel(reelID uuid.UUID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		reel := models.Reel{ID: reelID}
		user := models.User{Model: models.Model{ID: userID}}
		if err := tx.Model(&reel).Association("Likes").Append(&user); err != nil {
			return err
		}
		return tx.Model(&models.Reel{}).Where("id = ?", reelID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (r *reelRepo) UnlikeReel(reelID uuid.UUID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		reel := models.Reel{ID: reelID}
		user := models.User{Model: models.Model{ID: userID}}
		if err := tx.Model(&reel).Association("Likes").Delete(&user); err != nil {
			return err
		}
		return tx.Model(&models.Reel{}).Where("id = ? AND like_count > 0", reelID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}
