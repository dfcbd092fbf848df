package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/cookiepedia/cookiepedia/db"
	apiError "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"gorm.io/gorm"
)

// ReelService interface
type ReelService interface {
	CreateReel(userID uint, request *models.CreateReelRequest) (*models.Reel, *apiError.Error)
	GetReel(id uuid.UUID) (*models.Reel, *apiError.Error)
	GetFeed(page int, limit int) ([]models.Reel, *apiError.Error)
	ToggleLike(reelID uuid.UUID, userID uint) (bool, *apiError.Error)
}

type reelService struct {
	reelRepo      db.ReelRepository
	notifications NotificationService
}

// NewReelService instantiates a reelService.
func NewReelService(reelRepo db.ReelRepository, notifications NotificationService) ReelService {
	return &reelService{reelRepo: reelRepo, notifications: notifications}
}

func (s *reelService) CreateReel(userID uint, request *models.CreateReelRequest) (*models.Reel, *apiError.Error) {
	if err := conform.Strings(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	reel := &models.Reel{
		UserID:      userID,
		VideoURL:    request.VideoURL,
		Caption:     request.Caption,
		Music:       request.Music,
		Duration:    request.Duration,
		AspectRatio: request.AspectRatio,
		Privacy:     request.Privacy,
		IsPublished: true,
	}
	if err := s.reelRepo.CreateReel(reel); err != nil {
		log.Printf("error creating reel for user %d: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}
	return reel, nil
}

func (s *reelService) GetReel(id uuid.UUID) (*models.Reel, *apiError.Error) {
	reel, err := s.reelRepo.FindReelByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("reel not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}
	return reel, nil
}

func (s *reelService) GetFeed(page int, limit int) ([]models.Reel, *apiError.Error) {
	reels, err := s.reelRepo.GetFeed(page, limit)
	if err != nil {
		log.Printf("error fetching reel feed: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return reels, nil
}

// ToggleLike likes the reel if the user has not liked it yet and unlikes
// it otherwise. It returns the resulting liked state. A fresh like
// notifies the reel's owner.
func (s *reelService) ToggleLike(reelID uuid.UUID, userID uint) (bool, *apiError.Error) {
	reel, err := s.reelRepo.FindReelByID(reelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apiError.New("reel not found", http.StatusNotFound)
		}
		return false, apiError.ErrInternalServerError
	}

	liked, err := s.reelRepo.HasLiked(reelID, userID)
	if err != nil {
		return false, apiError.ErrInternalServerError
	}

	if liked {
		if err := s.reelRepo.UnlikeReel(reelID, userID); err != nil {
			log.Printf("error unliking reel %s: %v", reelID, err)
			return true, apiError.ErrInternalServerError
		}
		return false, nil
	}

	if err := s.reelRepo.LikeReel(reelID, userID); err != nil {
		log.Printf("error liking reel %s: %v", reelID, err)
		return false, apiError.ErrInternalServerError
	}
	if reel.UserID != userID {
		refs := models.NotificationRefs{ReelID: &reelID}
		if err := s.notifications.Notify(reel.UserID, models.NotificationLike, userID, refs); err != nil {
			log.Printf("error sending like notification: %v", err)
		}
	}
	return true, nil
}
