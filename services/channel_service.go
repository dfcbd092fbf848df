package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/cookiepedia/cookiepedia/db"
	apiError "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/leebenson/conform"
	"gorm.io/gorm"
)

// ChannelService interface
type ChannelService interface {
	CreateChannel(userID uint, request *models.CreateChannelRequest) (*models.Channel, *apiError.Error)
	GetChannelByOwner(ownerID uint) (*models.Channel, *apiError.Error)
	UpdateChannel(userID uint, request *models.UpdateChannelRequest) (*models.Channel, *apiError.Error)
}

type channelService struct {
	channelRepo db.ChannelRepository
	authRepo    db.AuthRepository
}

// NewChannelService instantiates a channelService.
func NewChannelService(channelRepo db.ChannelRepository, authRepo db.AuthRepository) ChannelService {
	return &channelService{channelRepo: channelRepo, authRepo: authRepo}
}

// CreateChannel creates the user's single channel. The name defaults to
// "<username>'s Channel" when none is given.
func (s *channelService) CreateChannel(userID uint, request *models.CreateChannelRequest) (*models.Channel, *apiError.Error) {
	if err := conform.Strings(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	if user.ChannelID != nil {
		return nil, apiError.New("you already have a channel", http.StatusConflict)
	}

	name := request.Name
	if name == "" {
		name = fmt.Sprintf("%s's Channel", user.Username)
	}
	channel := &models.Channel{
		Name:        name,
		Description: request.Description,
		OwnerID:     userID,
	}
	if err := s.channelRepo.CreateChannel(channel); err != nil {
		log.Printf("error creating channel for user %d: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}
	return channel, nil
}

func (s *channelService) GetChannelByOwner(ownerID uint) (*models.Channel, *apiError.Error) {
	channel, err := s.channelRepo.FindChannelByOwner(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("channel not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}
	return channel, nil
}

func (s *channelService) UpdateChannel(userID uint, request *models.UpdateChannelRequest) (*models.Channel, *apiError.Error) {
	if err := conform.Strings(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	channel, err := s.channelRepo.FindChannelByOwner(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("channel not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}

	if request.Name != nil {
		channel.Name = *request.Name
	}
	if request.Description != nil {
		channel.Description = *request.Description
	}
	if request.Avatar != nil {
		channel.Avatar = *request.Avatar
	}
	if request.CoverPhoto != nil {
		channel.CoverPhoto = *request.CoverPhoto
	}
	if request.Privacy != nil {
		channel.Privacy = *request.Privacy
	}
	if request.SocialLinks != nil {
		channel.SocialLinks = *request.SocialLinks
	}
	if err := s.channelRepo.UpdateChannel(channel); err != nil {
		log.Printf("error updating channel %s: %v", channel.ID, err)
		return nil, apiError.ErrInternalServerError
	}
	return channel, nil
}
