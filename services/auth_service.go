package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/cookiepedia/cookiepedia/config"
	"github.com/cookiepedia/cookiepedia/db"
	apiError "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/mailingservices"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/services/jwt"
	passwd "github.com/go-passwd/validator"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const verificationCodeValidity = 10 * time.Minute

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) *apiError.Error
	VerifyEmail(request *models.VerifyEmailRequest) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GoogleLoginUser(params *models.CreateSocialUserParams) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(username string, viewerID uint) (*models.User, *apiError.Error)
	EditUserProfile(userID uint, request *models.EditProfileRequest) error
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
	FollowUser(followerID uint, userID uint) *apiError.Error
	UnfollowUser(followerID uint, userID uint) *apiError.Error
	GetFollowers(userID uint, page int, limit int) ([]models.UserSummary, error)
	GetFollowing(userID uint, page int, limit int) ([]models.UserSummary, error)
	SearchUsers(query string, page int, limit int) ([]models.UserSummary, int64, error)
}

// authService struct
type authService struct {
	Config         *config.Config
	authRepo       db.AuthRepository
	channelRepo    db.ChannelRepository
	notifications  NotificationService
	mail           *mailingservices.Mailgun
	passwordPolicy *passwd.Validator
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, channelRepo db.ChannelRepository, notifications NotificationService, mail *mailingservices.Mailgun, conf *config.Config) AuthService {
	return &authService{
		Config:        conf,
		authRepo:      authRepo,
		channelRepo:   channelRepo,
		notifications: notifications,
		mail:          mail,
		passwordPolicy: passwd.New(
			passwd.MinLength(8, errors.New("password must be at least 8 characters long")),
			passwd.MaxLength(64, errors.New("password cannot exceed 64 characters")),
		),
	}
}

// SignupUser stages the account and mails a verification code. The durable
// user row is only created once the code is confirmed.
func (s *authService) SignupUser(request *models.SignupRequest) *apiError.Error {
	if err := conform.Strings(request); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}
	if err := s.passwordPolicy.Validate(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return apiError.GetUniqueContraintError(err)
	}
	if err := s.authRepo.IsUsernameExist(request.Username); err != nil {
		log.Printf("SignupUser error: %v", err)
		return apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return apiError.ErrInternalServerError
	}

	code, err := generateVerificationCode()
	if err != nil {
		log.Printf("SignupUser error generating code: %v", err)
		return apiError.ErrInternalServerError
	}

	pending := &models.PendingSignup{
		Username:         request.Username,
		Email:            request.Email,
		Password:         string(hashedPassword),
		VerificationCode: code,
		ExpiresAt:        time.Now().Add(verificationCodeValidity),
	}
	if err := s.authRepo.UpsertPendingSignup(pending); err != nil {
		log.Printf("SignupUser error staging signup: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.mail.SendVerificationEmail(context.Background(), request.Email, code); err != nil {
		// clean up so a retry regenerates the code
		if delErr := s.authRepo.DeletePendingSignup(request.Email); delErr != nil {
			log.Printf("SignupUser error cleaning pending signup: %v", delErr)
		}
		return apiError.New("failed to send verification email", http.StatusInternalServerError)
	}
	return nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// VerifyEmail turns a pending signup into a verified user.
func (s *authService) VerifyEmail(request *models.VerifyEmailRequest) (*models.User, *apiError.Error) {
	if err := conform.Strings(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	pending, err := s.authRepo.FindPendingSignupByEmail(request.Email)
	if err != nil {
		return nil, apiError.New("user not found or verification expired", http.StatusNotFound)
	}
	if pending.VerificationCode != request.Code || pending.Expired() {
		return nil, apiError.New("invalid or expired verification code", http.StatusBadRequest)
	}

	user := &models.User{
		Username:       pending.Username,
		Email:          pending.Email,
		HashedPassword: pending.Password,
		IsVerified:     true,
		LastActive:     time.Now(),
	}
	createdUser, err := s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("VerifyEmail error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if err := s.authRepo.DeletePendingSignup(request.Email); err != nil {
		log.Printf("VerifyEmail error deleting pending signup: %v", err)
	}
	return createdUser, nil
}

// LoginUser logs in a user and returns the login response
func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if !foundUser.IsVerified {
		return nil, apiError.New("please verify your email before logging in", http.StatusUnauthorized)
	}
	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("invalid password for user %s", foundUser.Email)
		return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	return s.loginResponse(foundUser)
}

// GoogleLoginUser upserts the social account and returns the same login
// response shape as a password login.
func (s *authService) GoogleLoginUser(params *models.CreateSocialUserParams) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(params.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("error finding google user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		foundUser, err = s.authRepo.CreateSocialUser(params)
		if err != nil {
			log.Printf("error creating google user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}
	return s.loginResponse(foundUser)
}

func (s *authService) loginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user.LastActive = time.Now()
	if err := s.authRepo.UpdateUser(user); err != nil {
		log.Printf("error updating last active: %v", err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// GetUserProfile returns the public profile. Private profiles are only
// visible to their owner.
func (s *authService) GetUserProfile(username string, viewerID uint) (*models.User, *apiError.Error) {
	user, err := s.authRepo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}
	if user.ProfileVisibility == "private" && user.ID != viewerID {
		return nil, apiError.New("this profile is private", http.StatusForbidden)
	}
	return user, nil
}

func (s *authService) EditUserProfile(userID uint, request *models.EditProfileRequest) error {
	if err := conform.Strings(request); err != nil {
		return err
	}
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return err
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Bio != nil {
		user.Bio = *request.Bio
	}
	if request.Website != nil {
		user.Website = *request.Website
	}
	if request.ProfileVisibility != nil {
		user.ProfileVisibility = *request.ProfileVisibility
	}
	if request.SocialLinks != nil {
		user.SocialLinks = *request.SocialLinks
	}
	return s.authRepo.UpdateUser(user)
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	token := uuid.NewString()
	if err := s.authRepo.SetResetToken(request.Email, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// do not leak whether the address exists
			return nil
		}
		return apiError.ErrInternalServerError
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", s.Config.BaseUrl, token)
	if err := s.mail.SendPasswordResetEmail(context.Background(), request.Email, resetURL); err != nil {
		return apiError.New("failed to send password reset email", http.StatusInternalServerError)
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if err := s.passwordPolicy.Validate(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}
	user, err := s.authRepo.FindUserByResetToken(token)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.UpdatePassword(user.Email, string(hashedPassword)); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

// FollowUser adds the follow edge, syncs the channel subscriber list and
// fires a follow notification.
func (s *authService) FollowUser(followerID uint, userID uint) *apiError.Error {
	if followerID == userID {
		return apiError.New("you cannot follow yourself", http.StatusBadRequest)
	}
	userToFollow, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		return apiError.ErrInternalServerError
	}

	following, err := s.authRepo.IsFollowing(followerID, userID)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if following {
		return apiError.New("already following this user", http.StatusBadRequest)
	}

	if err := s.authRepo.Follow(followerID, userID); err != nil {
		log.Printf("error following user %d: %v", userID, err)
		return apiError.ErrInternalServerError
	}
	if userToFollow.ChannelID != nil {
		if err := s.channelRepo.AddSubscriber(*userToFollow.ChannelID, followerID); err != nil {
			log.Printf("error adding channel subscriber: %v", err)
		}
	}

	if err := s.notifications.Notify(userID, models.NotificationFollow, followerID, models.NotificationRefs{}); err != nil {
		log.Printf("error sending follow notification: %v", err)
	}
	return nil
}

func (s *authService) UnfollowUser(followerID uint, userID uint) *apiError.Error {
	if followerID == userID {
		return apiError.New("invalid operation", http.StatusBadRequest)
	}
	userToUnfollow, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		return apiError.ErrInternalServerError
	}

	following, err := s.authRepo.IsFollowing(followerID, userID)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if !following {
		return apiError.New("not following this user", http.StatusBadRequest)
	}

	if err := s.authRepo.Unfollow(followerID, userID); err != nil {
		log.Printf("error unfollowing user %d: %v", userID, err)
		return apiError.ErrInternalServerError
	}
	if userToUnfollow.ChannelID != nil {
		if err := s.channelRepo.RemoveSubscriber(*userToUnfollow.ChannelID, followerID); err != nil {
			log.Printf("error removing channel subscriber: %v", err)
		}
	}
	return nil
}

func (s *authService) GetFollowers(userID uint, page int, limit int) ([]models.UserSummary, error) {
	return s.authRepo.GetFollowers(userID, page, limit)
}

func (s *authService) GetFollowing(userID uint, page int, limit int) ([]models.UserSummary, error) {
	return s.authRepo.GetFollowing(userID, page, limit)
}

func (s *authService) SearchUsers(query string, page int, limit int) ([]models.UserSummary, int64, error) {
	return s.authRepo.SearchUsers(query, page, limit)
}
