package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	apiError "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AuthRepository interface
type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	CreateSocialUser(params *models.CreateSocialUserParams) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	IsEmailExist(email string) error
	IsUsernameExist(username string) error
	UpdateUser(user *models.User) error
	UpdatePassword(email string, hashedPassword string) error
	SetResetToken(email string, token string) error
	FindUserByResetToken(token string) (*models.User, error)
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	UpsertPendingSignup(pending *models.PendingSignup) error
	FindPendingSignupByEmail(email string) (*models.PendingSignup, error)
	DeletePendingSignup(email string) error
	GetDeviceToken(userID uint) (string, error)
	Follow(followerID uint, userID uint) error
	Unfollow(followerID uint, userID uint) error
	IsFollowing(followerID uint, userID uint) (bool, error)
	GetFollowers(userID uint, page int, limit int) ([]models.UserSummary, error)
	GetFollowing(userID uint, page int, limit int) ([]models.UserSummary, error)
	SearchUsers(query string, page int, limit int) ([]models.UserSummary, int64, error)
}

// authRepo struct
type authRepo struct {
	DB *gorm.DB
}

// NewAuthRepo creates a new instance of AuthRepository
func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (a *authRepo) CreateSocialUser(params *models.CreateSocialUserParams) (*models.User, error) {
	user := &models.User{
		Username:       usernameFromEmail(params.Email),
		Email:          params.Email,
		Name:           params.Name,
		ProfilePicture: params.Picture,
		IsVerified:     true,
		IsSocial:       true,
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = "/default-avatar.png"
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create social user")
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	name := strings.SplitN(email, "@", 2)[0]
	return fmt.Sprintf("%s-%d", name, time.Now().UnixMilli()%100000)
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := a.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apiError.InActiveUserError
	}
	return &user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ? AND is_verified = ?", email, true).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return fmt.Errorf("duplicate key value: email already in use")
	}
	return nil
}

func (a *authRepo) IsUsernameExist(username string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return fmt.Errorf("duplicate key value: username already taken")
	}
	return nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) UpdatePassword(email string, hashedPassword string) error {
	return a.DB.Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"hashed_password": hashedPassword, "reset_token": ""}).Error
}

func (a *authRepo) SetResetToken(email string, token string) error {
	result := a.DB.Model(&models.User{}).Where("email = ?", email).Update("reset_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) FindUserByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	blacklist.Token = normalizeToken(blacklist.Token)
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	token = normalizeToken(token)
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("error checking token blacklist: %v", err)
		return false
	}
	return count > 0
}

func normalizeToken(token string) string {
	return strings.TrimSpace(token)
}

func (a *authRepo) UpsertPendingSignup(pending *models.PendingSignup) error {
	var existing models.PendingSignup
	err := a.DB.Where("email = ?", pending.Email).First(&existing).Error
	if err == nil {
		pending.ID = existing.ID
		return a.DB.Save(pending).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return a.DB.Create(pending).Error
}

func (a *authRepo) FindPendingSignupByEmail(email string) (*models.PendingSignup, error) {
	var pending models.PendingSignup
	if err := a.DB.Where("email = ?", email).First(&pending).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

func (a *authRepo) DeletePendingSignup(email string) error {
	return a.DB.Where("email = ?", email).Delete(&models.PendingSignup{}).Error
}

func (a *authRepo) GetDeviceToken(userID uint) (string, error) {
	var user models.User
	if err := a.DB.Select("device_token").First(&user, userID).Error; err != nil {
		return "", err
	}
	return user.DeviceToken, nil
}

func (a *authRepo) Follow(followerID uint, userID uint) error {
	return a.DB.Transaction(func(tx *gorm.DB) error {
		follower := models.User{Model: models.Model{ID: followerID}}
		followed := models.User{Model: models.Model{ID: userID}}
		if err := tx.Model(&follower).Association("Following").Append(&followed); err != nil {
			return errors.Wrap(err, "could not append follow edge")
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
	})
}

func (a *authRepo) Unfollow(followerID uint, userID uint) error {
	return a.DB.Transaction(func(tx *gorm.DB) error {
		follower := models.User{Model: models.Model{ID: followerID}}
		followed := models.User{Model: models.Model{ID: userID}}
		if err := tx.Model(&follower).Association("Following").Delete(&followed); err != nil {
			return errors.Wrap(err, "could not delete follow edge")
		}
		if err := tx.Model(&models.User{}).Where("id = ? AND followers_count > 0", userID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND following_count > 0", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error
	})
}

func (a *authRepo) IsFollowing(followerID uint, userID uint) (bool, error) {
	var count int64
	err := a.DB.Table("user_followers").
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *authRepo) GetFollowers(userID uint, page int, limit int) ([]models.UserSummary, error) {
	var followers []models.UserSummary
	err := a.DB.Table("users").
		Select("users.id, users.username, users.name, users.profile_picture, users.bio, users.followers_count").
		Joins("JOIN user_followers uf ON uf.follower_id = users.id").
		Where("uf.user_id = ?", userID).
		Order("users.username").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&followers).Error
	return followers, err
}

func (a *authRepo) GetFollowing(userID uint, page int, limit int) ([]models.UserSummary, error) {
	var following []models.UserSummary
	err := a.DB.Table("users").
		Select("users.id, users.username, users.name, users.profile_picture, users.bio, users.followers_count").
		Joins("JOIN user_followers uf ON uf.user_id = users.id").
		Where("uf.follower_id = ?", userID).
		Order("users.username").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&following).Error
	return following, err
}

func (a *authRepo) SearchUsers(query string, page int, limit int) ([]models.UserSummary, int64, error) {
	var users []models.UserSummary
	var total int64
	pattern := "%" + query + "%"

	base := a.DB.Model(&models.User{}).
		Where("is_verified = ?", true).
		Where("username ILIKE ? OR name ILIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Select("id, username, name, profile_picture, bio, followers_count").
		Order("followers_count DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&users).Error
	return users, total, err
}
