package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SocialLinks struct {
	Youtube   string `json:"youtube"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Tiktok    string `json:"tiktok"`
	Facebook  string `json:"facebook"`
}

type User struct {
	Model
	Username          string      `json:"username" gorm:"uniqueIndex;not null" binding:"required,min=3,max=30" conform:"trim"`
	Email             string      `json:"email" gorm:"uniqueIndex;not null" binding:"required,email" conform:"email"`
	Password          string      `json:"password,omitempty" gorm:"-"`
	HashedPassword    string      `json:"-"`
	Name              string      `json:"name" conform:"trim"`
	Bio               string      `json:"bio"`
	Website           string      `json:"website" conform:"trim"`
	ProfilePicture    string      `json:"profile_picture" gorm:"default:/default-avatar.png"`
	CoverPhoto        string      `json:"cover_photo" gorm:"default:/default-cover.jpg"`
	IsVerified        bool        `json:"is_verified" gorm:"default:false"`
	IsActive          bool        `json:"is_active" gorm:"default:true"`
	IsSocial          bool        `json:"-"`
	Role              string      `json:"role" gorm:"default:user"`
	ProfileVisibility string      `json:"profile_visibility" gorm:"default:public"`
	DeviceToken       string      `json:"-"`
	ResetToken        string      `json:"-"`
	LastActive        time.Time   `json:"last_active"`
	FollowersCount    int         `json:"followers_count" gorm:"default:0"`
	FollowingCount    int         `json:"following_count" gorm:"default:0"`
	ChannelID         *uuid.UUID  `json:"channel_id" gorm:"type:uuid"`
	SocialLinks       SocialLinks `json:"social_links" gorm:"embedded;embeddedPrefix:social_"`
	Followers         []*User     `json:"-" gorm:"many2many:user_followers;joinForeignKey:UserID;joinReferences:FollowerID"`
	Following         []*User     `json:"-" gorm:"many2many:user_followers;joinForeignKey:FollowerID;joinReferences:UserID"`
}

// VerifyPassword compares the given plain password with the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// UserSummary is the trimmed user shape embedded in lists (followers,
// search results, conversation participants).
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
	Bio            string `json:"bio"`
	FollowersCount int    `json:"followers_count"`
}

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required,min=8"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email" conform:"email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type EditProfileRequest struct {
	Name              *string      `json:"name" conform:"trim"`
	Bio               *string      `json:"bio"`
	Website           *string      `json:"website" conform:"trim"`
	ProfileVisibility *string      `json:"profile_visibility" binding:"omitempty,oneof=public private"`
	SocialLinks       *SocialLinks `json:"social_links"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email" conform:"email"`
}

type ResetPassword struct {
	Password string `json:"password" binding:"required,min=8"`
}

// CreateSocialUserParams carries the profile returned by the Google
// userinfo endpoint.
type CreateSocialUserParams struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
