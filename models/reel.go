package models

import (
	"time"

	"github.com/google/uuid"
)

// Reel is a short-form video post.
type Reel struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         User      `json:"user" gorm:"foreignKey:UserID"`
	VideoURL     string    `json:"video_url" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Caption      string    `json:"caption" conform:"trim"`
	Music        string    `json:"music"`
	Duration     float64   `json:"duration"`
	AspectRatio  string    `json:"aspect_ratio" gorm:"default:9:16"`
	LikeCount    int       `json:"like_count" gorm:"default:0"`
	CommentCount int       `json:"comment_count" gorm:"default:0"`
	ShareCount   int       `json:"share_count" gorm:"default:0"`
	Views        int       `json:"views" gorm:"default:0"`
	Privacy      string    `json:"privacy" gorm:"default:public"`
	IsPublished  bool      `json:"is_published" gorm:"default:true"`
	IsArchived   bool      `json:"is_archived" gorm:"default:false"`
	Likes        []User    `json:"-" gorm:"many2many:reel_likes;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateReelRequest struct {
	VideoURL    string  `json:"video_url" binding:"required"`
	Caption     string  `json:"caption" conform:"trim"`
	Music       string  `json:"music"`
	Duration    float64 `json:"duration"`
	AspectRatio string  `json:"aspect_ratio"`
	Privacy     string  `json:"privacy"`
}
