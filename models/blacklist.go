package models

// Blacklist stores revoked access tokens until they expire.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"index;not null"`
	Email string `json:"email"`
}
