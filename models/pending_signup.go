package models

import (
	"time"
)

// PendingSignup holds an unverified account until the emailed code is
// confirmed. The durable User row is only created after verification.
type PendingSignup struct {
	Model
	Username         string    `json:"username"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	Password         string    `json:"-"`
	VerificationCode string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// Expired reports whether the verification window has passed.
func (p *PendingSignup) Expired() bool {
	return time.Now().After(p.ExpiresAt)
}
