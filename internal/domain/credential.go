package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken is a single-use, short-lived proof of email ownership.
// Only the SHA3-256 digest of the secret is ever stored.
type VerificationToken struct {
	Identifier string    `json:"identifier" gorm:"primaryKey"`
	TokenHash  string    `json:"-" gorm:"primaryKey"`
	Expires    time.Time `json:"expires" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session is an authenticated browser's standing credential, keyed by the
// digest of the cookie secret. A user may hold several concurrent sessions.
type Session struct {
	TokenHash string    `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Expires   time.Time `json:"expires" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry. Expired rows are
// treated as absent even when they still exist.
func (s *Session) Expired(now time.Time) bool {
	return !s.Expires.After(now)
}
