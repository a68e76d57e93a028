package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tier is a subscription level controlling feature entitlements.
type Tier string

const (
	TierFree       Tier = "FREE"
	TierSparcc     Tier = "SPARCC"
	TierEnterprise Tier = "ENTERPRISE"
)

// ParseTier validates a tier name coming from an external source.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree, TierSparcc, TierEnterprise:
		return Tier(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

type User struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Name          *string    `json:"name"`
	Tier          Tier       `json:"tier" gorm:"type:varchar(16);not null;default:'FREE'"`
	EmailVerified *time.Time `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
