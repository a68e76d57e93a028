package domain

import (
	"time"

	"github.com/google/uuid"
)

// VaultCollection is a user-curated set of saved counsel. Creation counts
// against the tier's collections cap; the items inside do not.
type VaultCollection struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID   `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string      `json:"title" gorm:"not null"`
	Description *string     `json:"description"`
	Items       []VaultItem `json:"items" gorm:"foreignKey:CollectionID"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// VaultItem is one counsel saved into a collection. A counsel appears at most
// once per collection; re-saving is a no-op.
type VaultItem struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CollectionID uuid.UUID `json:"collectionId" gorm:"type:uuid;not null;uniqueIndex:idx_vault_items_collection_counsel"`
	CounselID    uuid.UUID `json:"counselId" gorm:"type:uuid;not null;uniqueIndex:idx_vault_items_collection_counsel"`
	Counsel      *Counsel  `json:"counsel,omitempty" gorm:"foreignKey:CounselID"`
	CreatedAt    time.Time `json:"createdAt"`
}
