package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Counsel is a published advisory article in the public library.
type Counsel struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Slug       string         `json:"slug" gorm:"uniqueIndex;not null"`
	Title      string         `json:"title" gorm:"not null"`
	OneLiner   string         `json:"oneLiner"`
	Channel    string         `json:"channel"`
	Difficulty string         `json:"difficulty"`
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	BodyMD     string         `json:"bodyMd" gorm:"type:text"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
