package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WorkingModel is an interactive SPM calculator. The catalog is public but
// running a model requires the workingModels capability.
type WorkingModel struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category"`
	InputSchema datatypes.JSON `json:"inputSchema" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
