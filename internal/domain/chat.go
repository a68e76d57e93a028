package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of the advisor chat. User turns count against the
// tier's message cap; assistant turns are written by the generation worker.
type ChatMessage struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Role      string         `json:"role" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Context   datatypes.JSON `json:"context,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt"`
}
