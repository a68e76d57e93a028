package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"gorm.io/gorm"
)

type chatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *chatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *chatMessageRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatMessage, error) {
	var messages []*domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUserMessages counts only the user's own turns; assistant turns do not
// consume the tier allowance.
func (r *chatMessageRepository) CountUserMessages(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("user_id = ? AND role = ?", userID, domain.ChatRoleUser).
		Count(&count).Error
	return count, err
}
