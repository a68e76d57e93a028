package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"gorm.io/datatypes"
)

var ErrMissingContent = errors.New("message content is required")

const chatHistoryLimit = 100

type ChatService struct {
	chatRepo repository.ChatMessageRepository
}

func NewChatService(chatRepo repository.ChatMessageRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo}
}

// PostMessage stores a user turn after checking the tier's message cap.
// Response generation is handled by the external advisor worker.
func (s *ChatService) PostMessage(ctx context.Context, user *domain.User, content string, msgContext datatypes.JSON) (*domain.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMissingContent
	}

	count, err := s.chatRepo.CountUserMessages(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if domain.HasReachedLimit(user.Tier, domain.FeatureChatMessages, int(count)) {
		return nil, &domain.TierLimitError{
			Feature: domain.FeatureChatMessages,
			Limit:   domain.FeatureLimit(user.Tier, domain.FeatureChatMessages),
		}
	}

	message := &domain.ChatMessage{
		ID:        uuid.New(),
		UserID:    user.ID,
		Role:      domain.ChatRoleUser,
		Content:   content,
		Context:   msgContext,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) History(ctx context.Context, userID uuid.UUID) ([]*domain.ChatMessage, error) {
	return s.chatRepo.GetByUserID(ctx, userID, chatHistoryLimit)
}

// Remaining returns how many user turns are left, nil meaning unlimited.
func (s *ChatService) Remaining(ctx context.Context, user *domain.User) (*int, error) {
	limit := domain.FeatureLimit(user.Tier, domain.FeatureChatMessages)
	if limit == nil {
		return nil, nil
	}

	count, err := s.chatRepo.CountUserMessages(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	remaining := *limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining, nil
}
