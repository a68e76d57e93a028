package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type VerificationTokenRepository interface {
	// Replace removes every token for the identifier and inserts the new one
	// in a single transaction, so an identifier never has two live tokens
	// even under concurrent requests.
	Replace(ctx context.Context, token *domain.VerificationToken) error
	// Consume atomically deletes the live token matching (identifier, hash).
	// It returns false when no unexpired row matched, so two concurrent
	// callers can never both succeed for the same token.
	Consume(ctx context.Context, identifier, tokenHash string, now time.Time) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type CounselRepository interface {
	Create(ctx context.Context, counsel *domain.Counsel) error
	GetAll(ctx context.Context) ([]*domain.Counsel, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Counsel, error)
}

type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.VaultCollection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultCollection, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.VaultCollection, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddItem saves a counsel into a collection; saving the same counsel
	// twice is a no-op.
	AddItem(ctx context.Context, item *domain.VaultItem) error
	RemoveItem(ctx context.Context, collectionID, counselID uuid.UUID) error
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatMessage, error)
	CountUserMessages(ctx context.Context, userID uuid.UUID) (int64, error)
}

type WorkingModelRepository interface {
	UpsertMany(ctx context.Context, models []*domain.WorkingModel) error
	GetAll(ctx context.Context) ([]*domain.WorkingModel, error)
	GetBySlug(ctx context.Context, slug string) (*domain.WorkingModel, error)
}

type Repositories struct {
	User              UserRepository
	VerificationToken VerificationTokenRepository
	Session           SessionRepository
	Counsel           CounselRepository
	Collection        CollectionRepository
	ChatMessage       ChatMessageRepository
	WorkingModel      WorkingModelRepository
}
