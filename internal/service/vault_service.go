package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"gorm.io/gorm"
)

var ErrMissingTitle = errors.New("collection title is required")

type VaultService struct {
	collectionRepo repository.CollectionRepository
	counselRepo    repository.CounselRepository
}

func NewVaultService(collectionRepo repository.CollectionRepository, counselRepo repository.CounselRepository) *VaultService {
	return &VaultService{collectionRepo: collectionRepo, counselRepo: counselRepo}
}

// CreateCollection enforces the tier's collections cap before inserting.
func (s *VaultService) CreateCollection(ctx context.Context, user *domain.User, title string, description *string) (*domain.VaultCollection, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	count, err := s.collectionRepo.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if domain.HasReachedLimit(user.Tier, domain.FeatureCollections, int(count)) {
		return nil, &domain.TierLimitError{
			Feature: domain.FeatureCollections,
			Limit:   domain.FeatureLimit(user.Tier, domain.FeatureCollections),
		}
	}

	collection := &domain.VaultCollection{
		ID:          uuid.New(),
		UserID:      user.ID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *VaultService) ListCollections(ctx context.Context, userID uuid.UUID) ([]*domain.VaultCollection, error) {
	return s.collectionRepo.GetByUserID(ctx, userID)
}

func (s *VaultService) DeleteCollection(ctx context.Context, user *domain.User, id uuid.UUID) error {
	collection, err := s.getOwned(ctx, user, id)
	if err != nil {
		return err
	}
	return s.collectionRepo.Delete(ctx, collection.ID)
}

// CollectionExport is the portable form of a collection.
type CollectionExport struct {
	Collection *domain.VaultCollection `json:"collection"`
	ExportedAt time.Time               `json:"exportedAt"`
}

// ExportCollection requires the exportCollections capability.
func (s *VaultService) ExportCollection(ctx context.Context, user *domain.User, id uuid.UUID) (*CollectionExport, error) {
	if !domain.CanUseFeature(user.Tier, domain.FeatureExportCollections) {
		return nil, &domain.TierLimitError{Feature: domain.FeatureExportCollections}
	}

	collection, err := s.getOwned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return &CollectionExport{Collection: collection, ExportedAt: time.Now()}, nil
}

// SaveCounsel puts a counsel into one of the user's collections. Saving a
// counsel that is already in the collection succeeds without a second copy.
func (s *VaultService) SaveCounsel(ctx context.Context, user *domain.User, collectionID uuid.UUID, counselSlug string) (*domain.VaultItem, error) {
	collection, err := s.getOwned(ctx, user, collectionID)
	if err != nil {
		return nil, err
	}

	counsel, err := s.counselRepo.GetBySlug(ctx, counselSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCounselNotFound
		}
		return nil, err
	}

	item := &domain.VaultItem{
		ID:           uuid.New(),
		CollectionID: collection.ID,
		CounselID:    counsel.ID,
		CreatedAt:    time.Now(),
	}
	if err := s.collectionRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	item.Counsel = counsel
	return item, nil
}

// UnsaveCounsel removes a counsel from the collection. Removing an absent
// item is not an error.
func (s *VaultService) UnsaveCounsel(ctx context.Context, user *domain.User, collectionID uuid.UUID, counselSlug string) error {
	collection, err := s.getOwned(ctx, user, collectionID)
	if err != nil {
		return err
	}

	counsel, err := s.counselRepo.GetBySlug(ctx, counselSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCounselNotFound
		}
		return err
	}

	return s.collectionRepo.RemoveItem(ctx, collection.ID, counsel.ID)
}

func (s *VaultService) getOwned(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.VaultCollection, error) {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, err
	}
	if collection.UserID != user.ID {
		return nil, domain.ErrNotCollectionOwner
	}
	return collection, nil
}
