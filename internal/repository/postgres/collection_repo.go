package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *collectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *domain.VaultCollection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultCollection, error) {
	var collection domain.VaultCollection
	err := r.db.WithContext(ctx).
		Preload("Items.Counsel").
		First(&collection, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.VaultCollection, error) {
	var collections []*domain.VaultCollection
	err := r.db.WithContext(ctx).
		Preload("Items.Counsel").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.VaultCollection{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Delete removes the collection and its saved items together.
func (r *collectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.VaultItem{}, "collection_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.VaultCollection{}, "id = ?", id).Error
	})
}

// AddItem inserts the saved counsel; the (collection, counsel) unique index
// plus DO NOTHING makes a repeat save idempotent.
func (r *collectionRepository) AddItem(ctx context.Context, item *domain.VaultItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}, {Name: "counsel_id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (r *collectionRepository) RemoveItem(ctx context.Context, collectionID, counselID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.VaultItem{}, "collection_id = ? AND counsel_id = ?", collectionID, counselID).Error
}
