package postgres

import (
	"context"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"gorm.io/gorm"
)

type counselRepository struct {
	db *gorm.DB
}

func NewCounselRepository(db *gorm.DB) *counselRepository {
	return &counselRepository{db: db}
}

func (r *counselRepository) Create(ctx context.Context, counsel *domain.Counsel) error {
	return r.db.WithContext(ctx).Create(counsel).Error
}

func (r *counselRepository) GetAll(ctx context.Context) ([]*domain.Counsel, error) {
	var counsel []*domain.Counsel
	err := r.db.WithContext(ctx).Order("title ASC").Find(&counsel).Error
	if err != nil {
		return nil, err
	}
	return counsel, nil
}

func (r *counselRepository) GetBySlug(ctx context.Context, slug string) (*domain.Counsel, error) {
	var counsel domain.Counsel
	err := r.db.WithContext(ctx).First(&counsel, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &counsel, nil
}
