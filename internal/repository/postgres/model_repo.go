package postgres

import (
	"context"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type workingModelRepository struct {
	db *gorm.DB
}

func NewWorkingModelRepository(db *gorm.DB) *workingModelRepository {
	return &workingModelRepository{db: db}
}

func (r *workingModelRepository) UpsertMany(ctx context.Context, models []*domain.WorkingModel) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "category", "input_schema", "updated_at"}),
	}).Create(models).Error
}

func (r *workingModelRepository) GetAll(ctx context.Context) ([]*domain.WorkingModel, error) {
	var models []*domain.WorkingModel
	err := r.db.WithContext(ctx).Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (r *workingModelRepository) GetBySlug(ctx context.Context, slug string) (*domain.WorkingModel, error) {
	var model domain.WorkingModel
	err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}
