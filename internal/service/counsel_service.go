package service

import (
	"context"
	"errors"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"gorm.io/gorm"
)

type CounselService struct {
	counselRepo repository.CounselRepository
}

func NewCounselService(counselRepo repository.CounselRepository) *CounselService {
	return &CounselService{counselRepo: counselRepo}
}

func (s *CounselService) List(ctx context.Context) ([]*domain.Counsel, error) {
	return s.counselRepo.GetAll(ctx)
}

func (s *CounselService) GetBySlug(ctx context.Context, slug string) (*domain.Counsel, error) {
	counsel, err := s.counselRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCounselNotFound
		}
		return nil, err
	}
	return counsel, nil
}
