package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ModelService struct {
	modelRepo repository.WorkingModelRepository
}

func NewModelService(modelRepo repository.WorkingModelRepository) *ModelService {
	return &ModelService{modelRepo: modelRepo}
}

func (s *ModelService) List(ctx context.Context) ([]*domain.WorkingModel, error) {
	return s.modelRepo.GetAll(ctx)
}

// Get returns a model definition; opening a model requires the
// workingModels capability.
func (s *ModelService) Get(ctx context.Context, user *domain.User, slug string) (*domain.WorkingModel, error) {
	if !domain.CanUseFeature(user.Tier, domain.FeatureWorkingModels) {
		return nil, &domain.TierLimitError{Feature: domain.FeatureWorkingModels}
	}

	model, err := s.modelRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrModelNotFound
		}
		return nil, err
	}
	return model, nil
}

// SyncCatalog upserts the built-in model catalog.
func (s *ModelService) SyncCatalog(ctx context.Context) (int, error) {
	now := time.Now()
	models := make([]*domain.WorkingModel, 0, len(catalog))
	for _, entry := range catalog {
		models = append(models, &domain.WorkingModel{
			ID:          uuid.New(),
			Slug:        entry.slug,
			Title:       entry.title,
			Description: entry.description,
			Category:    entry.category,
			InputSchema: datatypes.JSON(entry.inputSchema),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := s.modelRepo.UpsertMany(ctx, models); err != nil {
		return 0, err
	}
	return len(models), nil
}

type catalogEntry struct {
	slug        string
	title       string
	description string
	category    string
	inputSchema string
}

var catalog = []catalogEntry{
	{
		slug:        "payout-curve-sanity-check",
		title:       "Payout Curve Sanity Check",
		description: "Test if your payout curve creates rational behavior or gaming incentives. Inputs: quota, OTE, curve parameters. Outputs: payout at key attainment levels, ROI breakpoints, risk assessment.",
		category:    "PAYOUT_CURVE",
		inputSchema: `{
			"quota": {"type": "number", "label": "Annual Quota ($)", "required": true, "min": 10000},
			"ote": {"type": "number", "label": "On-Target Earnings ($)", "required": true, "min": 10000},
			"baseSalary": {"type": "number", "label": "Base Salary ($)", "required": true, "min": 0},
			"acceleratorThreshold": {"type": "number", "label": "Accelerator Starts At (%)", "required": true, "min": 0, "max": 200, "default": 100},
			"acceleratorRate": {"type": "number", "label": "Accelerator Rate (%)", "required": true, "min": 100, "max": 300, "default": 150},
			"cap": {"type": "number", "label": "Cap at Attainment (%, 0 = no cap)", "required": false, "min": 0, "max": 300, "default": 0}
		}`,
	},
	{
		slug:        "accelerator-threshold-impact",
		title:       "Accelerator Threshold Impact",
		description: "Model how changing accelerator threshold affects total comp cost and rep behavior. Compare scenarios side-by-side.",
		category:    "PAYOUT_CURVE",
		inputSchema: `{
			"quota": {"type": "number", "label": "Annual Quota ($)", "required": true, "min": 10000},
			"ote": {"type": "number", "label": "On-Target Earnings ($)", "required": true, "min": 10000},
			"currentThreshold": {"type": "number", "label": "Current Threshold (%)", "required": true, "min": 0, "max": 200, "default": 100},
			"currentRate": {"type": "number", "label": "Current Rate (%)", "required": true, "min": 100, "max": 300, "default": 150},
			"newThreshold": {"type": "number", "label": "Proposed Threshold (%)", "required": true, "min": 0, "max": 200},
			"newRate": {"type": "number", "label": "Proposed Rate (%)", "required": true, "min": 100, "max": 300},
			"teamSize": {"type": "number", "label": "Team Size", "required": true, "min": 1, "default": 10},
			"avgAttainment": {"type": "number", "label": "Avg Attainment (%)", "required": true, "min": 0, "max": 200, "default": 95}
		}`,
	},
	{
		slug:        "quota-relief-calculator",
		title:       "Quota Relief Calculator",
		description: "Calculate fair quota relief for territory changes, account losses, or market shifts. Ensures consistency and auditability.",
		category:    "QUOTA_RELIEF",
		inputSchema: `{
			"originalQuota": {"type": "number", "label": "Original Quota ($)", "required": true, "min": 0},
			"quarterProgress": {"type": "number", "label": "Quarter Progress (%)", "required": true, "min": 0, "max": 100, "default": 50},
			"accountsLost": {"type": "number", "label": "Accounts Lost ($)", "required": true, "min": 0},
			"accountsGained": {"type": "number", "label": "Accounts Gained ($)", "required": true, "min": 0, "default": 0},
			"currentAttainment": {"type": "number", "label": "Current Attainment ($)", "required": true, "min": 0},
			"reliefMethod": {"type": "select", "label": "Relief Method", "required": true, "options": ["PROPORTIONAL", "TIME_BASED", "PIPELINE_WEIGHTED"], "default": "PROPORTIONAL"}
		}`,
	},
}
