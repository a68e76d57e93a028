package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/config"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Billing event types emitted by the subscription provider.
const (
	BillingEventUpdated  = "subscription.updated"
	BillingEventCanceled = "subscription.canceled"
)

// BillingService applies tier-change events. The provider signs each event
// as an HS256 JWT over a shared secret; nothing is mutated until the
// signature and every claim check out.
type BillingService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewBillingService(userRepo repository.UserRepository, cfg *config.Config, logger *logrus.Logger) *BillingService {
	return &BillingService{userRepo: userRepo, cfg: cfg, logger: logger}
}

// ApplyTierChange verifies a signed billing event and updates the user's
// tier. subscription.updated applies the claimed tier; subscription.canceled
// downgrades to FREE.
func (s *BillingService) ApplyTierChange(ctx context.Context, signedEvent string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(signedEvent, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return []byte(s.cfg.BillingWebhookSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBillingEvent, err)
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidBillingEvent)
	}

	event, _ := claims["event"].(string)
	var tier domain.Tier
	switch event {
	case BillingEventUpdated:
		claimed, _ := claims["tier"].(string)
		tier, err = domain.ParseTier(claimed)
		if err != nil {
			return nil, err
		}
	case BillingEventCanceled:
		tier = domain.TierFree
	default:
		return nil, fmt.Errorf("%w: unknown event %q", domain.ErrInvalidBillingEvent, event)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	previous := user.Tier
	user.Tier = tier
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user": user.ID,
		"from": previous,
		"to":   tier,
	}).Info("applied billing tier change")
	return user, nil
}
