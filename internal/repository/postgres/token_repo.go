package postgres

import (
	"context"
	"time"

	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"gorm.io/gorm"
)

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) *verificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

// Replace swaps out all prior tokens for the identifier inside one
// transaction. Without it, two concurrent requests for the same email could
// interleave their delete/insert pairs and leave two live tokens.
func (r *verificationTokenRepository) Replace(ctx context.Context, token *domain.VerificationToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.VerificationToken{}, "identifier = ?", token.Identifier).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// Consume deletes the matching live token in a single conditional statement.
// The expiry check lives inside the delete so an expired-but-present row and
// a missing row are indistinguishable to the caller, and two concurrent
// consumers of the same token get exactly one success between them.
func (r *verificationTokenRepository) Consume(ctx context.Context, identifier, tokenHash string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("identifier = ? AND token_hash = ? AND expires > ?", identifier, tokenHash, now).
		Delete(&domain.VerificationToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
