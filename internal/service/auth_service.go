package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/config"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/email"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"
	"gorm.io/gorm"
)

// Policy constants, not user-configurable.
const (
	loginTokenTTL = 15 * time.Minute
	sessionTTL    = 30 * 24 * time.Hour
)

// SessionTTL is the lifetime of a minted session, exposed for the cookie
// contract at the HTTP layer.
const SessionTTL = sessionTTL

type AuthService struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.VerificationTokenRepository
	sessionRepo repository.SessionRepository
	mailer      email.Mailer
	cfg         *config.Config
	logger      *logrus.Logger
	validate    *validator.Validate
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.VerificationTokenRepository,
	sessionRepo repository.SessionRepository,
	mailer email.Mailer,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		sessionRepo: sessionRepo,
		mailer:      mailer,
		cfg:         cfg,
		logger:      logger,
		validate:    validator.New(),
	}
}

// NormalizeEmail lowercases and trims an address; identifiers are always
// stored in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newSecret returns a fresh high-entropy bearer secret, hex-encoded.
func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// hashSecret is the one-way commitment stored in place of a plaintext
// credential. Deterministic so rows can be looked up by digest; the secret's
// own entropy stands in for a salt.
func hashSecret(secret string) string {
	sum := sha3.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// CreateLoginToken issues a one-time sign-in token for the email, superseding
// any prior token for the same identifier. The returned plaintext secret is
// never persisted.
func (s *AuthService) CreateLoginToken(ctx context.Context, emailAddr string) (string, error) {
	emailAddr = NormalizeEmail(emailAddr)
	if err := s.validate.Var(emailAddr, "required,email"); err != nil {
		return "", domain.ErrInvalidEmail
	}

	token, err := newSecret()
	if err != nil {
		return "", err
	}

	// Replace runs delete-and-insert transactionally so the identifier never
	// has two live tokens, even when requests race.
	record := &domain.VerificationToken{
		Identifier: emailAddr,
		TokenHash:  hashSecret(token),
		Expires:    time.Now().Add(loginTokenTTL),
		CreatedAt:  time.Now(),
	}
	if err := s.tokenRepo.Replace(ctx, record); err != nil {
		return "", err
	}

	return token, nil
}

// RequestMagicLink issues a login token and mails the sign-in link.
func (s *AuthService) RequestMagicLink(ctx context.Context, emailAddr string) error {
	emailAddr = NormalizeEmail(emailAddr)

	token, err := s.CreateLoginToken(ctx, emailAddr)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/auth/verify?token=%s&email=%s",
		strings.TrimRight(s.cfg.AppURL, "/"), token, url.QueryEscape(emailAddr))

	if err := s.mailer.SendMagicLink(ctx, emailAddr, link); err != nil {
		s.logger.WithError(err).WithField("email", emailAddr).Error("magic link delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrEmailDelivery, err)
	}
	return nil
}

// VerifyMagicLink exchanges a valid one-time token for a standing session.
// The token is consumed atomically; not-found and expired fail identically
// with ErrLinkInvalid so the caller cannot probe which tokens exist.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token, emailAddr string) (string, *domain.User, error) {
	emailAddr = NormalizeEmail(emailAddr)
	if token == "" || emailAddr == "" {
		return "", nil, domain.ErrLinkInvalid
	}

	consumed, err := s.tokenRepo.Consume(ctx, emailAddr, hashSecret(token), time.Now())
	if err != nil {
		return "", nil, err
	}
	if !consumed {
		return "", nil, domain.ErrLinkInvalid
	}

	user, err := s.resolveOrCreateUser(ctx, emailAddr)
	if err != nil {
		return "", nil, err
	}

	sessionToken, err := s.IssueSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return sessionToken, user, nil
}

func (s *AuthService) resolveOrCreateUser(ctx context.Context, emailAddr string) (*domain.User, error) {
	now := time.Now()

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &domain.User{
			ID:            uuid.New(),
			Email:         emailAddr,
			Tier:          domain.TierFree,
			EmailVerified: &now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if user.EmailVerified == nil {
		user.EmailVerified = &now
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// IssueSession mints a session for the user and returns the plaintext secret,
// the only copy that ever exists outside the bearer's cookie.
func (s *AuthService) IssueSession(ctx context.Context, user *domain.User) (string, error) {
	secret, err := newSecret()
	if err != nil {
		return "", err
	}

	session := &domain.Session{
		TokenHash: hashSecret(secret),
		UserID:    user.ID,
		Expires:   time.Now().Add(sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}
	return secret, nil
}

// ResolveSession maps a cookie secret to its owning user. Expired sessions
// are treated as absent and lazily removed.
func (s *AuthService) ResolveSession(ctx context.Context, secret string) (*domain.User, error) {
	if secret == "" {
		return nil, domain.ErrSessionInvalid
	}

	hash := hashSecret(secret)
	session, err := s.sessionRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := s.sessionRepo.DeleteByTokenHash(ctx, hash); err != nil {
			s.logger.WithError(err).Warn("failed to clean up expired session")
		}
		return nil, domain.ErrSessionInvalid
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}
	return user, nil
}

// DestroySession removes the session for the given secret. Destroying an
// already-absent session is not an error.
func (s *AuthService) DestroySession(ctx context.Context, secret string) error {
	if secret == "" {
		return nil
	}
	return s.sessionRepo.DeleteByTokenHash(ctx, hashSecret(secret))
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// EnsureDevUser upserts the development sign-in account with the SPARCC tier.
func (s *AuthService) EnsureDevUser(ctx context.Context, emailAddr, name string) (*domain.User, error) {
	emailAddr = NormalizeEmail(emailAddr)
	now := time.Now()

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &domain.User{
		ID:            uuid.New(),
		Email:         emailAddr,
		Name:          &name,
		Tier:          domain.TierSparcc,
		EmailVerified: &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
