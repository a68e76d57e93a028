package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/api/middleware"
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"gorm.io/gorm"
)

// RecorderMailer captures magic links instead of sending mail.
type RecorderMailer struct {
	mu    sync.Mutex
	links []string
	fail  bool
}

func (m *RecorderMailer) SendMagicLink(_ context.Context, _ string, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("mail provider unavailable")
	}
	m.links = append(m.links, link)
	return nil
}

// LastLink returns the most recently captured magic link.
func (m *RecorderMailer) LastLink() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.links) == 0 {
		return ""
	}
	return m.links[len(m.links)-1]
}

// FailNext makes subsequent sends fail, simulating an unreachable provider.
func (m *RecorderMailer) FailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email string
	name  *string
	tier  domain.Tier
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email: fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		tier:  domain.TierFree,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = &name
	return b
}

// WithTier sets the subscription tier
func (b *UserBuilder) WithTier(tier domain.Tier) *UserBuilder {
	b.tier = tier
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	now := time.Now()
	user := &domain.User{
		ID:            uuid.New(),
		Email:         b.email,
		Name:          b.name,
		Tier:          b.tier,
		EmailVerified: &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// SignIn mints a session for the user and returns the session cookie.
func (ts *TestServer) SignIn(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()

	token, err := ts.Services.Auth.IssueSession(context.Background(), user)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}
