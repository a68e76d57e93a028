package postgres

import (
	"github.com/intelligentspm/syndicate-studio/internal/domain"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. Exposed separately so tests can run
// it against their own connections.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.VerificationToken{},
		&domain.Session{},
		&domain.Counsel{},
		&domain.VaultCollection{},
		&domain.VaultItem{},
		&domain.ChatMessage{},
		&domain.WorkingModel{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:              NewUserRepository(db),
		VerificationToken: NewVerificationTokenRepository(db),
		Session:           NewSessionRepository(db),
		Counsel:           NewCounselRepository(db),
		Collection:        NewCollectionRepository(db),
		ChatMessage:       NewChatMessageRepository(db),
		WorkingModel:      NewWorkingModelRepository(db),
	}
}
