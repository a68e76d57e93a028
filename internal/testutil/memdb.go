package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	repoPostgres "github.com/intelligentspm/syndicate-studio/internal/repository/postgres"
	"github.com/intelligentspm/syndicate-studio/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryDB opens an isolated in-memory SQLite database with the full
// schema applied. Much faster than a container; service and repository tests
// use it, handler tests stay on real PostgreSQL.
func NewMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	// A single connection keeps concurrent statements serialized instead of
	// surfacing SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// NewMemoryServices wires the full service layer against an in-memory
// database and a RecorderMailer.
func NewMemoryServices(t *testing.T) (*service.Services, *repository.Repositories, *RecorderMailer, *gorm.DB) {
	t.Helper()

	db := NewMemoryDB(t)
	repos := repoPostgres.NewRepositories(db)
	mailer := &RecorderMailer{}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	services := service.NewServices(repos, TestConfig(), mailer, log)
	return services, repos, mailer, db
}
