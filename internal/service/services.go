package service

import (
	"github.com/intelligentspm/syndicate-studio/internal/config"
	"github.com/intelligentspm/syndicate-studio/internal/email"
	"github.com/intelligentspm/syndicate-studio/internal/repository"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Auth    *AuthService
	Chat    *ChatService
	Vault   *VaultService
	Model   *ModelService
	Counsel *CounselService
	Billing *BillingService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, mailer email.Mailer, logger *logrus.Logger) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.VerificationToken, repos.Session, mailer, cfg, logger),
		Chat:    NewChatService(repos.ChatMessage),
		Vault:   NewVaultService(repos.Collection, repos.Counsel),
		Model:   NewModelService(repos.WorkingModel),
		Counsel: NewCounselService(repos.Counsel),
		Billing: NewBillingService(repos.User, cfg, logger),
	}
}
