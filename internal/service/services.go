package service

import (
	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/config"
	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
)

type Services struct {
	AuthService     AuthService
	VaultService    VaultService
	RecoveryService RecoveryService
	GrantService    GrantService
}

func NewServices(
	repos store.Repositories,
	machine *vault.Machine,
	evaluator *access.Evaluator,
	gate *secondfactor.Gate,
	protocol *recovery.Protocol,
	cipher crypto.FieldCipher,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	sessions := newSessionRegistry(machine)

	return &Services{
		AuthService: NewAuthService(repos.Users, cfg.App, logger),
		VaultService: NewVaultService(
			sessions, machine, gate, cipher,
			repos.Users, repos.VaultConfigs,
			cfg.App.DefaultGracePeriodDays, logger,
		),
		RecoveryService: NewRecoveryService(
			sessions, machine, protocol, gate, evaluator,
			repos.Users, repos.RecoveryRequests,
			cfg.App.DefaultGracePeriodDays, logger,
		),
		GrantService: NewGrantService(
			repos.RoleGrants, repos.VaultConfigs, repos.Users, evaluator, logger,
		),
	}
}
