package main

import (
	"context"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/config"
	"github.com/evermark-app/vaultcore/internal/crypto"
	myHTTP "github.com/evermark-app/vaultcore/internal/handler/http"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/notify"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/internal/server"
	"github.com/evermark-app/vaultcore/internal/service"
	"github.com/evermark-app/vaultcore/internal/session"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
	"github.com/evermark-app/vaultcore/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vaultcore-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}
	repos := store.NewRepositories(db, log)

	verifiers, err := session.NewSQLiteVerifierStore(ctx, cfg.Storage.Device.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening device verifier store")
	}

	sessions := session.NewManager(crypto.NewKeyChain(), verifiers, log)
	machine := vault.NewMachine(sessions, repos.VaultConfigs, log)
	evaluator := access.NewEvaluator(repos.VaultConfigs, repos.RoleGrants, log)

	var codeVerifier secondfactor.Verifier
	if cfg.Notify.SecondFactorURL != "" {
		codeVerifier = secondfactor.NewRemoteVerifier(cfg.Notify.SecondFactorURL, log)
	} else {
		codeVerifier = secondfactor.NewLogVerifier(log)
	}
	gate := secondfactor.NewGate(repos.Users, codeVerifier, log)

	var notifier notify.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, log)
	} else {
		notifier = notify.NewNopNotifier()
	}
	protocol := recovery.NewProtocol(repos.VaultConfigs, repos.RecoveryRequests, notifier, log)

	services := service.NewServices(*repos, machine, evaluator, gate, protocol, crypto.NewFieldCipher(), *cfg, log)
	handler := myHTTP.NewHandler(services, log)

	ws := workers.NewWorkers(protocol, repos.RecoveryRequests, cfg.Workers, log)

	srv, err := server.NewServer(handler, ws, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
