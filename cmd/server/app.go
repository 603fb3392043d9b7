package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/charitableio/charitable-api/internal/config"
	"github.com/charitableio/charitable-api/internal/platform/postgres"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService          auth.JWTService
	accountService      service.AccountService
	registrationService service.RegistrationService
	taskService         service.TaskService
}

// newApplication wires stores and services from the configuration and the
// open database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	accountStore := postgres.NewPostgresAccountStore(db, logger)
	benefactorStore := postgres.NewPostgresBenefactorStore(db, logger)
	charityStore := postgres.NewPostgresCharityStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	accountService, err := service.NewAccountService(
		accountStore,
		benefactorStore,
		charityStore,
		auth.NewBcryptHasher(0),
		auth.NewBcryptVerifier(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	registrationService, err := service.NewRegistrationService(db, benefactorStore, charityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create registration service: %w", err)
	}

	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:              cfg,
		logger:              logger,
		db:                  db,
		jwtService:          jwtService,
		accountService:      accountService,
		registrationService: registrationService,
		taskService:         taskService,
	}, nil
}
