// Package initializer wires the application dependencies: logger, seeded
// account store and the session service.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/anshusinha/bankist/infra/seed"
	"github.com/anshusinha/bankist/pkg/config"
	"github.com/anshusinha/bankist/pkg/repository"
	"github.com/anshusinha/bankist/pkg/service/session"
)

// Deps holds the initialized application dependencies.
type Deps struct {
	Logger  *slog.Logger
	Store   *repository.InMemoryStore
	Session *session.Service
}

// InitializeDependencies builds all dependencies from configuration. The
// store is populated exactly once, here; accounts are never added later.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	accounts, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return nil, fmt.Errorf("load seed accounts: %w", err)
	}
	store := repository.NewInMemoryStore(accounts)
	logger.Info("account store seeded", "accounts", store.Len())

	return &Deps{
		Logger:  logger,
		Store:   store,
		Session: session.NewService(store, logger),
	}, nil
}
