// Package app wires the services into one container shared by the HTTP
// server and the CLI.
package app

import (
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/service/account"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/pkg/service/suggest"
	"github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/gofiber/fiber/v2"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	JobStore suggest.Store
	// RateLimitStorage backs the HTTP rate limiter. Nil keeps counters in memory.
	RateLimitStorage fiber.Storage
	Logger           *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	AccountService     *account.Service
	CategoryService    *category.Service
	TransactionService *transaction.Service
	SuggestService     *suggest.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.JobStore == nil {
		deps.JobStore = suggest.NewMemoryStore()
	}
	return &App{
		Deps:               deps,
		Config:             cfg,
		AuthService:        auth.New(deps.Uow, cfg.Auth, cfg.Ledger, deps.Logger),
		UserService:        user.New(deps.Uow, deps.Logger),
		AccountService:     account.New(deps.Uow, cfg.Ledger, deps.Logger),
		CategoryService:    category.New(deps.Uow, deps.Logger),
		TransactionService: transaction.New(deps.Uow, cfg.Ledger, deps.Logger),
		SuggestService:     suggest.New(deps.JobStore, deps.Logger),
	}
}
