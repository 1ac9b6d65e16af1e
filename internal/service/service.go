package service

import (
	"github.com/GlebRadaev/recyclepay/internal/config"
	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/GlebRadaev/recyclepay/internal/tokenstore"
	"github.com/GlebRadaev/recyclepay/pkg/auth"

	"github.com/GlebRadaev/recyclepay/internal/service/identityservice"
	"github.com/GlebRadaev/recyclepay/internal/service/ledgerservice"
	"github.com/GlebRadaev/recyclepay/internal/service/migrationservice"
	"github.com/GlebRadaev/recyclepay/internal/service/reportservice"
)

type Services struct {
	Identity  *identityservice.Service
	Migration *migrationservice.Service
	Ledger    *ledgerservice.Service
	Report    *reportservice.Service

	JWT    auth.JWTServiceInterface
	Tokens tokenstore.Store
}

func New(backends *storage.Selector, tokens tokenstore.Store, cfg *config.Config) *Services {
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	migrationService := migrationservice.New(backends, cfg.MigrationWorkers)
	identityService := identityservice.New(backends, migrationService, tokens, &auth.HashService{}, jwtService, cfg.TokenTTL)
	ledgerService := ledgerservice.New(backends, cfg.DefaultCurrency, domain.PaymentStatus(cfg.DefaultPaymentStatus))

	return &Services{
		Identity:  identityService,
		Migration: migrationService,
		Ledger:    ledgerService,
		Report:    reportservice.New(identityService, ledgerService),
		JWT:       jwtService,
		Tokens:    tokens,
	}
}
