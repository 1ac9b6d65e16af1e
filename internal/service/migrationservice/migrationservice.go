package migrationservice

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrRelationalUnavailable = errors.New("relational backend is unavailable")

type Backends interface {
	RelationalAvailable(ctx context.Context) bool
	Relational() storage.Backend
	FlatFile() storage.Backend
}

type Service struct {
	backends Backends
	workers  int
}

func New(backends Backends, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		backends: backends,
		workers:  workers,
	}
}

// MigrateAll copies every flat-file account whose username is not yet in the
// relational store. Source records are never removed, so running it again
// only skips. A failing record is counted and does not stop the others.
func (s *Service) MigrateAll(ctx context.Context) (domain.MigrationResult, error) {
	if !s.backends.RelationalAvailable(ctx) {
		return domain.MigrationResult{}, ErrRelationalUnavailable
	}

	accounts, err := s.backends.FlatFile().Accounts.List(ctx)
	if err != nil {
		return domain.MigrationResult{}, fmt.Errorf("read flat-file accounts: %w", err)
	}

	var migrated, skipped, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range accounts {
		account := &accounts[i]
		g.Go(func() error {
			ok, err := s.MigrateAccount(gCtx, account)
			switch {
			case err != nil:
				failed.Add(1)
				zap.L().Error("can't migrate account",
					zap.String("id", account.ID), zap.String("username", account.Username), zap.Error(err))
			case ok:
				migrated.Add(1)
			default:
				skipped.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	result := domain.MigrationResult{
		Migrated: int(migrated.Load()),
		Skipped:  int(skipped.Load()),
		Errors:   int(failed.Load()),
	}
	zap.L().Info("account migration finished",
		zap.Int("migrated", result.Migrated), zap.Int("skipped", result.Skipped), zap.Int("errors", result.Errors))
	return result, nil
}

// MigrateAccount inserts a copy of account into the relational store, keeping
// its id, creation time and password hash. It reports false when the username
// is already there.
func (s *Service) MigrateAccount(ctx context.Context, account *domain.Account) (bool, error) {
	target := s.backends.Relational().Accounts

	existing, err := target.FindByUsername(ctx, account.Username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	replica := *account
	if err := target.Create(ctx, &replica); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}
	zap.L().Debug("account migrated", zap.String("id", account.ID), zap.String("username", account.Username))
	return true, nil
}
