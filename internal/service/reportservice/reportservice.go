package reportservice

import (
	"context"
	"fmt"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AccountLister interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

type BalanceReader interface {
	GetAllBalances(ctx context.Context, statuses []domain.PaymentStatus) (map[string]decimal.Decimal, error)
}

// AccountSummary is one row of the admin console.
type AccountSummary struct {
	Account   domain.Account
	Completed decimal.Decimal
	Open      decimal.Decimal
}

type Report struct {
	Accounts       []AccountSummary
	Admins         int
	TotalCompleted decimal.Decimal
	TotalOpen      decimal.Decimal
	GeneratedAt    time.Time
}

type Service struct {
	accounts AccountLister
	balances BalanceReader
	now      func() time.Time
}

func New(accounts AccountLister, balances BalanceReader) *Service {
	return &Service{
		accounts: accounts,
		balances: balances,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Build loads the account list and both balance aggregations concurrently.
// Accounts keep the listing order (newest first).
func (s *Service) Build(ctx context.Context, actor domain.Actor) (*Report, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var (
		accounts  []domain.Account
		completed map[string]decimal.Decimal
		open      map[string]decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.accounts.ListAccounts(gctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completed, err = s.balances.GetAllBalances(gctx, []domain.PaymentStatus{domain.StatusCompleted})
		if err != nil {
			return fmt.Errorf("completed balances: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		open, err = s.balances.GetAllBalances(gctx, domain.OpenStatuses())
		if err != nil {
			return fmt.Errorf("open balances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to build report", zap.Error(err))
		return nil, err
	}

	report := &Report{
		Accounts:       make([]AccountSummary, 0, len(accounts)),
		TotalCompleted: decimal.Zero,
		TotalOpen:      decimal.Zero,
		GeneratedAt:    s.now(),
	}
	for _, a := range accounts {
		row := AccountSummary{Account: a, Completed: completed[a.ID], Open: open[a.ID]}
		report.TotalCompleted = report.TotalCompleted.Add(row.Completed)
		report.TotalOpen = report.TotalOpen.Add(row.Open)
		if a.IsAdmin() {
			report.Admins++
		}
		report.Accounts = append(report.Accounts, row)
	}
	return report, nil
}
