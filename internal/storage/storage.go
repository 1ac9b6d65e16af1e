package storage

import (
	"context"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountStore persists accounts. Lookups return nil, nil when nothing
// matches; writes addressing a missing account return domain.ErrAccountNotFound.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	AddressTaken(ctx context.Context, address string, exceptID string) (bool, error)
	Create(ctx context.Context, account *domain.Account) error
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, at time.Time) error
	UpdatePayout(ctx context.Context, id string, payout domain.Payout, at time.Time) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Account, error)
	CountAdmins(ctx context.Context) (int, error)
}

// PaymentStore persists ledger entries. Listings are ordered by payment date,
// then creation time, newest first.
type PaymentStore interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Payment, error)
	ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Payment, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Payment, error)
	SumByAccount(ctx context.Context, accountID string, statuses []domain.PaymentStatus) (decimal.Decimal, error)
	SumAll(ctx context.Context, statuses []domain.PaymentStatus) (map[string]decimal.Decimal, error)
	CountByAccount(ctx context.Context, accountID string, statuses []domain.PaymentStatus) (int, error)
	UpdateStatus(ctx context.Context, id string, from domain.PaymentStatus, patch domain.StatusPatch) error
	DeleteByAccount(ctx context.Context, accountID string) error
}

type Prober interface {
	Available(ctx context.Context) bool
}
