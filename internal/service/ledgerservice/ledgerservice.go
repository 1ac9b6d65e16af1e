package ledgerservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultRecentLimit = 50

// maxAmount is the first value that no longer fits NUMERIC(12,2).
var maxAmount = decimal.New(1, 10)

type Backends interface {
	Active(ctx context.Context) storage.Backend
}

type Service struct {
	backends        Backends
	defaultCurrency string
	defaultStatus   domain.PaymentStatus
	now             func() time.Time
}

func New(backends Backends, defaultCurrency string, defaultStatus domain.PaymentStatus) *Service {
	if !defaultStatus.Valid() {
		defaultStatus = domain.StatusPending
	}
	return &Service{
		backends:        backends,
		defaultCurrency: defaultCurrency,
		defaultStatus:   defaultStatus,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	// cents only; trailing zeros such as "25.000" are fine
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	amount = amount.Truncate(2)
	if !amount.IsPositive() || amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}

func normalizeCurrency(raw string) (string, bool) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if len(currency) != 3 {
		return "", false
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return currency, true
}

// RecordPayment adds a ledger entry for an existing account.
func (s *Service) RecordPayment(ctx context.Context, actor domain.Actor, np domain.NewPayment) (*domain.Payment, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	amount, err := parseAmount(np.Amount)
	if err != nil {
		return nil, err
	}
	status := np.Status
	if status == "" {
		status = s.defaultStatus
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	currencyInput := np.Currency
	if strings.TrimSpace(currencyInput) == "" {
		currencyInput = s.defaultCurrency
	}
	currency, ok := normalizeCurrency(currencyInput)
	if !ok {
		return nil, domain.ErrInvalidCurrency
	}

	backend := s.backends.Active(ctx)
	account, err := backend.Accounts.FindByID(ctx, np.AccountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	now := s.now()
	paymentDate := domain.DateOf(now)
	if np.PaymentDate != nil {
		paymentDate = domain.DateOf(*np.PaymentDate)
	}
	payment := &domain.Payment{
		ID:          uuid.NewString(),
		AccountID:   account.ID,
		Amount:      amount,
		Currency:    currency,
		Status:      status,
		Reference:   strings.TrimSpace(np.Reference),
		Notes:       strings.TrimSpace(np.Notes),
		PaymentDate: paymentDate,
		CreatedAt:   now,
	}
	if err := backend.Payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}
	zap.L().Info("payment recorded",
		zap.String("id", payment.ID), zap.String("account_id", payment.AccountID),
		zap.String("amount", payment.Amount.StringFixed(2)), zap.String("status", string(payment.Status)),
		zap.String("by", actor.AccountID))
	return payment, nil
}

// GetBalance sums the account's payments in the given statuses; no statuses
// means completed only.
func (s *Service) GetBalance(ctx context.Context, accountID string, statuses []domain.PaymentStatus) (decimal.Decimal, error) {
	statuses, err := checkStatuses(statuses)
	if err != nil {
		return decimal.Zero, err
	}
	return s.backends.Active(ctx).Payments.SumByAccount(ctx, accountID, statuses)
}

// GetAllBalances is GetBalance for every account at once. Accounts without a
// matching payment are absent.
func (s *Service) GetAllBalances(ctx context.Context, statuses []domain.PaymentStatus) (map[string]decimal.Decimal, error) {
	statuses, err := checkStatuses(statuses)
	if err != nil {
		return nil, err
	}
	return s.backends.Active(ctx).Payments.SumAll(ctx, statuses)
}

func checkStatuses(statuses []domain.PaymentStatus) ([]domain.PaymentStatus, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	return domain.NormalizeStatuses(statuses), nil
}

func (s *Service) ListPayments(ctx context.Context, accountID string) ([]domain.Payment, error) {
	return s.backends.Active(ctx).Payments.ListByAccount(ctx, accountID)
}

func (s *Service) ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Payment, error) {
	statuses, err := checkStatuses(statuses)
	if err != nil {
		return nil, err
	}
	return s.backends.Active(ctx).Payments.ListByStatus(ctx, statuses)
}

func (s *Service) ListRecent(ctx context.Context, n int) ([]domain.Payment, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	return s.backends.Active(ctx).Payments.ListRecent(ctx, n)
}

func (s *Service) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.backends.Active(ctx).Payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return payment, nil
}

// UpdatePaymentStatus moves a payment along its lifecycle. Completing a
// payment without an explicit date dates it today.
func (s *Service) UpdatePaymentStatus(ctx context.Context, actor domain.Actor, paymentID string,
	next domain.PaymentStatus, upd domain.StatusUpdate) (*domain.Payment, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	payments := s.backends.Active(ctx).Payments
	payment, err := payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	if !payment.Status.CanTransition(next) {
		zap.L().Info("illegal payment transition", zap.String("id", paymentID),
			zap.String("from", string(payment.Status)), zap.String("to", string(next)))
		return nil, domain.ErrIllegalTransition
	}

	now := s.now()
	patch := domain.StatusPatch{
		Status:    next,
		UpdatedAt: now,
		Reference: trimmed(upd.Reference),
		Notes:     trimmed(upd.Notes),
	}
	if upd.PaymentDate != nil {
		date := domain.DateOf(*upd.PaymentDate)
		patch.PaymentDate = &date
	} else if next == domain.StatusCompleted {
		today := domain.DateOf(now)
		patch.PaymentDate = &today
	}

	if err := payments.UpdateStatus(ctx, paymentID, payment.Status, patch); err != nil {
		return nil, err
	}
	zap.L().Info("payment status changed", zap.String("id", paymentID),
		zap.String("from", string(payment.Status)), zap.String("to", string(next)), zap.String("by", actor.AccountID))

	payment.Status = next
	payment.UpdatedAt = &now
	if patch.PaymentDate != nil {
		payment.PaymentDate = *patch.PaymentDate
	}
	if patch.Reference != nil {
		payment.Reference = *patch.Reference
	}
	if patch.Notes != nil {
		payment.Notes = *patch.Notes
	}
	return payment, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
