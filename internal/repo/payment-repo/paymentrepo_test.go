package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columnNames = []string{"id", "account_id", "amount", "currency", "status", "reference", "notes", "payment_date", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func samplePayment(id string, status domain.PaymentStatus, day int) domain.Payment {
	return domain.Payment{
		ID:          id,
		AccountID:   "acc-1",
		Amount:      decimal.RequireFromString("25.00"),
		Currency:    "NZD",
		Status:      status,
		Reference:   "pickup 118",
		PaymentDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 3, day, 9, 15, 0, 0, time.UTC),
	}
}

func paymentRow(p domain.Payment) []any {
	return []any{p.ID, p.AccountID, p.Amount, p.Currency, string(p.Status), p.Reference, p.Notes, p.PaymentDate, p.CreatedAt, p.UpdatedAt}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	p := samplePayment("pay-1", domain.StatusPending, 4)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Payment saved",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments (" + columns + ")")).
					WithArgs(paymentRow(p)...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments (" + columns + ")")).
					WithArgs(paymentRow(p)...).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Create(context.Background(), &p)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	p := samplePayment("pay-1", domain.StatusProcessing, 4)
	query := regexp.QuoteMeta("SELECT " + columns + " FROM payments WHERE id = $1")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Payment
	}{
		{
			name: "Payment found",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("pay-1").
					WillReturnRows(pgxmock.NewRows(columnNames).AddRow(paymentRow(p)...))
			},
			result: &p,
		},
		{
			name: "Payment not found",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("pay-1").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("pay-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), "pay-1")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_ListByAccount(t *testing.T) {
	repo, mock := NewMock(t)
	newer := samplePayment("pay-2", domain.StatusCompleted, 5)
	older := samplePayment("pay-1", domain.StatusPending, 4)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM payments WHERE account_id = $1 ORDER BY payment_date DESC, created_at DESC")).
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows(columnNames).
			AddRow(paymentRow(newer)...).
			AddRow(paymentRow(older)...))

	payments, err := repo.ListByAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Payment{newer, older}, payments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByStatus(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE status = ANY($1) ORDER BY payment_date DESC, created_at DESC")).
		WithArgs([]string{"pending", "processing"}).
		WillReturnRows(pgxmock.NewRows(columnNames))

	payments, err := repo.ListByStatus(context.Background(), []domain.PaymentStatus{domain.StatusPending, domain.StatusProcessing})
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.NotNil(t, payments)
}

func TestRepository_ListRecent(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY payment_date DESC, created_at DESC LIMIT $1")).
		WithArgs(50).
		WillReturnError(errors.New("database error"))

	payments, err := repo.ListRecent(context.Background(), 50)
	assert.Error(t, err)
	assert.Nil(t, payments)
}

func TestRepository_SumByAccount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE account_id = $1 AND status = ANY($2)")).
		WithArgs("acc-1", []string{"completed"}).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("42.50")))

	total, err := repo.SumByAccount(context.Background(), "acc-1", []domain.PaymentStatus{domain.StatusCompleted})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.5").Equal(total))
}

func TestRepository_SumAll(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT account_id, SUM(amount) FROM payments WHERE status = ANY($1) GROUP BY account_id")).
		WithArgs([]string{"pending"}).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "sum"}).
			AddRow("acc-1", decimal.RequireFromString("25")).
			AddRow("acc-2", decimal.RequireFromString("7.25")))

	totals, err := repo.SumAll(context.Background(), []domain.PaymentStatus{domain.StatusPending})
	require.NoError(t, err)
	assert.Len(t, totals, 2)
	assert.True(t, decimal.RequireFromString("25").Equal(totals["acc-1"]))
	assert.True(t, decimal.RequireFromString("7.25").Equal(totals["acc-2"]))
}

func TestRepository_CountByAccount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM payments WHERE account_id = $1 AND status = ANY($2)")).
		WithArgs("acc-1", []string{"pending", "processing"}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByAccount(context.Background(), "acc-1", domain.OpenStatuses())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	today := domain.DateOf(now)
	query := regexp.QuoteMeta("UPDATE payments SET status = $1, updated_at = $2, payment_date = COALESCE($3, payment_date)")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
		anyErr    bool
	}{
		{
			name: "Status updated",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("completed", now, &today, pgxmock.AnyArg(), pgxmock.AnyArg(), "pay-1", "processing").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Status changed concurrently",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("completed", now, &today, pgxmock.AnyArg(), pgxmock.AnyArg(), "pay-1", "processing").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: domain.ErrIllegalTransition,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "pay-1", "processing").
					WillReturnError(errors.New("database error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateStatus(context.Background(), "pay-1", domain.StatusProcessing, domain.StatusPatch{
				Status:      domain.StatusCompleted,
				UpdatedAt:   now,
				PaymentDate: &today,
			})
			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_DeleteByAccount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM payments WHERE account_id = $1")).
		WithArgs("acc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	assert.NoError(t, repo.DeleteByAccount(context.Background(), "acc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
