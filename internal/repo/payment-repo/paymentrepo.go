package paymentrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	columns = `id, account_id, amount, currency, status, reference, notes, payment_date, created_at, updated_at`
	order   = `ORDER BY payment_date DESC, created_at DESC`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	err := row.Scan(&p.ID, &p.AccountID, &p.Amount, &p.Currency, &status, &p.Reference, &p.Notes,
		&p.PaymentDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PaymentStatus(status)
	p.PaymentDate = domain.DateOf(p.PaymentDate)
	return &p, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read payment rows", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (r *Repository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query, p.ID, p.AccountID, p.Amount, p.Currency, string(p.Status), p.Reference, p.Notes,
		p.PaymentDate, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := scanPayment(r.db.QueryRow(ctx, "SELECT "+columns+" FROM payments WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID string) ([]domain.Payment, error) {
	return r.list(ctx, "SELECT "+columns+" FROM payments WHERE account_id = $1 "+order, accountID)
}

func (r *Repository) ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Payment, error) {
	return r.list(ctx, "SELECT "+columns+" FROM payments WHERE status = ANY($1) "+order, domain.StatusStrings(statuses))
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.Payment, error) {
	return r.list(ctx, "SELECT "+columns+" FROM payments "+order+" LIMIT $1", limit)
}

func (r *Repository) SumByAccount(ctx context.Context, accountID string, statuses []domain.PaymentStatus) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE account_id = $1 AND status = ANY($2)
	`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, accountID, domain.StatusStrings(statuses)).Scan(&total); err != nil {
		zap.L().Error("failed to sum payments", zap.String("account_id", accountID), zap.Error(err))
		return decimal.Zero, err
	}
	return total, nil
}

func (r *Repository) SumAll(ctx context.Context, statuses []domain.PaymentStatus) (map[string]decimal.Decimal, error) {
	query := `
		SELECT account_id, SUM(amount)
		FROM payments
		WHERE status = ANY($1)
		GROUP BY account_id
	`
	rows, err := r.db.Query(ctx, query, domain.StatusStrings(statuses))
	if err != nil {
		zap.L().Error("failed to sum payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			accountID string
			total     decimal.Decimal
		)
		if err := rows.Scan(&accountID, &total); err != nil {
			zap.L().Error("failed to scan payment total", zap.Error(err))
			return nil, err
		}
		totals[accountID] = total
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to read payment totals", zap.Error(err))
		return nil, err
	}
	return totals, nil
}

func (r *Repository) CountByAccount(ctx context.Context, accountID string, statuses []domain.PaymentStatus) (int, error) {
	query := `SELECT count(*) FROM payments WHERE account_id = $1 AND status = ANY($2)`
	var count int
	if err := r.db.QueryRow(ctx, query, accountID, domain.StatusStrings(statuses)).Scan(&count); err != nil {
		zap.L().Error("failed to count payments", zap.String("account_id", accountID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// UpdateStatus only applies while the payment is still in status from.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from domain.PaymentStatus, patch domain.StatusPatch) error {
	query := `
		UPDATE payments
		SET status = $1,
			updated_at = $2,
			payment_date = COALESCE($3, payment_date),
			reference = COALESCE($4, reference),
			notes = COALESCE($5, notes)
		WHERE id = $6 AND status = $7
	`
	tag, err := r.db.Exec(ctx, query, string(patch.Status), patch.UpdatedAt, patch.PaymentDate, patch.Reference, patch.Notes,
		id, string(from))
	if err != nil {
		zap.L().Error("failed to update payment status", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIllegalTransition
	}
	return nil
}

func (r *Repository) DeleteByAccount(ctx context.Context, accountID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM payments WHERE account_id = $1", accountID)
	if err != nil {
		zap.L().Error("failed to delete payments", zap.String("account_id", accountID), zap.Error(err))
		return err
	}
	return nil
}
