package filerepo

import (
	"context"
	"sort"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/filestore"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentRepository struct {
	file *filestore.Collection[paymentRecord]
}

func newPayments(file *filestore.Collection[paymentRecord]) *PaymentRepository {
	return &PaymentRepository{
		file: file,
	}
}

func (r *PaymentRepository) load() ([]domain.Payment, error) {
	records, err := r.file.Load()
	if err != nil {
		zap.L().Error("can't read payments file", zap.String("path", r.file.Path()), zap.Error(err))
		return nil, err
	}
	payments := make([]domain.Payment, 0, len(records))
	for _, rec := range records {
		payments = append(payments, rec.toDomain())
	}
	return payments, nil
}

func (r *PaymentRepository) filter(keep func(domain.Payment) bool) ([]domain.Payment, error) {
	payments, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(payments []domain.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		a, b := payments[i], payments[j]
		if !a.PaymentDate.Equal(b.PaymentDate) {
			return a.PaymentDate.After(b.PaymentDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func statusSet(statuses []domain.PaymentStatus) map[domain.PaymentStatus]struct{} {
	set := make(map[domain.PaymentStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

func (r *PaymentRepository) Create(_ context.Context, p *domain.Payment) error {
	err := r.file.Update(func(records []paymentRecord) ([]paymentRecord, error) {
		return append(records, toPaymentRecord(p)), nil
	})
	if err != nil {
		zap.L().Error("can't save payment", zap.String("path", r.file.Path()), zap.Error(err))
	}
	return err
}

func (r *PaymentRepository) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	payments, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepository) ListByAccount(_ context.Context, accountID string) ([]domain.Payment, error) {
	return r.filter(func(p domain.Payment) bool { return p.AccountID == accountID })
}

func (r *PaymentRepository) ListByStatus(_ context.Context, statuses []domain.PaymentStatus) ([]domain.Payment, error) {
	set := statusSet(statuses)
	return r.filter(func(p domain.Payment) bool {
		_, ok := set[p.Status]
		return ok
	})
}

func (r *PaymentRepository) ListRecent(_ context.Context, limit int) ([]domain.Payment, error) {
	payments, err := r.filter(func(domain.Payment) bool { return true })
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(payments) > limit {
		payments = payments[:limit]
	}
	return payments, nil
}

func (r *PaymentRepository) SumByAccount(_ context.Context, accountID string, statuses []domain.PaymentStatus) (decimal.Decimal, error) {
	payments, err := r.load()
	if err != nil {
		return decimal.Zero, err
	}
	set := statusSet(statuses)
	total := decimal.Zero
	for _, p := range payments {
		if _, ok := set[p.Status]; ok && p.AccountID == accountID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (r *PaymentRepository) SumAll(_ context.Context, statuses []domain.PaymentStatus) (map[string]decimal.Decimal, error) {
	payments, err := r.load()
	if err != nil {
		return nil, err
	}
	set := statusSet(statuses)
	totals := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if _, ok := set[p.Status]; ok {
			totals[p.AccountID] = totals[p.AccountID].Add(p.Amount)
		}
	}
	return totals, nil
}

func (r *PaymentRepository) CountByAccount(_ context.Context, accountID string, statuses []domain.PaymentStatus) (int, error) {
	payments, err := r.load()
	if err != nil {
		return 0, err
	}
	set := statusSet(statuses)
	count := 0
	for _, p := range payments {
		if _, ok := set[p.Status]; ok && p.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

// UpdateStatus only applies while the payment is still in status from.
func (r *PaymentRepository) UpdateStatus(_ context.Context, id string, from domain.PaymentStatus, patch domain.StatusPatch) error {
	err := r.file.Update(func(records []paymentRecord) ([]paymentRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			if domain.PaymentStatus(records[i].Status) != from {
				return nil, domain.ErrIllegalTransition
			}
			updatedAt := patch.UpdatedAt.UTC()
			records[i].Status = string(patch.Status)
			records[i].UpdatedAt = &updatedAt
			if patch.PaymentDate != nil {
				records[i].PaymentDate = patch.PaymentDate.Format(dateLayout)
			}
			if patch.Reference != nil {
				records[i].Reference = *patch.Reference
			}
			if patch.Notes != nil {
				records[i].Notes = *patch.Notes
			}
			return records, nil
		}
		return nil, domain.ErrPaymentNotFound
	})
	if err != nil && domain.KindOf(err) == "" {
		zap.L().Error("failed to update payment status", zap.String("id", id), zap.Error(err))
	}
	return err
}

func (r *PaymentRepository) DeleteByAccount(_ context.Context, accountID string) error {
	err := r.file.Update(func(records []paymentRecord) ([]paymentRecord, error) {
		kept := records[:0]
		for _, rec := range records {
			if rec.AccountID != accountID {
				kept = append(kept, rec)
			}
		}
		return kept, nil
	})
	if err != nil {
		zap.L().Error("failed to delete payments", zap.String("account_id", accountID), zap.Error(err))
	}
	return err
}
