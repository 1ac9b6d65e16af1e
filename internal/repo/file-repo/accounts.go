package filerepo

import (
	"context"
	"sort"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/filestore"
	"github.com/GlebRadaev/recyclepay/pkg/address"
	"go.uber.org/zap"
)

type AccountRepository struct {
	file *filestore.Collection[accountRecord]
}

func newAccounts(file *filestore.Collection[accountRecord]) *AccountRepository {
	return &AccountRepository{
		file: file,
	}
}

func (r *AccountRepository) load() ([]accountRecord, error) {
	records, err := r.file.Load()
	if err != nil {
		zap.L().Error("can't read accounts file", zap.String("path", r.file.Path()), zap.Error(err))
		return nil, err
	}
	return records, nil
}

func (r *AccountRepository) find(match func(accountRecord) bool) (*domain.Account, error) {
	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if match(rec) {
			account := rec.toDomain()
			return &account, nil
		}
	}
	return nil, nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	return r.find(func(rec accountRecord) bool { return rec.ID == id })
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	return r.find(func(rec accountRecord) bool { return rec.Username == username })
}

func (r *AccountRepository) AddressTaken(_ context.Context, addr string, exceptID string) (bool, error) {
	records, err := r.load()
	if err != nil {
		return false, err
	}
	want := address.Normalize(addr)
	for _, rec := range records {
		if rec.ID != exceptID && address.Normalize(rec.Address) == want {
			return true, nil
		}
	}
	return false, nil
}

// Create checks the username and appends the record under one file lock.
func (r *AccountRepository) Create(_ context.Context, a *domain.Account) error {
	err := r.file.Update(func(records []accountRecord) ([]accountRecord, error) {
		for _, rec := range records {
			if rec.Username == a.Username {
				return nil, domain.ErrDuplicateUsername
			}
		}
		return append(records, toAccountRecord(a)), nil
	})
	if err != nil && domain.KindOf(err) == "" {
		zap.L().Error("can't save account", zap.String("path", r.file.Path()), zap.Error(err))
	}
	return err
}

func (r *AccountRepository) update(id string, fn func(rec *accountRecord)) error {
	err := r.file.Update(func(records []accountRecord) ([]accountRecord, error) {
		for i := range records {
			if records[i].ID == id {
				fn(&records[i])
				return records, nil
			}
		}
		return nil, domain.ErrAccountNotFound
	})
	if err != nil && domain.KindOf(err) == "" {
		zap.L().Error("failed to update account", zap.String("id", id), zap.Error(err))
	}
	return err
}

func (r *AccountRepository) UpdateProfile(_ context.Context, id string, u domain.ProfileUpdate, at time.Time) error {
	at = at.UTC()
	return r.update(id, func(rec *accountRecord) {
		if u.FirstName != nil {
			rec.FirstName = *u.FirstName
		}
		if u.LastName != nil {
			rec.LastName = *u.LastName
		}
		if u.Email != nil {
			rec.Email = *u.Email
		}
		if u.Phone != nil {
			rec.Phone = *u.Phone
		}
		if u.MarketingOptIn != nil {
			rec.MarketingOptIn = *u.MarketingOptIn
		}
		if u.Address != nil {
			rec.Address = *u.Address
			rec.AddressUpdatedAt = &at
		}
	})
}

func (r *AccountRepository) UpdatePayout(_ context.Context, id string, p domain.Payout, at time.Time) error {
	at = at.UTC()
	return r.update(id, func(rec *accountRecord) {
		rec.PayoutMethod = string(p.Method)
		switch p.Method {
		case domain.PayoutBank:
			rec.BankName, rec.BankAccount = p.BankName, p.BankAccount
		case domain.PayoutChildAccount:
			rec.ChildName, rec.ChildAccount = p.ChildName, p.ChildAccount
		case domain.PayoutKiwiSaver:
			rec.KiwiSaverProvider, rec.KiwiSaverMemberID = p.KiwiSaverProvider, p.KiwiSaverMemberID
		}
		rec.PayoutUpdatedAt = &at
	})
}

func (r *AccountRepository) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	at = at.UTC()
	return r.update(id, func(rec *accountRecord) {
		rec.LastLoginAt = &at
	})
}

func (r *AccountRepository) Delete(_ context.Context, id string) error {
	err := r.file.Update(func(records []accountRecord) ([]accountRecord, error) {
		for i := range records {
			if records[i].ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, domain.ErrAccountNotFound
	})
	if err != nil && domain.KindOf(err) == "" {
		zap.L().Error("can't delete account", zap.String("id", id), zap.Error(err))
	}
	return err
}

func (r *AccountRepository) List(_ context.Context) ([]domain.Account, error) {
	records, err := r.load()
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(records))
	for _, rec := range records {
		accounts = append(accounts, rec.toDomain())
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r *AccountRepository) CountAdmins(_ context.Context) (int, error) {
	records, err := r.load()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if domain.Role(rec.Role) == domain.RoleAdmin {
			count++
		}
	}
	return count, nil
}
