package accountrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/pg"
	"github.com/GlebRadaev/recyclepay/pkg/address"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	usernameConstraint = "accounts_username_key"

	columns = `id, username, email, password_hash, role,
		first_name, last_name, address, phone, marketing_opt_in,
		payout_method, bank_name, bank_account, child_name, child_account, kiwisaver_provider, kiwisaver_member_id,
		created_at, last_login_at, address_updated_at, payout_updated_at`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a      domain.Account
		role   string
		method string
	)
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role,
		&a.Profile.FirstName, &a.Profile.LastName, &a.Profile.Address, &a.Profile.Phone, &a.Profile.MarketingOptIn,
		&method, &a.Payout.BankName, &a.Payout.BankAccount, &a.Payout.ChildName, &a.Payout.ChildAccount,
		&a.Payout.KiwiSaverProvider, &a.Payout.KiwiSaverMemberID,
		&a.CreatedAt, &a.LastLoginAt, &a.AddressUpdatedAt, &a.PayoutUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Role = domain.Role(role)
	a.Payout.Method = domain.PayoutMethod(method)
	return &a, nil
}

func (r *Repository) findOne(ctx context.Context, query string, arg string) (*domain.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, "SELECT "+columns+" FROM accounts WHERE id = $1", id)
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, "SELECT "+columns+" FROM accounts WHERE username = $1", username)
}

func (r *Repository) AddressTaken(ctx context.Context, addr string, exceptID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE lower(regexp_replace(trim(address), '\s+', ' ', 'g')) = $1 AND id <> $2
		)
	`
	var taken bool
	if err := r.db.QueryRow(ctx, query, address.Normalize(addr), exceptID).Scan(&taken); err != nil {
		zap.L().Error("can't check address", zap.Error(err))
		return false, err
	}
	return taken, nil
}

func (r *Repository) Create(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Username, a.Email, a.PasswordHash, string(a.Role),
		a.Profile.FirstName, a.Profile.LastName, a.Profile.Address, a.Profile.Phone, a.Profile.MarketingOptIn,
		string(a.Payout.Method), a.Payout.BankName, a.Payout.BankAccount, a.Payout.ChildName, a.Payout.ChildAccount,
		a.Payout.KiwiSaverProvider, a.Payout.KiwiSaverMemberID,
		a.CreatedAt, a.LastLoginAt, a.AddressUpdatedAt, a.PayoutUpdatedAt,
	)
	if err != nil {
		if pg.IsUniqueViolation(err, usernameConstraint) {
			return domain.ErrDuplicateUsername
		}
		zap.L().Error("can't save account", zap.Error(err))
		return err
	}
	return nil
}

type setList struct {
	sets []string
	args []any
}

func (s *setList) add(column string, value any) {
	s.args = append(s.args, value)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (r *Repository) update(ctx context.Context, id string, s *setList) error {
	s.args = append(s.args, id)
	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d", strings.Join(s.sets, ", "), len(s.args))
	tag, err := r.db.Exec(ctx, query, s.args...)
	if err != nil {
		zap.L().Error("failed to update account", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id string, u domain.ProfileUpdate, at time.Time) error {
	s := &setList{}
	if u.FirstName != nil {
		s.add("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		s.add("last_name", *u.LastName)
	}
	if u.Email != nil {
		s.add("email", *u.Email)
	}
	if u.Phone != nil {
		s.add("phone", *u.Phone)
	}
	if u.MarketingOptIn != nil {
		s.add("marketing_opt_in", *u.MarketingOptIn)
	}
	if u.Address != nil {
		s.add("address", *u.Address)
		s.add("address_updated_at", at)
	}
	if len(s.sets) == 0 {
		account, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrAccountNotFound
		}
		return nil
	}
	return r.update(ctx, id, s)
}

// UpdatePayout writes the method and its own fields; fields of other methods
// keep their stored values.
func (r *Repository) UpdatePayout(ctx context.Context, id string, p domain.Payout, at time.Time) error {
	s := &setList{}
	s.add("payout_method", string(p.Method))
	switch p.Method {
	case domain.PayoutBank:
		s.add("bank_name", p.BankName)
		s.add("bank_account", p.BankAccount)
	case domain.PayoutChildAccount:
		s.add("child_name", p.ChildName)
		s.add("child_account", p.ChildAccount)
	case domain.PayoutKiwiSaver:
		s.add("kiwisaver_provider", p.KiwiSaverProvider)
		s.add("kiwisaver_member_id", p.KiwiSaverMemberID)
	}
	s.add("payout_updated_at", at)
	return r.update(ctx, id, s)
}

func (r *Repository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	s := &setList{}
	s.add("last_login_at", at)
	return r.update(ctx, id, s)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		zap.L().Error("can't delete account", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, "SELECT "+columns+" FROM accounts ORDER BY created_at DESC")
	if err != nil {
		zap.L().Error("can't get accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			zap.L().Error("can't scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't read account rows", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM accounts WHERE role = $1", string(domain.RoleAdmin)).Scan(&count)
	if err != nil {
		zap.L().Error("can't count admins", zap.Error(err))
		return 0, err
	}
	return count, nil
}
