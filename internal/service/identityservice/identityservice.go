package identityservice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/GlebRadaev/recyclepay/pkg/address"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Backends interface {
	Active(ctx context.Context) storage.Backend
	FlatFile() storage.Backend
}

type Migrator interface {
	MigrateAll(ctx context.Context) (domain.MigrationResult, error)
	MigrateAccount(ctx context.Context, account *domain.Account) (bool, error)
}

type TokenStore interface {
	Add(ctx context.Context, accountID, tokenID string, ttl time.Duration) error
	Revoke(ctx context.Context, accountID, tokenID string) error
	RevokeAll(ctx context.Context, accountID string) error
}

type Service struct {
	backends    Backends
	migrator    Migrator
	tokens      TokenStore
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func New(backends Backends, migrator Migrator, tokens TokenStore, hashService auth.HashServiceInterface,
	jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		backends:    backends,
		migrator:    migrator,
		tokens:      tokens,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateAccount opens an account in the active backend. Address uniqueness is
// left to Register.
func (s *Service) CreateAccount(ctx context.Context, na domain.NewAccount) (*domain.Account, error) {
	username := strings.TrimSpace(na.Username)
	if username == "" {
		return nil, domain.ErrEmptyUsername
	}
	if na.Password == "" {
		return nil, domain.ErrEmptyPassword
	}
	role := na.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if na.Address != nil && !na.Address.Complete() {
		return nil, domain.ErrIncompleteAddress
	}

	backend := s.backends.Active(ctx)
	existing, err := backend.Accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if existing != nil {
		zap.L().Info("username already taken", zap.String("username", username))
		return nil, domain.ErrDuplicateUsername
	}

	hashedPassword, err := s.hashService.HashPassword(na.Password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	now := s.now()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(na.Email),
		PasswordHash: hashedPassword,
		Role:         role,
		Profile: domain.Profile{
			FirstName:      strings.TrimSpace(na.FirstName),
			LastName:       strings.TrimSpace(na.LastName),
			Phone:          strings.TrimSpace(na.Phone),
			MarketingOptIn: na.MarketingOptIn,
		},
		CreatedAt: now,
	}
	if na.Address != nil {
		account.Profile.Address = address.Join(*na.Address)
		account.AddressUpdatedAt = &now
	}

	if err := backend.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	zap.L().Info("account created",
		zap.String("id", account.ID), zap.String("username", username), zap.String("backend", string(backend.Kind)))
	return account, nil
}

// Register is the self-service signup: always a regular user, and the address
// must not belong to another account in either backend.
func (s *Service) Register(ctx context.Context, na domain.NewAccount) (*domain.Account, error) {
	na.Role = domain.RoleUser
	if na.Address != nil {
		if !na.Address.Complete() {
			return nil, domain.ErrIncompleteAddress
		}
		if err := s.checkAddressFree(ctx, address.Join(*na.Address), ""); err != nil {
			return nil, err
		}
	}
	return s.CreateAccount(ctx, na)
}

func (s *Service) checkAddressFree(ctx context.Context, addr, exceptID string) error {
	active := s.backends.Active(ctx)
	stores := []storage.AccountStore{active.Accounts}
	if active.Kind == storage.KindRelational {
		stores = append(stores, s.backends.FlatFile().Accounts)
	}
	for _, store := range stores {
		taken, err := store.AddressTaken(ctx, addr, exceptID)
		if err != nil {
			return fmt.Errorf("check address: %w", err)
		}
		if taken {
			return domain.ErrAddressInUse
		}
	}
	return nil
}

// VerifyCredentials returns the account for a matching username and password.
// An unknown username and a wrong password fail the same way, after the same
// amount of hashing work.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*domain.Account, error) {
	backend := s.backends.Active(ctx)
	account, err := backend.Accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if account == nil && backend.Kind == storage.KindRelational {
		account, err = s.migrateOnLogin(ctx, backend.Accounts, username, password)
		if err != nil {
			return nil, err
		}
	}

	if account == nil {
		s.hashService.ComparePassword(s.dummyPasswordHash(), password)
		zap.L().Info("invalid credentials", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hashService.ComparePassword(account.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	if err := backend.Accounts.TouchLastLogin(ctx, account.ID, now); err != nil {
		zap.L().Warn("can't record login time", zap.String("id", account.ID), zap.Error(err))
	} else {
		account.LastLoginAt = &now
	}
	return account, nil
}

// migrateOnLogin looks for a flat-file straggler and, if its password
// matches, copies it into the relational store before the login proceeds.
func (s *Service) migrateOnLogin(ctx context.Context, target storage.AccountStore, username, password string) (*domain.Account, error) {
	straggler, err := s.backends.FlatFile().Accounts.FindByUsername(ctx, username)
	if err != nil {
		zap.L().Warn("can't read flat-file accounts", zap.Error(err))
		return nil, nil
	}
	if straggler == nil || !s.hashService.ComparePassword(straggler.PasswordHash, password) {
		return nil, nil
	}
	if _, err := s.migrator.MigrateAccount(ctx, straggler); err != nil {
		zap.L().Error("can't migrate account on login", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("migrate account: %w", err)
	}
	return target.FindByUsername(ctx, username)
}

func (s *Service) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hashService.HashPassword(uuid.NewString())
		if err != nil {
			zap.L().Error("can't hash dummy password", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.backends.Active(ctx).Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// UpdateProfile applies a partial profile edit. A supplied address group must
// be complete and not registered to another account.
func (s *Service) UpdateProfile(ctx context.Context, accountID string, change domain.ProfileChange) error {
	update := domain.ProfileUpdate{
		FirstName:      trimmed(change.FirstName),
		LastName:       trimmed(change.LastName),
		Email:          trimmed(change.Email),
		Phone:          trimmed(change.Phone),
		MarketingOptIn: change.MarketingOptIn,
	}
	if change.Address != nil {
		if !change.Address.Complete() {
			return domain.ErrIncompleteAddress
		}
		joined := address.Join(*change.Address)
		if err := s.checkAddressFree(ctx, joined, accountID); err != nil {
			return err
		}
		update.Address = &joined
	}

	return s.backends.Active(ctx).Accounts.UpdateProfile(ctx, accountID, update, s.now())
}

// UpdatePayout switches the payout preference. Fields of the methods not
// chosen keep their stored values but are no longer surfaced.
func (s *Service) UpdatePayout(ctx context.Context, accountID string, payout domain.Payout) error {
	if !payout.Method.Valid() {
		return domain.ErrInvalidPayoutMethod
	}
	payout = domain.Payout{
		Method:            payout.Method,
		BankName:          strings.TrimSpace(payout.BankName),
		BankAccount:       strings.TrimSpace(payout.BankAccount),
		ChildName:         strings.TrimSpace(payout.ChildName),
		ChildAccount:      strings.TrimSpace(payout.ChildAccount),
		KiwiSaverProvider: strings.TrimSpace(payout.KiwiSaverProvider),
		KiwiSaverMemberID: strings.TrimSpace(payout.KiwiSaverMemberID),
	}
	return s.backends.Active(ctx).Accounts.UpdatePayout(ctx, accountID, payout, s.now())
}

// DeleteAccount removes an account and its payments. Only admins may delete,
// the last admin is kept, and accounts with open payments are refused.
func (s *Service) DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}

	backend := s.backends.Active(ctx)
	account, err := backend.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}

	if account.IsAdmin() {
		admins, err := backend.Accounts.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins <= 1 {
			return domain.ErrLastAdmin
		}
	}

	open, err := backend.Payments.CountByAccount(ctx, accountID, domain.OpenStatuses())
	if err != nil {
		return fmt.Errorf("count open payments: %w", err)
	}
	if open > 0 {
		return domain.ErrOpenPayments
	}

	if err := s.tokens.RevokeAll(ctx, accountID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	if err := backend.Payments.DeleteByAccount(ctx, accountID); err != nil {
		return fmt.Errorf("delete payments: %w", err)
	}
	if err := backend.Accounts.Delete(ctx, accountID); err != nil {
		return err
	}

	if backend.Kind == storage.KindRelational {
		s.deleteFlatFileCopy(ctx, accountID)
	}
	zap.L().Info("account deleted", zap.String("id", accountID), zap.String("by", actor.AccountID))
	return nil
}

// deleteFlatFileCopy keeps a later migration from bringing a deleted account
// back. Migration preserves ids, so only a record with the same id is a copy.
// A copy with open payments is left alone. Failures are only logged.
func (s *Service) deleteFlatFileCopy(ctx context.Context, accountID string) {
	flat := s.backends.FlatFile()
	copyOf, err := flat.Accounts.FindByID(ctx, accountID)
	if err != nil || copyOf == nil {
		if err != nil {
			zap.L().Warn("can't look up flat-file copy", zap.String("id", accountID), zap.Error(err))
		}
		return
	}
	open, err := flat.Payments.CountByAccount(ctx, accountID, domain.OpenStatuses())
	if err != nil {
		zap.L().Warn("can't count flat-file open payments", zap.String("id", accountID), zap.Error(err))
		return
	}
	if open > 0 {
		zap.L().Warn("flat-file copy kept, it has open payments", zap.String("id", accountID), zap.Int("open", open))
		return
	}
	if err := flat.Payments.DeleteByAccount(ctx, accountID); err != nil {
		zap.L().Warn("can't delete flat-file payments", zap.String("id", accountID), zap.Error(err))
		return
	}
	if err := flat.Accounts.Delete(ctx, accountID); err != nil {
		zap.L().Warn("can't delete flat-file copy", zap.String("id", accountID), zap.Error(err))
	}
}

// ListAccounts returns every account, newest first. When the relational store
// is active, flat-file stragglers are migrated first; a failed migration does
// not fail the listing.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	backend := s.backends.Active(ctx)
	if backend.Kind == storage.KindRelational {
		result, err := s.migrator.MigrateAll(ctx)
		if err != nil {
			zap.L().Warn("account migration before listing failed", zap.Error(err))
		} else if result.Migrated > 0 || result.Errors > 0 {
			zap.L().Info("migrated flat-file accounts before listing",
				zap.Int("migrated", result.Migrated), zap.Int("errors", result.Errors))
		}
	}
	return backend.Accounts.List(ctx)
}

func (s *Service) IssueToken(ctx context.Context, account *domain.Account) (string, error) {
	token, claims, err := s.jwtService.GenerateJWT(account.ID, string(account.Role), s.now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	if err := s.tokens.Add(ctx, account.ID, claims.Id, s.tokenTTL); err != nil {
		zap.L().Error("can't store token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) RevokeToken(ctx context.Context, accountID, tokenID string) error {
	return s.tokens.Revoke(ctx, accountID, tokenID)
}

func (s *Service) RevokeTokens(ctx context.Context, accountID string) error {
	return s.tokens.RevokeAll(ctx, accountID)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
