package identityservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/GlebRadaev/recyclepay/pkg/address"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

var admin = domain.Actor{AccountID: "admin-1", Role: domain.RoleAdmin}

type mocks struct {
	backends     *MockBackends
	migrator     *MockMigrator
	tokens       *MockTokenStore
	hash         *auth.MockHashServiceInterface
	jwt          *auth.MockJWTServiceInterface
	accounts     *storage.MockAccountStore
	payments     *storage.MockPaymentStore
	flatAccounts *storage.MockAccountStore
	flatPayments *storage.MockPaymentStore
}

func (m *mocks) relational() storage.Backend {
	return storage.Backend{Kind: storage.KindRelational, Accounts: m.accounts, Payments: m.payments}
}

func (m *mocks) flatFile() storage.Backend {
	return storage.Backend{Kind: storage.KindFlatFile, Accounts: m.flatAccounts, Payments: m.flatPayments}
}

// useRelational makes the relational backend the active one.
func (m *mocks) useRelational() {
	m.backends.EXPECT().Active(gomock.Any()).Return(m.relational()).AnyTimes()
	m.backends.EXPECT().FlatFile().Return(m.flatFile()).AnyTimes()
}

func (m *mocks) useFlatFile() {
	m.backends.EXPECT().Active(gomock.Any()).Return(m.flatFile()).AnyTimes()
	m.backends.EXPECT().FlatFile().Return(m.flatFile()).AnyTimes()
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		backends:     NewMockBackends(ctrl),
		migrator:     NewMockMigrator(ctrl),
		tokens:       NewMockTokenStore(ctrl),
		hash:         auth.NewMockHashServiceInterface(ctrl),
		jwt:          auth.NewMockJWTServiceInterface(ctrl),
		accounts:     storage.NewMockAccountStore(ctrl),
		payments:     storage.NewMockPaymentStore(ctrl),
		flatAccounts: storage.NewMockAccountStore(ctrl),
		flatPayments: storage.NewMockPaymentStore(ctrl),
	}
	service := New(m.backends, m.migrator, m.tokens, m.hash, m.jwt, time.Hour)
	service.now = func() time.Time { return fixedNow }
	return service, m
}

func completeAddress() *address.Address {
	return &address.Address{Street: "12 Kauri Street", Suburb: "Ponsonby", City: "Auckland", Postcode: "1011"}
}

func TestService_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       domain.NewAccount
		prepareMock func(m *mocks)
		expectedErr error
		anyErr      bool
	}{
		{
			name:        "Empty username",
			input:       domain.NewAccount{Username: "  ", Password: "password123"},
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrEmptyUsername,
		},
		{
			name:        "Empty password",
			input:       domain.NewAccount{Username: "aroha"},
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrEmptyPassword,
		},
		{
			name:        "Unknown role",
			input:       domain.NewAccount{Username: "aroha", Password: "password123", Role: "owner"},
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrInvalidRole,
		},
		{
			name: "Incomplete address",
			input: domain.NewAccount{Username: "aroha", Password: "password123",
				Address: &address.Address{Street: "12 Kauri Street"}},
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrIncompleteAddress,
		},
		{
			name:  "Username taken",
			input: domain.NewAccount{Username: "aroha", Password: "password123"},
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(&domain.Account{ID: "acc-1"}, nil)
			},
			expectedErr: domain.ErrDuplicateUsername,
		},
		{
			name:  "Username taken concurrently",
			input: domain.NewAccount{Username: "aroha", Password: "password123"},
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, nil)
				m.hash.EXPECT().HashPassword("password123").Return("hashed", nil)
				m.accounts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateUsername)
			},
			expectedErr: domain.ErrDuplicateUsername,
		},
		{
			name:  "Backend failure",
			input: domain.NewAccount{Username: "aroha", Password: "password123"},
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, errors.New("decode accounts.json"))
			},
			anyErr: true,
		},
		{
			name:  "Hashing failure",
			input: domain.NewAccount{Username: "aroha", Password: "password123"},
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, nil)
				m.hash.EXPECT().HashPassword("password123").Return("", errors.New("bcrypt failure"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			account, err := service.CreateAccount(context.Background(), tt.input)

			assert.Nil(t, account)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			if tt.anyErr {
				assert.Error(t, err)
			}
		})
	}
}

func TestService_CreateAccount_Success(t *testing.T) {
	service, m := NewMock(t)
	m.useFlatFile()

	var stored *domain.Account
	m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, nil)
	m.hash.EXPECT().HashPassword("password123").Return("hashed", nil)
	m.flatAccounts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Account) error {
		stored = a
		return nil
	})

	account, err := service.CreateAccount(context.Background(), domain.NewAccount{
		Username: " aroha ",
		Password: "password123",
		Role:     domain.RoleAdmin,
		Address:  completeAddress(),
	})

	require.NoError(t, err)
	assert.Same(t, stored, account)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "aroha", account.Username)
	assert.Equal(t, "hashed", account.PasswordHash)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	assert.Equal(t, "12 Kauri Street, Ponsonby, Auckland 1011", account.Profile.Address)
	assert.Equal(t, fixedNow, account.CreatedAt)
	require.NotNil(t, account.AddressUpdatedAt)
	assert.Nil(t, account.PayoutUpdatedAt)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(m *mocks)
		expectedErr error
	}{
		{
			name: "Address held by a flat-file account",
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().AddressTaken(gomock.Any(), "12 Kauri Street, Ponsonby, Auckland 1011", "").Return(false, nil)
				m.flatAccounts.EXPECT().AddressTaken(gomock.Any(), "12 Kauri Street, Ponsonby, Auckland 1011", "").Return(true, nil)
			},
			expectedErr: domain.ErrAddressInUse,
		},
		{
			name: "Registered as a regular user",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().AddressTaken(gomock.Any(), gomock.Any(), "").Return(false, nil)
				m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, nil)
				m.hash.EXPECT().HashPassword("password123").Return("hashed", nil)
				m.flatAccounts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Account) error {
					assert.Equal(t, domain.RoleUser, a.Role)
					return nil
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			account, err := service.Register(context.Background(), domain.NewAccount{
				Username: "aroha",
				Password: "password123",
				Role:     domain.RoleAdmin,
				Address:  completeAddress(),
			})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.RoleUser, account.Role)
		})
	}
}

func TestService_VerifyCredentials(t *testing.T) {
	stored := &domain.Account{ID: "acc-1", Username: "aroha", PasswordHash: "hashed", Role: domain.RoleUser}

	tests := []struct {
		name        string
		username    string
		password    string
		prepareMock func(m *mocks)
		expectedID  string
		expectedErr error
	}{
		{
			name:     "Unknown username",
			username: "ghost",
			password: "password123",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, nil)
				m.hash.EXPECT().HashPassword(gomock.Any()).Return("dummy", nil)
				m.hash.EXPECT().ComparePassword("dummy", "password123").Return(false)
			},
			expectedErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "Wrong password",
			username: "aroha",
			password: "wrong",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(stored, nil)
				m.hash.EXPECT().ComparePassword("hashed", "wrong").Return(false)
			},
			expectedErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "Correct password",
			username: "aroha",
			password: "password123",
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(stored, nil)
				m.hash.EXPECT().ComparePassword("hashed", "password123").Return(true)
				m.accounts.EXPECT().TouchLastLogin(gomock.Any(), "acc-1", fixedNow).Return(nil)
			},
			expectedID: "acc-1",
		},
		{
			name:     "Flat-file straggler migrated on login",
			username: "aroha",
			password: "password123",
			prepareMock: func(m *mocks) {
				m.useRelational()
				gomock.InOrder(
					m.accounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, nil),
					m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(stored, nil),
					m.migrator.EXPECT().MigrateAccount(gomock.Any(), stored).Return(true, nil),
					m.accounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(stored, nil),
				)
				m.hash.EXPECT().ComparePassword("hashed", "password123").Return(true).Times(2)
				m.accounts.EXPECT().TouchLastLogin(gomock.Any(), "acc-1", fixedNow).Return(nil)
			},
			expectedID: "acc-1",
		},
		{
			name:     "Flat-file straggler with wrong password stays put",
			username: "aroha",
			password: "wrong",
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(nil, nil)
				m.flatAccounts.EXPECT().FindByUsername(gomock.Any(), "aroha").Return(stored, nil)
				m.hash.EXPECT().ComparePassword("hashed", "wrong").Return(false)
				m.hash.EXPECT().HashPassword(gomock.Any()).Return("dummy", nil)
				m.hash.EXPECT().ComparePassword("dummy", "wrong").Return(false)
			},
			expectedErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			account, err := service.VerifyCredentials(context.Background(), tt.username, tt.password)

			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, account.ID)
			require.NotNil(t, account.LastLoginAt)
			assert.Equal(t, fixedNow, *account.LastLoginAt)
		})
	}
}

func TestService_UpdateProfile(t *testing.T) {
	phone := " 021 555 0101 "

	tests := []struct {
		name        string
		change      domain.ProfileChange
		prepareMock func(m *mocks)
		expectedErr error
	}{
		{
			name:        "Incomplete address group",
			change:      domain.ProfileChange{Address: &address.Address{Street: "12 Kauri Street", City: "Auckland"}},
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrIncompleteAddress,
		},
		{
			name:   "Address used by someone else",
			change: domain.ProfileChange{Address: completeAddress()},
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().AddressTaken(gomock.Any(), gomock.Any(), "acc-1").Return(true, nil)
			},
			expectedErr: domain.ErrAddressInUse,
		},
		{
			name:   "Phone only",
			change: domain.ProfileChange{Phone: &phone},
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().UpdateProfile(gomock.Any(), "acc-1", gomock.Any(), fixedNow).DoAndReturn(
					func(_ context.Context, _ string, u domain.ProfileUpdate, _ time.Time) error {
						require.NotNil(t, u.Phone)
						assert.Equal(t, "021 555 0101", *u.Phone)
						assert.Nil(t, u.Address)
						assert.Nil(t, u.FirstName)
						return nil
					})
			},
		},
		{
			name:   "Address group",
			change: domain.ProfileChange{Address: completeAddress()},
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().AddressTaken(gomock.Any(), gomock.Any(), "acc-1").Return(false, nil)
				m.flatAccounts.EXPECT().AddressTaken(gomock.Any(), gomock.Any(), "acc-1").Return(false, nil)
				m.accounts.EXPECT().UpdateProfile(gomock.Any(), "acc-1", gomock.Any(), fixedNow).DoAndReturn(
					func(_ context.Context, _ string, u domain.ProfileUpdate, _ time.Time) error {
						require.NotNil(t, u.Address)
						assert.Equal(t, "12 Kauri Street, Ponsonby, Auckland 1011", *u.Address)
						return nil
					})
			},
		},
		{
			name:   "Unknown account",
			change: domain.ProfileChange{Phone: &phone},
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().UpdateProfile(gomock.Any(), "acc-1", gomock.Any(), fixedNow).Return(domain.ErrAccountNotFound)
			},
			expectedErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.UpdateProfile(context.Background(), "acc-1", tt.change)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_UpdatePayout(t *testing.T) {
	service, m := NewMock(t)

	err := service.UpdatePayout(context.Background(), "acc-1", domain.Payout{Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayoutMethod)

	m.useFlatFile()
	payout := domain.Payout{Method: domain.PayoutChildAccount, ChildName: " Mere ", ChildAccount: "12-3456-7890123-00"}
	m.flatAccounts.EXPECT().UpdatePayout(gomock.Any(), "acc-1", domain.Payout{
		Method:       domain.PayoutChildAccount,
		ChildName:    "Mere",
		ChildAccount: "12-3456-7890123-00",
	}, fixedNow).Return(nil)

	assert.NoError(t, service.UpdatePayout(context.Background(), "acc-1", payout))
}

func TestService_DeleteAccount(t *testing.T) {
	user := &domain.Account{ID: "acc-1", Username: "aroha", Role: domain.RoleUser}
	lastAdmin := &domain.Account{ID: "admin-1", Username: "boss", Role: domain.RoleAdmin}

	tests := []struct {
		name        string
		actor       domain.Actor
		accountID   string
		prepareMock func(m *mocks)
		expectedErr error
	}{
		{
			name:        "Regular user may not delete",
			actor:       domain.Actor{AccountID: "acc-2", Role: domain.RoleUser},
			accountID:   "acc-1",
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrAdminOnly,
		},
		{
			name:      "Unknown account",
			actor:     admin,
			accountID: "acc-9",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-9").Return(nil, nil)
			},
			expectedErr: domain.ErrAccountNotFound,
		},
		{
			name:      "Last admin",
			actor:     admin,
			accountID: "admin-1",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "admin-1").Return(lastAdmin, nil)
				m.flatAccounts.EXPECT().CountAdmins(gomock.Any()).Return(1, nil)
			},
			expectedErr: domain.ErrLastAdmin,
		},
		{
			name:      "Open payments",
			actor:     admin,
			accountID: "acc-1",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(user, nil)
				m.flatPayments.EXPECT().CountByAccount(gomock.Any(), "acc-1", domain.OpenStatuses()).Return(2, nil)
			},
			expectedErr: domain.ErrOpenPayments,
		},
		{
			name:      "Deleted from the flat files",
			actor:     admin,
			accountID: "acc-1",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(user, nil)
				m.flatPayments.EXPECT().CountByAccount(gomock.Any(), "acc-1", domain.OpenStatuses()).Return(0, nil)
				gomock.InOrder(
					m.tokens.EXPECT().RevokeAll(gomock.Any(), "acc-1").Return(nil),
					m.flatPayments.EXPECT().DeleteByAccount(gomock.Any(), "acc-1").Return(nil),
					m.flatAccounts.EXPECT().Delete(gomock.Any(), "acc-1").Return(nil),
				)
			},
		},
		{
			name:      "Deleted from both backends",
			actor:     admin,
			accountID: "acc-1",
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(user, nil)
				m.payments.EXPECT().CountByAccount(gomock.Any(), "acc-1", domain.OpenStatuses()).Return(0, nil)
				m.tokens.EXPECT().RevokeAll(gomock.Any(), "acc-1").Return(nil)
				gomock.InOrder(
					m.payments.EXPECT().DeleteByAccount(gomock.Any(), "acc-1").Return(nil),
					m.accounts.EXPECT().Delete(gomock.Any(), "acc-1").Return(nil),
				)
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(&domain.Account{ID: "acc-1"}, nil)
				m.flatPayments.EXPECT().CountByAccount(gomock.Any(), "acc-1", domain.OpenStatuses()).Return(0, nil)
				m.flatPayments.EXPECT().DeleteByAccount(gomock.Any(), "acc-1").Return(nil)
				m.flatAccounts.EXPECT().Delete(gomock.Any(), "acc-1").Return(nil)
			},
		},
		{
			name:      "Flat-file copy with open payments is kept",
			actor:     admin,
			accountID: "acc-1",
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.accounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(user, nil)
				m.payments.EXPECT().CountByAccount(gomock.Any(), "acc-1", domain.OpenStatuses()).Return(0, nil)
				m.tokens.EXPECT().RevokeAll(gomock.Any(), "acc-1").Return(nil)
				m.payments.EXPECT().DeleteByAccount(gomock.Any(), "acc-1").Return(nil)
				m.accounts.EXPECT().Delete(gomock.Any(), "acc-1").Return(nil)
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(&domain.Account{ID: "acc-1"}, nil)
				m.flatPayments.EXPECT().CountByAccount(gomock.Any(), "acc-1", domain.OpenStatuses()).Return(1, nil)
			},
		},
		{
			name:      "One of two admins",
			actor:     admin,
			accountID: "admin-1",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().FindByID(gomock.Any(), "admin-1").Return(lastAdmin, nil)
				m.flatAccounts.EXPECT().CountAdmins(gomock.Any()).Return(2, nil)
				m.flatPayments.EXPECT().CountByAccount(gomock.Any(), "admin-1", domain.OpenStatuses()).Return(0, nil)
				m.tokens.EXPECT().RevokeAll(gomock.Any(), "admin-1").Return(nil)
				m.flatPayments.EXPECT().DeleteByAccount(gomock.Any(), "admin-1").Return(nil)
				m.flatAccounts.EXPECT().Delete(gomock.Any(), "admin-1").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.DeleteAccount(context.Background(), tt.actor, tt.accountID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_ListAccounts(t *testing.T) {
	accounts := []domain.Account{{ID: "acc-2"}, {ID: "acc-1"}}

	tests := []struct {
		name        string
		prepareMock func(m *mocks)
	}{
		{
			name: "Relational backend migrates first",
			prepareMock: func(m *mocks) {
				m.useRelational()
				gomock.InOrder(
					m.migrator.EXPECT().MigrateAll(gomock.Any()).Return(domain.MigrationResult{Migrated: 1}, nil),
					m.accounts.EXPECT().List(gomock.Any()).Return(accounts, nil),
				)
			},
		},
		{
			name: "Migration failure does not fail the listing",
			prepareMock: func(m *mocks) {
				m.useRelational()
				m.migrator.EXPECT().MigrateAll(gomock.Any()).Return(domain.MigrationResult{}, errors.New("boom"))
				m.accounts.EXPECT().List(gomock.Any()).Return(accounts, nil)
			},
		},
		{
			name: "Flat files only",
			prepareMock: func(m *mocks) {
				m.useFlatFile()
				m.flatAccounts.EXPECT().List(gomock.Any()).Return(accounts, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			result, err := service.ListAccounts(context.Background())
			require.NoError(t, err)
			assert.Equal(t, accounts, result)
		})
	}
}

func TestService_GetAccount(t *testing.T) {
	service, m := NewMock(t)
	m.useFlatFile()
	m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(&domain.Account{ID: "acc-1"}, nil)
	m.flatAccounts.EXPECT().FindByID(gomock.Any(), "acc-2").Return(nil, nil)

	account, err := service.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)

	_, err = service.GetAccount(context.Background(), "acc-2")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_Tokens(t *testing.T) {
	service, m := NewMock(t)
	account := &domain.Account{ID: "acc-1", Role: domain.RoleAdmin}
	claims := &auth.Claims{AccountID: "acc-1", StandardClaims: jwt.StandardClaims{Id: "jti-1"}}

	m.jwt.EXPECT().GenerateJWT("acc-1", "admin", fixedNow.Add(time.Hour)).Return("signed", claims, nil)
	m.tokens.EXPECT().Add(gomock.Any(), "acc-1", "jti-1", time.Hour).Return(nil)
	m.tokens.EXPECT().Revoke(gomock.Any(), "acc-1", "jti-1").Return(nil)
	m.tokens.EXPECT().RevokeAll(gomock.Any(), "acc-1").Return(nil)

	token, err := service.IssueToken(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, "signed", token)
	assert.NoError(t, service.RevokeToken(context.Background(), "acc-1", "jti-1"))
	assert.NoError(t, service.RevokeTokens(context.Background(), "acc-1"))
}
