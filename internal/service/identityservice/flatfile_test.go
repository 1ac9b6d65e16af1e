package identityservice

import (
	"context"
	"testing"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	filerepo "github.com/GlebRadaev/recyclepay/internal/repo/file-repo"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/GlebRadaev/recyclepay/internal/tokenstore"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noMigration struct{}

func (noMigration) MigrateAll(context.Context) (domain.MigrationResult, error) {
	return domain.MigrationResult{}, nil
}

func (noMigration) MigrateAccount(context.Context, *domain.Account) (bool, error) {
	return false, nil
}

func newFlatFileService(t *testing.T) (*Service, *filerepo.Repositories) {
	files := filerepo.New(t.TempDir())
	selector := storage.NewSelector(nil, storage.Backend{}, storage.Backend{Accounts: files.Accounts, Payments: files.Payments})
	service := New(selector, noMigration{}, tokenstore.NewMemory(), &auth.HashService{}, auth.NewJWTService("test"), time.Hour)
	return service, files
}

func TestFlatFile_CredentialFailuresLookAlike(t *testing.T) {
	service, _ := newFlatFileService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.NewAccount{Username: "aroha", Password: "password123"})
	require.NoError(t, err)

	account, err := service.VerifyCredentials(ctx, "aroha", "password123")
	require.NoError(t, err)
	assert.Equal(t, "aroha", account.Username)

	unknown, unknownErr := service.VerifyCredentials(ctx, "nobody", "password123")
	wrong, wrongErr := service.VerifyCredentials(ctx, "aroha", "password124")

	assert.Nil(t, unknown)
	assert.Nil(t, wrong)
	assert.Equal(t, unknownErr, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestFlatFile_DuplicateUsername(t *testing.T) {
	service, _ := newFlatFileService(t)
	ctx := context.Background()

	_, err := service.CreateAccount(ctx, domain.NewAccount{Username: "kiri", Password: "password123"})
	require.NoError(t, err)

	_, err = service.CreateAccount(ctx, domain.NewAccount{Username: "kiri", Password: "other-password"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.ErrorIs(t, err, domain.ErrConflict)

	accounts, err := service.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestFlatFile_DeleteRules(t *testing.T) {
	service, files := newFlatFileService(t)
	ctx := context.Background()

	boss, err := service.CreateAccount(ctx, domain.NewAccount{Username: "boss", Password: "password123", Role: domain.RoleAdmin})
	require.NoError(t, err)
	user, err := service.CreateAccount(ctx, domain.NewAccount{Username: "aroha", Password: "password123"})
	require.NoError(t, err)
	actor := domain.Actor{AccountID: boss.ID, Role: domain.RoleAdmin}

	assert.ErrorIs(t, service.DeleteAccount(ctx, actor, boss.ID), domain.ErrLastAdmin)

	require.NoError(t, files.Payments.Create(ctx, &domain.Payment{
		ID: "p1", AccountID: user.ID, Status: domain.StatusProcessing, Currency: "NZD", CreatedAt: time.Now(),
	}))
	assert.ErrorIs(t, service.DeleteAccount(ctx, actor, user.ID), domain.ErrOpenPayments)

	require.NoError(t, files.Payments.UpdateStatus(ctx, "p1", domain.StatusProcessing, domain.StatusPatch{
		Status: domain.StatusCompleted, UpdatedAt: time.Now(),
	}))
	require.NoError(t, service.DeleteAccount(ctx, actor, user.ID))

	gone, err := files.Accounts.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	payments, err := files.Payments.ListByAccount(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

type alwaysUp struct{}

func (alwaysUp) Available(context.Context) bool { return true }

func TestFlatFile_DeleteKeepsNamesakeInFlatFile(t *testing.T) {
	ctx := context.Background()
	relational := filerepo.New(t.TempDir())
	flat := filerepo.New(t.TempDir())
	selector := storage.NewSelector(alwaysUp{},
		storage.Backend{Accounts: relational.Accounts, Payments: relational.Payments},
		storage.Backend{Accounts: flat.Accounts, Payments: flat.Payments})
	service := New(selector, noMigration{}, tokenstore.NewMemory(), &auth.HashService{}, auth.NewJWTService("test"), time.Hour)

	require.NoError(t, flat.Accounts.Create(ctx, &domain.Account{
		ID: "flat-alice", Username: "alice", PasswordHash: "x", Role: domain.RoleUser, CreatedAt: time.Now(),
	}))
	require.NoError(t, flat.Payments.Create(ctx, &domain.Payment{
		ID: "p1", AccountID: "flat-alice", Status: domain.StatusPending, Currency: "NZD", CreatedAt: time.Now(),
	}))

	boss, err := service.CreateAccount(ctx, domain.NewAccount{Username: "boss", Password: "password123", Role: domain.RoleAdmin})
	require.NoError(t, err)
	alice, err := service.CreateAccount(ctx, domain.NewAccount{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	require.NotEqual(t, "flat-alice", alice.ID)

	require.NoError(t, service.DeleteAccount(ctx, domain.Actor{AccountID: boss.ID, Role: domain.RoleAdmin}, alice.ID))

	namesake, err := flat.Accounts.FindByID(ctx, "flat-alice")
	require.NoError(t, err)
	assert.NotNil(t, namesake)
	payments, err := flat.Payments.ListByAccount(ctx, "flat-alice")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestFlatFile_DeleteRemovesMigratedCopy(t *testing.T) {
	ctx := context.Background()
	relational := filerepo.New(t.TempDir())
	flat := filerepo.New(t.TempDir())
	selector := storage.NewSelector(alwaysUp{},
		storage.Backend{Accounts: relational.Accounts, Payments: relational.Payments},
		storage.Backend{Accounts: flat.Accounts, Payments: flat.Payments})
	service := New(selector, noMigration{}, tokenstore.NewMemory(), &auth.HashService{}, auth.NewJWTService("test"), time.Hour)

	migrated := &domain.Account{ID: "acc-7", Username: "hemi", PasswordHash: "x", Role: domain.RoleUser, CreatedAt: time.Now()}
	require.NoError(t, flat.Accounts.Create(ctx, migrated))
	require.NoError(t, relational.Accounts.Create(ctx, migrated))
	boss, err := service.CreateAccount(ctx, domain.NewAccount{Username: "boss", Password: "password123", Role: domain.RoleAdmin})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(ctx, domain.Actor{AccountID: boss.ID, Role: domain.RoleAdmin}, "acc-7"))

	copyOf, err := flat.Accounts.FindByID(ctx, "acc-7")
	require.NoError(t, err)
	assert.Nil(t, copyOf)
}
