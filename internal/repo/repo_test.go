package repo

import (
	"testing"

	accountrepo "github.com/GlebRadaev/recyclepay/internal/repo/account-repo"
	filerepo "github.com/GlebRadaev/recyclepay/internal/repo/file-repo"
	paymentrepo "github.com/GlebRadaev/recyclepay/internal/repo/payment-repo"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, t.TempDir())
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.Equal(t, storage.KindRelational, repo.Relational.Kind)
	assert.Equal(t, storage.KindFlatFile, repo.FlatFile.Kind)

	assert.IsType(t, &accountrepo.Repository{}, repo.Relational.Accounts)
	assert.IsType(t, &paymentrepo.Repository{}, repo.Relational.Payments)
	assert.IsType(t, &filerepo.AccountRepository{}, repo.FlatFile.Accounts)
	assert.IsType(t, &filerepo.PaymentRepository{}, repo.FlatFile.Payments)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}

func TestNew_WithoutDatabase(t *testing.T) {
	repo := New(nil, t.TempDir())

	assert.Nil(t, repo.Relational.Accounts)
	assert.Nil(t, repo.Relational.Payments)
	assert.NotNil(t, repo.FlatFile.Accounts)
}
