package repo

import (
	"github.com/GlebRadaev/recyclepay/internal/pg"
	accountrepo "github.com/GlebRadaev/recyclepay/internal/repo/account-repo"
	filerepo "github.com/GlebRadaev/recyclepay/internal/repo/file-repo"
	paymentrepo "github.com/GlebRadaev/recyclepay/internal/repo/payment-repo"
	"github.com/GlebRadaev/recyclepay/internal/storage"
)

type Repositories struct {
	Relational storage.Backend
	FlatFile   storage.Backend
}

// New builds both backends. A nil conn leaves the relational backend empty,
// which the selector treats as permanently unavailable.
func New(conn pg.Database, dataDir string) *Repositories {
	files := filerepo.New(dataDir)
	repos := &Repositories{
		FlatFile: storage.Backend{
			Kind:     storage.KindFlatFile,
			Accounts: files.Accounts,
			Payments: files.Payments,
		},
	}
	if conn != nil {
		repos.Relational = storage.Backend{
			Kind:     storage.KindRelational,
			Accounts: accountrepo.New(conn),
			Payments: paymentrepo.New(conn),
		}
	}
	return repos
}
