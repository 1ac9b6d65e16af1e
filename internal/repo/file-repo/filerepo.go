// Package filerepo is the flat-file fallback implementation of the account
// and payment stores. Records are kept as camelCase JSON and converted to
// domain types before they leave the package.
package filerepo

import "github.com/GlebRadaev/recyclepay/internal/filestore"

type Repositories struct {
	Accounts *AccountRepository
	Payments *PaymentRepository
}

func New(dir string) *Repositories {
	store := filestore.New[accountRecord, paymentRecord](dir)
	return &Repositories{
		Accounts: newAccounts(store.Accounts),
		Payments: newPayments(store.Payments),
	}
}
