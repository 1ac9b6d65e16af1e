package filestore

import "path/filepath"

const (
	AccountsFile = "accounts.json"
	PaymentsFile = "payments.json"
)

// Store is the pair of flat files backing the fallback storage.
type Store[A, P any] struct {
	Accounts *Collection[A]
	Payments *Collection[P]
}

func New[A, P any](dir string) *Store[A, P] {
	return &Store[A, P]{
		Accounts: NewCollection[A](filepath.Join(dir, AccountsFile)),
		Payments: NewCollection[P](filepath.Join(dir, PaymentsFile)),
	}
}
