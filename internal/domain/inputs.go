package domain

import (
	"time"

	"github.com/GlebRadaev/recyclepay/pkg/address"
)

// NewAccount is what a caller supplies to open an account. Address is either
// nil or a complete group.
type NewAccount struct {
	Username       string
	Password       string
	Email          string
	Role           Role
	FirstName      string
	LastName       string
	Phone          string
	MarketingOptIn bool
	Address        *address.Address
}

// ProfileChange is a partial profile edit; nil fields stay as they are.
type ProfileChange struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	MarketingOptIn *bool
	Address        *address.Address
}

type NewPayment struct {
	AccountID   string
	Amount      string
	Currency    string
	Status      PaymentStatus
	Reference   string
	Notes       string
	PaymentDate *time.Time
}

// StatusUpdate carries the optional fields written together with a status
// change.
type StatusUpdate struct {
	PaymentDate *time.Time
	Reference   *string
	Notes       *string
}

type MigrationResult struct {
	Migrated int
	Skipped  int
	Errors   int
}
