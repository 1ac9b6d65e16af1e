package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type PayoutMethod string

const (
	PayoutBank         PayoutMethod = "bank"
	PayoutChildAccount PayoutMethod = "child_account"
	PayoutKiwiSaver    PayoutMethod = "kiwisaver"
)

func (m PayoutMethod) Valid() bool {
	switch m {
	case PayoutBank, PayoutChildAccount, PayoutKiwiSaver:
		return true
	}
	return false
}

type Profile struct {
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	Address        string `db:"address"`
	Phone          string `db:"phone"`
	MarketingOptIn bool   `db:"marketing_opt_in"`
}

// Payout holds the stored fields of every payout method. Only the fields of
// Method are authoritative, see Account.ActivePayout.
type Payout struct {
	Method            PayoutMethod `db:"payout_method"`
	BankName          string       `db:"bank_name"`
	BankAccount       string       `db:"bank_account"`
	ChildName         string       `db:"child_name"`
	ChildAccount      string       `db:"child_account"`
	KiwiSaverProvider string       `db:"kiwisaver_provider"`
	KiwiSaverMemberID string       `db:"kiwisaver_member_id"`
}

type Account struct {
	ID               string     `db:"id"`
	Username         string     `db:"username"`
	Email            string     `db:"email"`
	PasswordHash     string     `db:"password_hash"`
	Role             Role       `db:"role"`
	Profile          Profile    `db:"-"`
	Payout           Payout     `db:"-"`
	CreatedAt        time.Time  `db:"created_at"`
	LastLoginAt      *time.Time `db:"last_login_at"`
	AddressUpdatedAt *time.Time `db:"address_updated_at"`
	PayoutUpdatedAt  *time.Time `db:"payout_updated_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ActivePayout returns the payout preference with the fields of inactive
// methods blanked out.
func (a *Account) ActivePayout() Payout {
	p := Payout{Method: a.Payout.Method}
	switch a.Payout.Method {
	case PayoutBank:
		p.BankName = a.Payout.BankName
		p.BankAccount = a.Payout.BankAccount
	case PayoutChildAccount:
		p.ChildName = a.Payout.ChildName
		p.ChildAccount = a.Payout.ChildAccount
	case PayoutKiwiSaver:
		p.KiwiSaverProvider = a.Payout.KiwiSaverProvider
		p.KiwiSaverMemberID = a.Payout.KiwiSaverMemberID
	}
	return p
}

type Payment struct {
	ID          string          `db:"id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Status      PaymentStatus   `db:"status"`
	Reference   string          `db:"reference"`
	Notes       string          `db:"notes"`
	PaymentDate time.Time       `db:"payment_date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   *time.Time      `db:"updated_at"`
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
// Address, when set, replaces the whole address group.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	MarketingOptIn *bool
	Address        *string
}

// StatusPatch is what a store writes when a payment changes status.
type StatusPatch struct {
	Status      PaymentStatus
	UpdatedAt   time.Time
	PaymentDate *time.Time
	Reference   *string
	Notes       *string
}

// DateOf truncates t to midnight UTC, the representation of a business date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
