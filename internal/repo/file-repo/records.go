package filerepo

import (
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type accountRecord struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email,omitempty"`
	PasswordHash      string     `json:"passwordHash"`
	Role              string     `json:"role"`
	FirstName         string     `json:"firstName,omitempty"`
	LastName          string     `json:"lastName,omitempty"`
	Address           string     `json:"address,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	MarketingOptIn    bool       `json:"marketingOptIn"`
	PayoutMethod      string     `json:"payoutMethod,omitempty"`
	BankName          string     `json:"bankName,omitempty"`
	BankAccount       string     `json:"bankAccount,omitempty"`
	ChildName         string     `json:"childName,omitempty"`
	ChildAccount      string     `json:"childAccount,omitempty"`
	KiwiSaverProvider string     `json:"kiwisaverProvider,omitempty"`
	KiwiSaverMemberID string     `json:"kiwisaverMemberId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	AddressUpdatedAt  *time.Time `json:"addressUpdatedAt,omitempty"`
	PayoutUpdatedAt   *time.Time `json:"payoutUpdatedAt,omitempty"`
}

func toAccountRecord(a *domain.Account) accountRecord {
	return accountRecord{
		ID:                a.ID,
		Username:          a.Username,
		Email:             a.Email,
		PasswordHash:      a.PasswordHash,
		Role:              string(a.Role),
		FirstName:         a.Profile.FirstName,
		LastName:          a.Profile.LastName,
		Address:           a.Profile.Address,
		Phone:             a.Profile.Phone,
		MarketingOptIn:    a.Profile.MarketingOptIn,
		PayoutMethod:      string(a.Payout.Method),
		BankName:          a.Payout.BankName,
		BankAccount:       a.Payout.BankAccount,
		ChildName:         a.Payout.ChildName,
		ChildAccount:      a.Payout.ChildAccount,
		KiwiSaverProvider: a.Payout.KiwiSaverProvider,
		KiwiSaverMemberID: a.Payout.KiwiSaverMemberID,
		CreatedAt:         a.CreatedAt.UTC(),
		LastLoginAt:       utcPtr(a.LastLoginAt),
		AddressUpdatedAt:  utcPtr(a.AddressUpdatedAt),
		PayoutUpdatedAt:   utcPtr(a.PayoutUpdatedAt),
	}
}

// toDomain fills gaps left by hand-edited or older files: a record without a
// role is a regular user.
func (r accountRecord) toDomain() domain.Account {
	role := domain.Role(r.Role)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Account{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         role,
		Profile: domain.Profile{
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			Address:        r.Address,
			Phone:          r.Phone,
			MarketingOptIn: r.MarketingOptIn,
		},
		Payout: domain.Payout{
			Method:            domain.PayoutMethod(r.PayoutMethod),
			BankName:          r.BankName,
			BankAccount:       r.BankAccount,
			ChildName:         r.ChildName,
			ChildAccount:      r.ChildAccount,
			KiwiSaverProvider: r.KiwiSaverProvider,
			KiwiSaverMemberID: r.KiwiSaverMemberID,
		},
		CreatedAt:        r.CreatedAt,
		LastLoginAt:      r.LastLoginAt,
		AddressUpdatedAt: r.AddressUpdatedAt,
		PayoutUpdatedAt:  r.PayoutUpdatedAt,
	}
}

type paymentRecord struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	PaymentDate string          `json:"paymentDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

func toPaymentRecord(p *domain.Payment) paymentRecord {
	return paymentRecord{
		ID:          p.ID,
		AccountID:   p.AccountID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      string(p.Status),
		Reference:   p.Reference,
		Notes:       p.Notes,
		PaymentDate: p.PaymentDate.Format(dateLayout),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   utcPtr(p.UpdatedAt),
	}
}

// toDomain accepts both a bare date and a full timestamp for paymentDate.
func (r paymentRecord) toDomain() domain.Payment {
	p := domain.Payment{
		ID:        r.ID,
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Status:    domain.PaymentStatus(r.Status),
		Reference: r.Reference,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if d, err := time.Parse(dateLayout, r.PaymentDate); err == nil {
		p.PaymentDate = d
	} else if ts, err := time.Parse(time.RFC3339, r.PaymentDate); err == nil {
		p.PaymentDate = domain.DateOf(ts)
	} else {
		p.PaymentDate = domain.DateOf(r.CreatedAt)
	}
	return p
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
