package dto

import (
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/pkg/address"
)

// AddressDTO is the address group. Either every part or none is supplied.
// Parts may not contain commas, which separate them in the stored form.
type AddressDTO struct {
	Street   string `json:"street,omitempty" validate:"required_with=Suburb City Postcode,excludes=0x2C" example:"12 Kauri Street"`
	Suburb   string `json:"suburb,omitempty" validate:"required_with=Street City Postcode,excludes=0x2C" example:"Ponsonby"`
	City     string `json:"city,omitempty" validate:"required_with=Street Suburb Postcode,excludes=0x2C" example:"Auckland"`
	Postcode string `json:"postcode,omitempty" validate:"required_with=Street Suburb City,postcode" example:"1011"`
}

// Address returns nil when no part was supplied.
func (a AddressDTO) Address() *address.Address {
	if a.Street == "" && a.Suburb == "" && a.City == "" && a.Postcode == "" {
		return nil
	}
	return &address.Address{Street: a.Street, Suburb: a.Suburb, City: a.City, Postcode: a.Postcode}
}

type ProfileRequestDTO struct {
	FirstName      *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	MarketingOptIn *bool   `json:"marketing_opt_in,omitempty"`
	AddressDTO
}

func (p ProfileRequestDTO) ToDomain() domain.ProfileChange {
	return domain.ProfileChange{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		MarketingOptIn: p.MarketingOptIn,
		Address:        p.Address(),
	}
}

type PayoutRequestDTO struct {
	Method            string `json:"method" validate:"required,oneof=bank child_account kiwisaver" example:"bank"`
	BankName          string `json:"bank_name,omitempty" validate:"max=100" example:"Kiwibank"`
	BankAccount       string `json:"bank_account,omitempty" validate:"max=30" example:"38-9000-0123456-00"`
	ChildName         string `json:"child_name,omitempty" validate:"max=100"`
	ChildAccount      string `json:"child_account,omitempty" validate:"max=30"`
	KiwiSaverProvider string `json:"kiwisaver_provider,omitempty" validate:"max=100"`
	KiwiSaverMemberID string `json:"kiwisaver_member_id,omitempty" validate:"max=30"`
}

func (p PayoutRequestDTO) ToDomain() domain.Payout {
	return domain.Payout{
		Method:            domain.PayoutMethod(p.Method),
		BankName:          p.BankName,
		BankAccount:       p.BankAccount,
		ChildName:         p.ChildName,
		ChildAccount:      p.ChildAccount,
		KiwiSaverProvider: p.KiwiSaverProvider,
		KiwiSaverMemberID: p.KiwiSaverMemberID,
	}
}

type PayoutDTO struct {
	Method            string `json:"method,omitempty" example:"bank"`
	BankName          string `json:"bank_name,omitempty"`
	BankAccount       string `json:"bank_account,omitempty"`
	ChildName         string `json:"child_name,omitempty"`
	ChildAccount      string `json:"child_account,omitempty"`
	KiwiSaverProvider string `json:"kiwisaver_provider,omitempty"`
	KiwiSaverMemberID string `json:"kiwisaver_member_id,omitempty"`
}

// AccountResponseDTO is the public projection of an account: no password
// hash, only the active payout method.
type AccountResponseDTO struct {
	ID               string           `json:"id" example:"7d1f0c8e-2a4b-4c7e-9f1a-0b6d3e5c2a19"`
	Username         string           `json:"username" example:"aroha"`
	Email            string           `json:"email,omitempty"`
	Role             string           `json:"role" example:"user"`
	FirstName        string           `json:"first_name,omitempty"`
	LastName         string           `json:"last_name,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	MarketingOptIn   bool             `json:"marketing_opt_in"`
	Address          string           `json:"address,omitempty" example:"12 Kauri Street, Ponsonby, Auckland 1011"`
	AddressParts     *address.Address `json:"address_parts,omitempty"`
	Payout           PayoutDTO        `json:"payout"`
	CreatedAt        time.Time        `json:"created_at"`
	LastLoginAt      *time.Time       `json:"last_login_at,omitempty"`
	AddressUpdatedAt *time.Time       `json:"address_updated_at,omitempty"`
	PayoutUpdatedAt  *time.Time       `json:"payout_updated_at,omitempty"`
}

func ToAccountResponse(a *domain.Account) AccountResponseDTO {
	p := a.ActivePayout()
	resp := AccountResponseDTO{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		Role:           string(a.Role),
		FirstName:      a.Profile.FirstName,
		LastName:       a.Profile.LastName,
		Phone:          a.Profile.Phone,
		MarketingOptIn: a.Profile.MarketingOptIn,
		Address:        a.Profile.Address,
		Payout: PayoutDTO{
			Method:            string(p.Method),
			BankName:          p.BankName,
			BankAccount:       p.BankAccount,
			ChildName:         p.ChildName,
			ChildAccount:      p.ChildAccount,
			KiwiSaverProvider: p.KiwiSaverProvider,
			KiwiSaverMemberID: p.KiwiSaverMemberID,
		},
		CreatedAt:        a.CreatedAt,
		LastLoginAt:      a.LastLoginAt,
		AddressUpdatedAt: a.AddressUpdatedAt,
		PayoutUpdatedAt:  a.PayoutUpdatedAt,
	}
	if a.Profile.Address != "" {
		parts := address.Parse(a.Profile.Address)
		resp.AddressParts = &parts
	}
	return resp
}

func ToAccountResponses(accounts []domain.Account) []AccountResponseDTO {
	out := make([]AccountResponseDTO, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
