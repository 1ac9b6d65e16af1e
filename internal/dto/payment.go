package dto

import (
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/pkg/validate"
)

type CreatePaymentRequestDTO struct {
	AccountID   string `json:"account_id" validate:"required" example:"7d1f0c8e-2a4b-4c7e-9f1a-0b6d3e5c2a19"`
	Amount      string `json:"amount" validate:"required,decimal" example:"25.00"`
	Currency    string `json:"currency,omitempty" validate:"omitempty,len=3,alpha" example:"NZD"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed failed cancelled" example:"pending"`
	Reference   string `json:"reference,omitempty" validate:"max=100" example:"pickup 118"`
	Notes       string `json:"notes,omitempty" validate:"max=1000"`
	PaymentDate string `json:"payment_date,omitempty" validate:"omitempty,date" example:"2026-03-10"`
}

func (p CreatePaymentRequestDTO) ToDomain() domain.NewPayment {
	return domain.NewPayment{
		AccountID:   p.AccountID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      domain.PaymentStatus(p.Status),
		Reference:   p.Reference,
		Notes:       p.Notes,
		PaymentDate: parseOptionalDate(p.PaymentDate),
	}
}

type UpdateStatusRequestDTO struct {
	Status      string  `json:"status" validate:"required,oneof=pending processing completed failed cancelled" example:"completed"`
	PaymentDate string  `json:"payment_date,omitempty" validate:"omitempty,date" example:"2026-03-12"`
	Reference   *string `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (u UpdateStatusRequestDTO) ToDomain() domain.StatusUpdate {
	return domain.StatusUpdate{
		PaymentDate: parseOptionalDate(u.PaymentDate),
		Reference:   u.Reference,
		Notes:       u.Notes,
	}
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := validate.ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

type PaymentResponseDTO struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Amount      string     `json:"amount" example:"25.00"`
	Currency    string     `json:"currency" example:"NZD"`
	Status      string     `json:"status" example:"pending"`
	Reference   string     `json:"reference,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	PaymentDate string     `json:"payment_date" example:"2026-03-10"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func ToPaymentResponse(p *domain.Payment) PaymentResponseDTO {
	return PaymentResponseDTO{
		ID:          p.ID,
		AccountID:   p.AccountID,
		Amount:      p.Amount.StringFixed(2),
		Currency:    p.Currency,
		Status:      string(p.Status),
		Reference:   p.Reference,
		Notes:       p.Notes,
		PaymentDate: p.PaymentDate.Format(validate.DateLayout),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPaymentResponses(payments []domain.Payment) []PaymentResponseDTO {
	out := make([]PaymentResponseDTO, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out
}

type BalanceResponseDTO struct {
	AccountID string   `json:"account_id"`
	Balance   string   `json:"balance" example:"25.00"`
	Statuses  []string `json:"statuses" example:"completed"`
}
