package dto

import (
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/service/reportservice"
	"github.com/shopspring/decimal"
)

type BalancesResponseDTO struct {
	Statuses []string          `json:"statuses"`
	Balances map[string]string `json:"balances"`
}

func ToBalancesResponse(statuses []domain.PaymentStatus, balances map[string]decimal.Decimal) BalancesResponseDTO {
	resp := BalancesResponseDTO{
		Statuses: domain.StatusStrings(domain.NormalizeStatuses(statuses)),
		Balances: make(map[string]string, len(balances)),
	}
	for id, sum := range balances {
		resp.Balances[id] = sum.StringFixed(2)
	}
	return resp
}

type MigrationResponseDTO struct {
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

type ReportRowDTO struct {
	Account   AccountResponseDTO `json:"account"`
	Completed string             `json:"completed" example:"25.00"`
	Open      string             `json:"open" example:"0.00"`
}

type ReportResponseDTO struct {
	Accounts       []ReportRowDTO `json:"accounts"`
	Admins         int            `json:"admins"`
	TotalCompleted string         `json:"total_completed"`
	TotalOpen      string         `json:"total_open"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

func ToReportResponse(r *reportservice.Report) ReportResponseDTO {
	resp := ReportResponseDTO{
		Accounts:       make([]ReportRowDTO, len(r.Accounts)),
		Admins:         r.Admins,
		TotalCompleted: r.TotalCompleted.StringFixed(2),
		TotalOpen:      r.TotalOpen.StringFixed(2),
		GeneratedAt:    r.GeneratedAt,
	}
	for i := range r.Accounts {
		row := &r.Accounts[i]
		resp.Accounts[i] = ReportRowDTO{
			Account:   ToAccountResponse(&row.Account),
			Completed: row.Completed.StringFixed(2),
			Open:      row.Open.StringFixed(2),
		}
	}
	return resp
}

type CreateAccountRequestDTO struct {
	RegisterRequestDTO
	Role string `json:"role,omitempty" validate:"omitempty,oneof=user admin" example:"user"`
}

func (c CreateAccountRequestDTO) ToDomain() domain.NewAccount {
	return domain.NewAccount{
		Username:       c.Username,
		Password:       c.Password,
		Email:          c.Email,
		Role:           domain.Role(c.Role),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Phone:          c.Phone,
		MarketingOptIn: c.MarketingOptIn,
		Address:        c.Address(),
	}
}
