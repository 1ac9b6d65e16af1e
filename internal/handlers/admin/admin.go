package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/dto"
	"github.com/GlebRadaev/recyclepay/internal/handlers/httpx"
	"github.com/GlebRadaev/recyclepay/internal/service/reportservice"
	"github.com/GlebRadaev/recyclepay/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type IdentityService interface {
	CreateAccount(ctx context.Context, na domain.NewAccount) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error
}

type LedgerService interface {
	RecordPayment(ctx context.Context, actor domain.Actor, np domain.NewPayment) (*domain.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, accountID string) ([]domain.Payment, error)
	ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Payment, error)
	ListRecent(ctx context.Context, n int) ([]domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, actor domain.Actor, paymentID string, next domain.PaymentStatus, upd domain.StatusUpdate) (*domain.Payment, error)
	GetAllBalances(ctx context.Context, statuses []domain.PaymentStatus) (map[string]decimal.Decimal, error)
}

type ReportService interface {
	Build(ctx context.Context, actor domain.Actor) (*reportservice.Report, error)
}

type MigrationService interface {
	MigrateAll(ctx context.Context) (domain.MigrationResult, error)
}

type AdminHandler struct {
	identity  IdentityService
	ledger    LedgerService
	report    ReportService
	migration MigrationService
}

func New(identity IdentityService, ledger LedgerService, report ReportService, migration MigrationService) *AdminHandler {
	return &AdminHandler{
		identity:  identity,
		ledger:    ledger,
		report:    report,
		migration: migration,
	}
}

// ListAccounts godoc
//
//	@Summary		List accounts
//	@Description	All accounts, newest first. Flat-file accounts are migrated first when PostgreSQL is up.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/accounts [get]
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.identity.ListAccounts(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToAccountResponses(accounts))
}

// CreateAccount godoc
//
//	@Summary		Create an account
//	@Description	Admin-side account creation; the role may be admin. Address uniqueness is not checked.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateAccountRequestDTO	true	"New account"
//	@Success		201		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		403		{object}	utils.Response					"Admin role required"
//	@Failure		409		{object}	utils.Response					"Username already taken"
//	@Failure		422		{object}	httpx.ValidationErrorResponse	"Invalid request data"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/accounts [post]
func (h *AdminHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.identity.CreateAccount(r.Context(), req.ToDomain())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.ToAccountResponse(account))
}

// DeleteAccount godoc
//
//	@Summary		Delete an account
//	@Description	Removes the account and its payments. Refused for the last admin and for accounts with pending or processing payments.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Account id"
//	@Success		200	{object}	utils.Response
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		409	{object}	utils.Response	"Last admin or open payments"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/accounts/{id} [delete]
func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	if err := h.identity.DeleteAccount(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Account deleted"})
}

// AccountPayments godoc
//
//	@Summary		Payments of one account
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Account id"
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/accounts/{id}/payments [get]
func (h *AdminHandler) AccountPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.ledger.ListPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToPaymentResponses(payments))
}

// RecordPayment godoc
//
//	@Summary		Record a payment
//	@Description	Currency and status fall back to the configured defaults, the payment date to today.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreatePaymentRequestDTO	true	"Payment"
//	@Success		201		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		403		{object}	utils.Response					"Admin role required"
//	@Failure		404		{object}	utils.Response					"Account not found"
//	@Failure		422		{object}	httpx.ValidationErrorResponse	"Invalid request data"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/payments [post]
func (h *AdminHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	payment, err := h.ledger.RecordPayment(r.Context(), actor, req.ToDomain())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.ToPaymentResponse(payment))
}

// ListPayments godoc
//
//	@Summary		List payments
//	@Description	With a status filter every matching payment is returned, otherwise the most recent ones (50 unless recent is given).
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		[]string	false	"Status filter"	collectionFormat(multi)
//	@Param			recent	query		int			false	"How many recent payments"
//	@Success		200		{array}		dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid recent value"
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		422		{object}	utils.Response	"Unknown payment status"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments [get]
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	var (
		payments []domain.Payment
		err      error
	)
	if statuses := httpx.Statuses(r); len(statuses) > 0 {
		payments, err = h.ledger.ListByStatus(r.Context(), statuses)
	} else {
		n := 0
		if raw := r.URL.Query().Get("recent"); raw != "" {
			n, err = strconv.Atoi(raw)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "recent must be a number")
				return
			}
		}
		payments, err = h.ledger.ListRecent(r.Context(), n)
	}
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToPaymentResponses(payments))
}

// GetPayment godoc
//
//	@Summary		Get a payment
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Payment id"
//	@Success		200	{object}	dto.PaymentResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Payment not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id} [get]
func (h *AdminHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.ledger.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToPaymentResponse(payment))
}

// UpdateStatus godoc
//
//	@Summary		Change a payment status
//	@Description	pending may move to processing or completed, processing to completed. Completing without a date dates the payment today.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Payment id"
//	@Param			request	body		dto.UpdateStatusRequestDTO	true	"New status"
//	@Success		200		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		403		{object}	utils.Response					"Admin role required"
//	@Failure		404		{object}	utils.Response					"Payment not found"
//	@Failure		409		{object}	utils.Response					"Transition not allowed"
//	@Failure		422		{object}	httpx.ValidationErrorResponse	"Invalid request data"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/payments/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	payment, err := h.ledger.UpdatePaymentStatus(r.Context(), actor, chi.URLParam(r, "id"),
		domain.PaymentStatus(req.Status), req.ToDomain())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToPaymentResponse(payment))
}

// GetBalances godoc
//
//	@Summary		Balances of all accounts
//	@Description	Accounts without a matching payment are absent.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		[]string	false	"Status filter"	collectionFormat(multi)
//	@Success		200		{object}	dto.BalancesResponseDTO
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		422		{object}	utils.Response	"Unknown payment status"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/balances [get]
func (h *AdminHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	statuses := httpx.Statuses(r)
	balances, err := h.ledger.GetAllBalances(r.Context(), statuses)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToBalancesResponse(statuses, balances))
}

// Report godoc
//
//	@Summary		Admin console summary
//	@Description	Every account with its completed and open totals.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReportResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/report [get]
func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	report, err := h.report.Build(r.Context(), actor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToReportResponse(report))
}

// Migrate godoc
//
//	@Summary		Copy flat-file accounts into PostgreSQL
//	@Description	Idempotent: accounts whose username already exists in PostgreSQL are skipped.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.MigrationResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Failure		503	{object}	utils.Response	"PostgreSQL unavailable"
//	@Router			/api/admin/migrate [post]
func (h *AdminHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	result, err := h.migration.MigrateAll(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MigrationResponseDTO{
		Migrated: result.Migrated,
		Skipped:  result.Skipped,
		Errors:   result.Errors,
	})
}
