package account

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/dto"
	"github.com/GlebRadaev/recyclepay/internal/handlers/httpx"
	"github.com/GlebRadaev/recyclepay/pkg/utils"
	"github.com/shopspring/decimal"
)

type IdentityService interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID string, change domain.ProfileChange) error
	UpdatePayout(ctx context.Context, accountID string, payout domain.Payout) error
}

type LedgerService interface {
	GetBalance(ctx context.Context, accountID string, statuses []domain.PaymentStatus) (decimal.Decimal, error)
	ListPayments(ctx context.Context, accountID string) ([]domain.Payment, error)
}

type AccountHandler struct {
	identity IdentityService
	ledger   LedgerService
}

func New(identity IdentityService, ledger LedgerService) *AccountHandler {
	return &AccountHandler{
		identity: identity,
		ledger:   ledger,
	}
}

// Me godoc
//
//	@Summary		Current account
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/me [get]
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	h.respondWithAccount(w, r, actor.AccountID)
}

func (h *AccountHandler) respondWithAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	account, err := h.identity.GetAccount(r.Context(), accountID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToAccountResponse(account))
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Partial update: omitted fields stay as they are. The address parts replace the stored address and must be supplied together.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ProfileRequestDTO	true	"Profile fields to change"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		409		{object}	utils.Response					"Address already registered"
//	@Failure		422		{object}	httpx.ValidationErrorResponse	"Invalid request data"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/profile [patch]
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	var req dto.ProfileRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	if err := h.identity.UpdateProfile(r.Context(), actor.AccountID, req.ToDomain()); err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.respondWithAccount(w, r, actor.AccountID)
}

// UpdatePayout godoc
//
//	@Summary		Choose the payout method
//	@Description	Only the fields of the chosen method are stored.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayoutRequestDTO	true	"Payout preference"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		422		{object}	httpx.ValidationErrorResponse	"Invalid request data"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/payout [put]
func (h *AccountHandler) UpdatePayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	var req dto.PayoutRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	if err := h.identity.UpdatePayout(r.Context(), actor.AccountID, req.ToDomain()); err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.respondWithAccount(w, r, actor.AccountID)
}

// GetBalance godoc
//
//	@Summary		Current account balance
//	@Description	Sum of the account's payments in the given statuses; completed only when no status is given.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		[]string	false	"Status filter"	collectionFormat(multi)
//	@Success		200		{object}	dto.BalanceResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Unknown payment status"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	statuses := httpx.Statuses(r)
	balance, err := h.ledger.GetBalance(r.Context(), actor.AccountID, statuses)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		AccountID: actor.AccountID,
		Balance:   balance.StringFixed(2),
		Statuses:  domain.StatusStrings(domain.NormalizeStatuses(statuses)),
	})
}

// GetPayments godoc
//
//	@Summary		Payment history
//	@Description	Payments of the current account, newest payment date first.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [get]
func (h *AccountHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.RequireActor(w, r)
	if !ok {
		return
	}
	payments, err := h.ledger.ListPayments(r.Context(), actor.AccountID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToPaymentResponses(payments))
}
