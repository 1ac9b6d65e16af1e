package auth

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/dto"
	"github.com/GlebRadaev/recyclepay/internal/handlers/httpx"
	pkgauth "github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/GlebRadaev/recyclepay/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, na domain.NewAccount) (*domain.Account, error)
	VerifyCredentials(ctx context.Context, username, password string) (*domain.Account, error)
	IssueToken(ctx context.Context, account *domain.Account) (string, error)
	RevokeToken(ctx context.Context, accountID, tokenID string) error
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new customer
//	@Description	Create a customer account and log it in. The address parts are optional but must be supplied together.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		409		{object}	utils.Response					"Username or address already taken"
//	@Failure		422		{object}	httpx.ValidationErrorResponse	"Invalid request data"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.authService.Register(r.Context(), domain.NewAccount{
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		MarketingOptIn: req.MarketingOptIn,
		Address:        req.Address(),
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.respondWithToken(w, r, account, "Account successfully registered")
}

// Login godoc
//
//	@Summary		Authenticate a customer or admin
//	@Description	Log in with username and password and get a bearer token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.authService.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.respondWithToken(w, r, account, "Successfully authenticated")
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, account *domain.Account, msg string) {
	token, err := h.authService.IssueToken(r.Context(), account)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.TokenResponseDTO{
		Message: msg,
		Token:   token,
	})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Revoke the bearer token used for this request
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.LogoutResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := pkgauth.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.authService.RevokeToken(r.Context(), claims.AccountID, claims.Id); err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LogoutResponseDTO{Message: "Logged out"})
}
