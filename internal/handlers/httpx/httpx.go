// Package httpx holds what the handler packages share: decoding request
// bodies, turning service errors into responses and reading the caller.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/service/migrationservice"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/GlebRadaev/recyclepay/pkg/utils"
	"github.com/GlebRadaev/recyclepay/pkg/validate"
	"go.uber.org/zap"
)

type ValidationErrorResponse struct {
	Message string                `json:"message"`
	Details []validate.FieldError `json:"details"`
}

// StatusOf maps an error returned by a service to an HTTP status.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	}
	if errors.Is(err, migrationservice.ErrRelationalUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error writes err. Business rule failures keep their message, anything else
// is logged and hidden behind a generic one.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		utils.RespondWithError(w, code, "Internal server error")
		return
	}
	var de *domain.Error
	if errors.As(err, &de) {
		utils.RespondWithError(w, code, de.Msg)
		return
	}
	utils.RespondWithError(w, code, err.Error())
}

// Decode reads a JSON body into dst and validates it. On failure the response
// has been written and false is returned.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := validate.Struct(dst); errs != nil {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Message: "Invalid request data",
			Details: errs,
		})
		return false
	}
	return true
}

// Actor returns the authenticated caller put in the context by
// auth.AuthMiddleware.
func Actor(r *http.Request) (domain.Actor, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{AccountID: claims.AccountID, Role: domain.Role(claims.Role)}, true
}

// RequireActor is Actor that answers 401 itself when nobody is logged in.
func RequireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := Actor(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return actor, ok
}

// AdminOnly rejects callers without the admin role before any handler runs.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := RequireActor(w, r)
		if !ok {
			return
		}
		if !actor.IsAdmin() {
			utils.RespondWithError(w, http.StatusForbidden, domain.ErrAdminOnly.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Statuses reads the status filter from the query string. Both
// ?status=a&status=b and ?status=a,b are accepted.
func Statuses(r *http.Request) []domain.PaymentStatus {
	var statuses []domain.PaymentStatus
	for _, v := range r.URL.Query()["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(strings.ToLower(s)); s != "" {
				statuses = append(statuses, domain.PaymentStatus(s))
			}
		}
	}
	return statuses
}
