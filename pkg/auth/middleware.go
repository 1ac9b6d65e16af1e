package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/recyclepay/pkg/utils"
	"go.uber.org/zap"
)

type ContextKey string

const ClaimsKey ContextKey = "claims"

// TokenChecker tells whether a token id is still active for an account.
type TokenChecker interface {
	IsActive(ctx context.Context, accountID, tokenID string) (bool, error)
}

// AuthMiddleware accepts requests carrying a valid bearer token whose id is
// still active and stores its claims in the request context.
func AuthMiddleware(jwtService JWTServiceInterface, tokens TokenChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			active, err := tokens.IsActive(r.Context(), claims.AccountID, claims.Id)
			if err != nil {
				zap.L().Error("can't check token", zap.String("account_id", claims.AccountID), zap.Error(err))
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !active {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok && claims != nil
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
