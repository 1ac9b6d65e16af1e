package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/config"
	filerepo "github.com/GlebRadaev/recyclepay/internal/repo/file-repo"
	"github.com/GlebRadaev/recyclepay/internal/service"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/GlebRadaev/recyclepay/internal/tokenstore"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	files := filerepo.New(t.TempDir())
	selector := storage.NewSelector(nil, storage.Backend{}, storage.Backend{Accounts: files.Accounts, Payments: files.Payments})
	services := service.New(selector, tokenstore.NewMemory(), &config.Config{JWTSecret: "secret", MigrationWorkers: 1})

	h := New(services, Options{})
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.AccountHandler)
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockAccountHandler := NewMockAccountHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Logout(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().UpdatePayout(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().GetPayments(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().DeleteAccount(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().AccountPayments(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().ListPayments(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().GetPayment(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().GetBalances(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Report(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Migrate(gomock.Any(), gomock.Any()).AnyTimes()

	jwtService := auth.NewJWTService("secret")
	tokens := tokenstore.NewMemory()
	issue := func(accountID, role string) string {
		token, claims, err := jwtService.GenerateJWT(accountID, role, time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, tokens.Add(context.Background(), accountID, claims.Id, time.Hour))
		return token
	}
	userToken := issue("acc-1", "user")
	adminToken := issue("admin-1", "admin")
	revokedToken := issue("acc-2", "user")
	require.NoError(t, tokens.RevokeAll(context.Background(), "acc-2"))

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		AccountHandler: mockAccountHandler,
		AdminHandler:   mockAdminHandler,
		jwt:            jwtService,
		tokens:         tokens,
		opts:           Options{RequestTimeout: time.Second},
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/user/register", "", http.StatusOK},
		{"POST", "/api/user/login", "", http.StatusOK},
		{"POST", "/api/user/logout", "", http.StatusUnauthorized},
		{"GET", "/api/user/me", "", http.StatusUnauthorized},
		{"GET", "/api/user/me", "not-a-jwt", http.StatusUnauthorized},
		{"GET", "/api/user/me", revokedToken, http.StatusUnauthorized},
		{"GET", "/api/user/me", userToken, http.StatusOK},
		{"PATCH", "/api/user/profile", userToken, http.StatusOK},
		{"PUT", "/api/user/payout", userToken, http.StatusOK},
		{"GET", "/api/user/balance", userToken, http.StatusOK},
		{"GET", "/api/user/payments", userToken, http.StatusOK},
		{"POST", "/api/user/logout", userToken, http.StatusOK},
		{"GET", "/api/admin/accounts", "", http.StatusUnauthorized},
		{"GET", "/api/admin/accounts", userToken, http.StatusForbidden},
		{"POST", "/api/admin/payments", userToken, http.StatusForbidden},
		{"POST", "/api/admin/migrate", userToken, http.StatusForbidden},
		{"GET", "/api/admin/accounts", adminToken, http.StatusOK},
		{"POST", "/api/admin/accounts", adminToken, http.StatusOK},
		{"DELETE", "/api/admin/accounts/acc-1", adminToken, http.StatusOK},
		{"GET", "/api/admin/accounts/acc-1/payments", adminToken, http.StatusOK},
		{"GET", "/api/admin/payments", adminToken, http.StatusOK},
		{"POST", "/api/admin/payments", adminToken, http.StatusOK},
		{"GET", "/api/admin/payments/p1", adminToken, http.StatusOK},
		{"PATCH", "/api/admin/payments/p1/status", adminToken, http.StatusOK},
		{"GET", "/api/admin/balances", adminToken, http.StatusOK},
		{"GET", "/api/admin/report", adminToken, http.StatusOK},
		{"POST", "/api/admin/migrate", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/user/login", nil)
		req.Header.Set("Origin", "https://app.example.nz")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
