package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/recyclepay/internal/domain"
	"github.com/GlebRadaev/recyclepay/internal/dto"
	"github.com/GlebRadaev/recyclepay/internal/service/migrationservice"
	"github.com/GlebRadaev/recyclepay/internal/service/reportservice"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/GlebRadaev/recyclepay/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var admin = domain.Actor{AccountID: "admin-1", Role: domain.RoleAdmin}

type mocks struct {
	identity  *MockIdentityService
	ledger    *MockLedgerService
	report    *MockReportService
	migration *MockMigrationService
}

func NewMock(t *testing.T) (*AdminHandler, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		identity:  NewMockIdentityService(ctrl),
		ledger:    NewMockLedgerService(ctrl),
		report:    NewMockReportService(ctrl),
		migration: NewMockMigrationService(ctrl),
	}
	return New(m.identity, m.ledger, m.report, m.migration), m
}

// request builds an admin request; id, when set, is the {id} route parameter.
func request(method, target, body, id string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	ctx := auth.WithClaims(req.Context(), &auth.Claims{AccountID: admin.AccountID, Role: string(admin.Role)})
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func payment(status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		ID:          "p1",
		AccountID:   "acc-1",
		Amount:      decimal.RequireFromString("25"),
		Currency:    "NZD",
		Status:      status,
		PaymentDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestAdminHandler(t *testing.T) {
	tests := []struct {
		name          string
		call          func(h *AdminHandler, w http.ResponseWriter)
		prepareMock   func(m *mocks)
		expectedCode  int
		expectedError string
	}{
		{
			name: "List accounts",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.ListAccounts(w, request("GET", "/api/admin/accounts", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.identity.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{{ID: "acc-1", Username: "aroha"}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Create admin account",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.CreateAccount(w, request("POST", "/api/admin/accounts", `{"username":"boss2","password":"password123","role":"admin"}`, ""))
			},
			prepareMock: func(m *mocks) {
				m.identity.EXPECT().CreateAccount(gomock.Any(), domain.NewAccount{
					Username: "boss2", Password: "password123", Role: domain.RoleAdmin,
				}).Return(&domain.Account{ID: "a2", Username: "boss2", Role: domain.RoleAdmin}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Create with unknown role",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.CreateAccount(w, request("POST", "/api/admin/accounts", `{"username":"boss2","password":"password123","role":"root"}`, ""))
			},
			prepareMock:   func(m *mocks) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request data",
		},
		{
			name: "Delete last admin",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.DeleteAccount(w, request("DELETE", "/api/admin/accounts/admin-1", "", "admin-1"))
			},
			prepareMock: func(m *mocks) {
				m.identity.EXPECT().DeleteAccount(gomock.Any(), admin, "admin-1").Return(domain.ErrLastAdmin)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "can't delete the last admin account",
		},
		{
			name: "Delete account with open payments",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.DeleteAccount(w, request("DELETE", "/api/admin/accounts/acc-1", "", "acc-1"))
			},
			prepareMock: func(m *mocks) {
				m.identity.EXPECT().DeleteAccount(gomock.Any(), admin, "acc-1").Return(domain.ErrOpenPayments)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "account has pending or processing payments",
		},
		{
			name: "Delete account",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.DeleteAccount(w, request("DELETE", "/api/admin/accounts/acc-1", "", "acc-1"))
			},
			prepareMock: func(m *mocks) {
				m.identity.EXPECT().DeleteAccount(gomock.Any(), admin, "acc-1").Return(nil)
			},
			expectedCode:  http.StatusOK,
			expectedError: "Account deleted",
		},
		{
			name: "Payments of an account",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.AccountPayments(w, request("GET", "/api/admin/accounts/acc-1/payments", "", "acc-1"))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().ListPayments(gomock.Any(), "acc-1").Return([]domain.Payment{*payment(domain.StatusPending)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Record payment",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.RecordPayment(w, request("POST", "/api/admin/payments",
					`{"account_id":"acc-1","amount":"25.00","payment_date":"2026-03-10"}`, ""))
			},
			prepareMock: func(m *mocks) {
				date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
				m.ledger.EXPECT().RecordPayment(gomock.Any(), admin, domain.NewPayment{
					AccountID: "acc-1", Amount: "25.00", PaymentDate: &date,
				}).Return(payment(domain.StatusPending), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Record payment with bad amount",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.RecordPayment(w, request("POST", "/api/admin/payments", `{"account_id":"acc-1","amount":"lots"}`, ""))
			},
			prepareMock:   func(m *mocks) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request data",
		},
		{
			name: "Record payment with negative amount",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.RecordPayment(w, request("POST", "/api/admin/payments", `{"account_id":"acc-1","amount":"-5"}`, ""))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().RecordPayment(gomock.Any(), admin, gomock.Any()).Return(nil, domain.ErrInvalidAmount)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "amount must be a positive number",
		},
		{
			name: "Record payment for unknown account",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.RecordPayment(w, request("POST", "/api/admin/payments", `{"account_id":"acc-9","amount":"5"}`, ""))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().RecordPayment(gomock.Any(), admin, gomock.Any()).Return(nil, domain.ErrAccountNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "account not found",
		},
		{
			name: "Recent payments by default",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.ListPayments(w, request("GET", "/api/admin/payments", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().ListRecent(gomock.Any(), 0).Return([]domain.Payment{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Recent payments with limit",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.ListPayments(w, request("GET", "/api/admin/payments?recent=10", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().ListRecent(gomock.Any(), 10).Return([]domain.Payment{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Bad recent value",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.ListPayments(w, request("GET", "/api/admin/payments?recent=ten", "", ""))
			},
			prepareMock:   func(m *mocks) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "recent must be a number",
		},
		{
			name: "Payments by status",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.ListPayments(w, request("GET", "/api/admin/payments?status=pending&status=processing", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().ListByStatus(gomock.Any(), []domain.PaymentStatus{domain.StatusPending, domain.StatusProcessing}).
					Return([]domain.Payment{*payment(domain.StatusPending)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown payment",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.GetPayment(w, request("GET", "/api/admin/payments/p9", "", "p9"))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().GetPayment(gomock.Any(), "p9").Return(nil, domain.ErrPaymentNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "payment not found",
		},
		{
			name: "Complete payment",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.UpdateStatus(w, request("PATCH", "/api/admin/payments/p1/status", `{"status":"completed","reference":"EFT-7"}`, "p1"))
			},
			prepareMock: func(m *mocks) {
				ref := "EFT-7"
				m.ledger.EXPECT().UpdatePaymentStatus(gomock.Any(), admin, "p1", domain.StatusCompleted, domain.StatusUpdate{Reference: &ref}).
					Return(payment(domain.StatusCompleted), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Illegal transition",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.UpdateStatus(w, request("PATCH", "/api/admin/payments/p1/status", `{"status":"pending"}`, "p1"))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().UpdatePaymentStatus(gomock.Any(), admin, "p1", domain.StatusPending, domain.StatusUpdate{}).
					Return(nil, domain.ErrIllegalTransition)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "payment status transition not allowed",
		},
		{
			name: "Unknown target status",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.UpdateStatus(w, request("PATCH", "/api/admin/payments/p1/status", `{"status":"refunded"}`, "p1"))
			},
			prepareMock:   func(m *mocks) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request data",
		},
		{
			name: "Balances",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.GetBalances(w, request("GET", "/api/admin/balances", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.ledger.EXPECT().GetAllBalances(gomock.Any(), []domain.PaymentStatus(nil)).
					Return(map[string]decimal.Decimal{"acc-1": decimal.RequireFromString("25")}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Report",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.Report(w, request("GET", "/api/admin/report", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.report.EXPECT().Build(gomock.Any(), admin).Return(&reportservice.Report{
					Accounts: []reportservice.AccountSummary{{
						Account:   domain.Account{ID: "acc-1", Username: "aroha"},
						Completed: decimal.RequireFromString("25"),
						Open:      decimal.Zero,
					}},
					TotalCompleted: decimal.RequireFromString("25"),
					TotalOpen:      decimal.Zero,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Migrate",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.Migrate(w, request("POST", "/api/admin/migrate", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.migration.EXPECT().MigrateAll(gomock.Any()).Return(domain.MigrationResult{Migrated: 2, Skipped: 1}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Migrate without PostgreSQL",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.Migrate(w, request("POST", "/api/admin/migrate", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.migration.EXPECT().MigrateAll(gomock.Any()).Return(domain.MigrationResult{}, migrationservice.ErrRelationalUnavailable)
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "relational backend is unavailable",
		},
		{
			name: "Migrate fails",
			call: func(h *AdminHandler, w http.ResponseWriter) {
				h.Migrate(w, request("POST", "/api/admin/migrate", "", ""))
			},
			prepareMock: func(m *mocks) {
				m.migration.EXPECT().MigrateAll(gomock.Any()).Return(domain.MigrationResult{}, errors.New("read accounts.json: permission denied"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := NewMock(t)
			tt.prepareMock(m)

			rr := httptest.NewRecorder()
			tt.call(handler, rr)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestReportBody(t *testing.T) {
	handler, m := NewMock(t)
	m.report.EXPECT().Build(gomock.Any(), admin).Return(&reportservice.Report{
		Accounts: []reportservice.AccountSummary{{
			Account:   domain.Account{ID: "acc-1", Username: "aroha", PasswordHash: "secret-hash"},
			Completed: decimal.RequireFromString("25"),
			Open:      decimal.RequireFromString("3.5"),
		}},
		Admins:         1,
		TotalCompleted: decimal.RequireFromString("25"),
		TotalOpen:      decimal.RequireFromString("3.5"),
	}, nil)

	rr := httptest.NewRecorder()
	handler.Report(rr, request("GET", "/api/admin/report", "", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-hash")
	var resp dto.ReportResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, "25.00", resp.Accounts[0].Completed)
	assert.Equal(t, "3.50", resp.Accounts[0].Open)
	assert.Equal(t, "25.00", resp.TotalCompleted)
	assert.Equal(t, 1, resp.Admins)
}
